package db

import (
	"context"

	"github.com/juju/errors"
	"gorm.io/gorm"

	"tourism-recommender-server/model"
)

type CategoryDAO struct {
	db *gorm.DB
}

func NewCategoryDAO(db *gorm.DB) *CategoryDAO {
	return &CategoryDAO{db: db}
}

func (categoryDAO *CategoryDAO) CreateCategory(ctx context.Context, category *model.Category) error {
	// takes a pointer, in order to update the param struct
	return errors.Trace(categoryDAO.db.WithContext(ctx).Omit("Places").Create(category).Error)
}

func (categoryDAO *CategoryDAO) GetCategoryById(ctx context.Context, categoryID string) (model.Category, error) {
	var category model.Category
	err := categoryDAO.db.WithContext(ctx).Where("id_category = ?", categoryID).First(&category).Error
	if err != nil {
		return model.Category{}, translate(err, "category %s", categoryID)
	}
	return category, nil
}
