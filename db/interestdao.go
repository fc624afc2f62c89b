package db

import (
	"context"

	"github.com/juju/errors"
	"gorm.io/gorm"

	"tourism-recommender-server/model"
)

type InterestDAO struct {
	db *gorm.DB
}

func NewInterestDAO(db *gorm.DB) *InterestDAO {
	return &InterestDAO{db: db}
}

func (interestDAO *InterestDAO) CreateInterest(ctx context.Context, interest *model.Interest) error {
	// takes a pointer, in order to update the param struct
	return errors.Trace(interestDAO.db.WithContext(ctx).Create(interest).Error)
}

func (interestDAO *InterestDAO) GetInterestByTitle(ctx context.Context, title string) (model.Interest, error) {
	var interest model.Interest
	err := interestDAO.db.WithContext(ctx).Where("title = ?", title).First(&interest).Error
	if err != nil {
		return model.Interest{}, translate(err, "interest %q", title)
	}
	return interest, nil
}

// GetOrCreateInterests returns one interest per title, creating the missing
// ones, in the order of titles.
func (interestDAO *InterestDAO) GetOrCreateInterests(ctx context.Context, titles ...string) ([]model.Interest, error) {
	interests := make([]model.Interest, 0, len(titles))
	for _, title := range titles {
		interest := model.Interest{Title: title}
		err := interestDAO.db.WithContext(ctx).Where(model.Interest{Title: title}).FirstOrCreate(&interest).Error
		if err != nil {
			return nil, errors.Trace(err)
		}
		interests = append(interests, interest)
	}
	return interests, nil
}
