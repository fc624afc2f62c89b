package db

import (
	"context"
	"strings"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"tourism-recommender-server/model"
)

type PlaceDAO struct {
	db *gorm.DB
}

func NewPlaceDAO(db *gorm.DB) *PlaceDAO {
	return &PlaceDAO{db: db}
}

// ListPlaces returns the whole catalog with interests, ratings, category and
// picture loaded. It is the snapshot the recommendation engine works on.
func (placeDAO *PlaceDAO) ListPlaces(ctx context.Context) ([]model.Place, error) {
	places := []model.Place{}
	err := placeDAO.db.WithContext(ctx).
		Preload("Interests").
		Preload("Ratings").
		Preload("Category").
		Preload("Picture").
		Order("id_place").
		Find(&places).Error
	if err != nil {
		return nil, errors.Trace(err)
	}
	return places, nil
}

func (placeDAO *PlaceDAO) GetPlaceById(ctx context.Context, placeID string) (model.Place, error) {
	var place model.Place
	err := placeDAO.db.WithContext(ctx).
		Preload("Ratings", orderByNewest).
		Preload("Ratings.User").
		Preload("Interests").
		Preload("Category").
		Preload("Picture").
		Where("id_place = ?", placeID).
		First(&place).Error
	if err != nil {
		return model.Place{}, translate(err, "place %s", placeID)
	}
	return place, nil
}

// SavePlace inserts or updates a place by id, together with its interest
// set. Derived aggregate columns are never written here.
func (placeDAO *PlaceDAO) SavePlace(ctx context.Context, place *model.Place) error {
	return placeDAO.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if place.PlaceID != "" {
			if err := tx.Model(&model.Place{}).Where("id_place = ?", place.PlaceID).Count(&existing).Error; err != nil {
				return errors.Trace(err)
			}
		}

		if existing == 0 {
			// new places start without ratings
			place.AverageRating, place.NumOfRatings, place.AggregateVersion = 0, 0, 0
			if err := tx.Omit("Interests", "Ratings").Create(place).Error; err != nil {
				return errors.Trace(err)
			}
		} else {
			err := tx.Model(place).
				Select("name", "country", "description", "location", "demographics", "id_category", "id_picture").
				Updates(place).Error
			if err != nil {
				return errors.Trace(err)
			}
		}

		if place.Interests != nil {
			if err := tx.Model(place).Association("Interests").Replace(place.Interests); err != nil {
				return errors.Trace(err)
			}
		}
		return nil
	})
}

// GetPlacesByIds returns the places in the order of placeIDs; unknown ids are
// skipped.
func (placeDAO *PlaceDAO) GetPlacesByIds(ctx context.Context, placeIDs []string) ([]model.Place, error) {
	if len(placeIDs) == 0 {
		return []model.Place{}, nil
	}
	var places []model.Place
	err := placeDAO.db.WithContext(ctx).
		Preload("Ratings").
		Preload("Category").
		Preload("Picture").
		Where("id_place IN ?", lo.Uniq(placeIDs)).
		Find(&places).Error
	if err != nil {
		return nil, errors.Trace(err)
	}

	byID := lo.KeyBy(places, func(place model.Place) string {
		return place.PlaceID
	})
	ordered := make([]model.Place, 0, len(placeIDs))
	for _, placeID := range placeIDs {
		if place, ok := byID[placeID]; ok {
			ordered = append(ordered, place)
		}
	}
	return ordered, nil
}

// SearchPlaces matches searchTerm against name and description, case
// insensitive.
func (placeDAO *PlaceDAO) SearchPlaces(ctx context.Context, searchTerm string, page, limit int) (model.Page[model.Place], error) {
	page, limit = model.NormalizePage(page, limit)
	pattern := "%" + strings.ToLower(searchTerm) + "%"
	filter := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := placeDAO.db.WithContext(ctx).Model(&model.Place{}).Scopes(filter).Count(&total).Error; err != nil {
		return model.Page[model.Place]{}, errors.Trace(err)
	}

	places := []model.Place{}
	err := placeDAO.db.WithContext(ctx).
		Scopes(filter).
		Preload("Ratings").
		Preload("Category").
		Preload("Picture").
		Order("name, id_place").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&places).Error
	if err != nil {
		return model.Page[model.Place]{}, errors.Trace(err)
	}
	return model.NewPage(places, total, page, limit), nil
}

func (placeDAO *PlaceDAO) UpdateDemographics(ctx context.Context, placeID string, demographics model.Demographics) (model.Place, error) {
	result := placeDAO.db.WithContext(ctx).
		Model(&model.Place{}).
		Where("id_place = ?", placeID).
		Select("demographics").
		Updates(&model.Place{Demographics: &demographics})
	if result.Error != nil {
		return model.Place{}, errors.Trace(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.Place{}, errors.NotFoundf("place %s", placeID)
	}
	return placeDAO.GetPlaceById(ctx, placeID)
}

// GetDestinations returns the liked places of a user followed by the
// visited ones.
func (placeDAO *PlaceDAO) GetDestinations(ctx context.Context, user model.User) ([]model.Place, error) {
	history, err := placeDAO.getHistory(ctx, user)
	if err != nil {
		return nil, err
	}
	return append(history.LikedPlaces, history.VisitedPlaces...), nil
}

func (placeDAO *PlaceDAO) getHistory(ctx context.Context, user model.User) (model.PlacesHistory, error) {
	liked, err := placeDAO.GetPlacesByIds(ctx, user.LikedPlaces)
	if err != nil {
		return model.PlacesHistory{}, err
	}
	visited, err := placeDAO.GetPlacesByIds(ctx, user.VisitedPlaces)
	if err != nil {
		return model.PlacesHistory{}, err
	}
	return model.PlacesHistory{LikedPlaces: liked, VisitedPlaces: visited}, nil
}
