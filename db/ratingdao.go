package db

import (
	"context"

	"github.com/juju/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tourism-recommender-server/log"
	"tourism-recommender-server/model"
)

type RatingDAO struct {
	db         *gorm.DB
	aggregator *RatingAggregator
}

func NewRatingDAO(db *gorm.DB) *RatingDAO {
	return &RatingDAO{db: db, aggregator: aggregator}
}

// CreateRating inserts rating and updates its place aggregate in the same
// transaction. The returned place and user include the new rating.
func (ratingDAO *RatingDAO) CreateRating(ctx context.Context, rating *model.Rating) (model.RatingResult, error) {
	if err := rating.Validate(); err != nil {
		return model.RatingResult{}, err
	}

	var result model.RatingResult
	err := ratingDAO.aggregator.run(ctx, ratingDAO.db, rating.PlaceID, func(tx *gorm.DB) error {
		// lock the place first, it also checks the place exists
		if _, err := ratingDAO.aggregator.lockPlace(tx, rating.PlaceID); err != nil {
			return err
		}
		if err := tx.Select("id_user").Where("id_user = ?", rating.UserID).First(&model.User{}).Error; err != nil {
			return translate(err, "user %s", rating.UserID)
		}

		// save rating, relations are referenced by id only
		if err := tx.Omit(clause.Associations).Create(rating).Error; err != nil {
			return errors.Trace(err)
		}

		var err error
		result, err = ratingDAO.aggregator.OnRatingCreated(tx, rating)
		return err
	})
	if err != nil {
		return model.RatingResult{}, err
	}

	log.Logger().Info("rating created",
		zap.String("rating_id", rating.RatingID),
		zap.String("place_id", rating.PlaceID),
		zap.String("user_id", rating.UserID),
		zap.Int("score", rating.Score))
	return result, nil
}

// GetRating returns a rating owned by userID
func (ratingDAO *RatingDAO) GetRating(ctx context.Context, ratingID, userID string) (model.Rating, error) {
	var rating model.Rating
	err := ratingDAO.db.WithContext(ctx).
		Where("id_rating = ? AND id_user = ?", ratingID, userID).
		First(&rating).Error
	if err != nil {
		return model.Rating{}, translate(err, "rating %s", ratingID)
	}
	return rating, nil
}

// DeleteRating removes a rating owned by userID and recomputes the
// aggregate of its place in the same transaction.
func (ratingDAO *RatingDAO) DeleteRating(ctx context.Context, ratingID, userID string) (model.Rating, error) {
	rating, err := ratingDAO.GetRating(ctx, ratingID, userID)
	if err != nil {
		return model.Rating{}, err
	}

	err = ratingDAO.aggregator.run(ctx, ratingDAO.db, rating.PlaceID, func(tx *gorm.DB) error {
		if _, err := ratingDAO.aggregator.lockPlace(tx, rating.PlaceID); err != nil {
			return err
		}
		result := tx.Where("id_rating = ? AND id_user = ?", ratingID, userID).Delete(&model.Rating{})
		if result.Error != nil {
			return errors.Trace(result.Error)
		}
		if result.RowsAffected == 0 {
			// deleted concurrently
			return errors.NotFoundf("rating %s", ratingID)
		}
		_, err := ratingDAO.aggregator.OnRatingDeleted(tx, rating.PlaceID)
		return err
	})
	if err != nil {
		return model.Rating{}, err
	}
	return rating, nil
}

// RecomputePlaceAggregate rewrites the aggregate of a place from its
// ratings. Running it without rating changes leaves the values unchanged.
func (ratingDAO *RatingDAO) RecomputePlaceAggregate(ctx context.Context, placeID string) (model.PlaceAggregate, error) {
	var aggregate model.PlaceAggregate
	err := ratingDAO.aggregator.run(ctx, ratingDAO.db, placeID, func(tx *gorm.DB) error {
		var err error
		aggregate, err = ratingDAO.aggregator.OnRatingDeleted(tx, placeID)
		return err
	})
	return aggregate, err
}

// ListRatingsByPlace returns one page of ratings of a place, newest first
func (ratingDAO *RatingDAO) ListRatingsByPlace(ctx context.Context, placeID string, page, limit int) (model.Page[model.Rating], error) {
	page, limit = model.NormalizePage(page, limit)

	var total int64
	err := ratingDAO.db.WithContext(ctx).Model(&model.Rating{}).Where("id_place = ?", placeID).Count(&total).Error
	if err != nil {
		return model.Page[model.Rating]{}, errors.Trace(err)
	}

	ratings := []model.Rating{}
	err = ratingDAO.db.WithContext(ctx).
		Preload("User").
		Where("id_place = ?", placeID).
		Scopes(orderByNewest).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return model.Page[model.Rating]{}, errors.Trace(err)
	}
	return model.NewPage(ratings, total, page, limit), nil
}

func (ratingDAO *RatingDAO) CountRatings(ctx context.Context, placeID string) (int64, error) {
	var count int64
	err := ratingDAO.db.WithContext(ctx).Model(&model.Rating{}).Where("id_place = ?", placeID).Count(&count).Error
	return count, errors.Trace(err)
}

func (ratingDAO *RatingDAO) SumRatingScores(ctx context.Context, placeID string) (float64, error) {
	var sum float64
	err := ratingDAO.db.WithContext(ctx).Model(&model.Rating{}).
		Select("COALESCE(SUM(score), 0)").
		Where("id_place = ?", placeID).
		Scan(&sum).Error
	return sum, errors.Trace(err)
}
