package db

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/juju/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourism-recommender-server/internals"
	"tourism-recommender-server/log"
	"tourism-recommender-server/metrics"
	"tourism-recommender-server/model"
)

const defaultMaxRetries = 5

// ErrAggregateConflict reports that another writer changed a place's
// aggregate between our read and our conditional write.
const ErrAggregateConflict = errors.ConstError("concurrent rating aggregate update")

// postgres serialization_failure and deadlock_detected
var retryableSQLStates = []string{"40001", "40P01"}

var aggregator = NewRatingAggregator(defaultMaxRetries)

// RatingAggregator keeps num_of_ratings and average_rating of a place equal
// to the count and mean of the ratings referencing it. Every
// read-recompute-write cycle runs inside the transaction that changed the
// ratings, under a per-place lock, and ends with a conditional update on
// aggregate_version.
type RatingAggregator struct {
	locks      *placeLocks
	maxRetries uint
}

func NewRatingAggregator(maxRetries uint) *RatingAggregator {
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	return &RatingAggregator{
		locks:      newPlaceLocks(),
		maxRetries: maxRetries,
	}
}

// SetMaxRetries replaces the package aggregator used by NewRatingDAO.
func SetMaxRetries(maxRetries uint) {
	aggregator = NewRatingAggregator(maxRetries)
}

// run executes fn in a transaction while holding the lock of placeID.
// Conflicts roll the transaction back and retry it with exponential backoff.
func (a *RatingAggregator) run(ctx context.Context, database *gorm.DB, placeID string, fn func(tx *gorm.DB) error) error {
	unlock := a.locks.Lock(placeID)
	defer unlock()

	start := time.Now()
	defer func() {
		metrics.RatingAggregateSeconds.Observe(time.Since(start).Seconds())
	}()

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := database.WithContext(ctx).Transaction(fn)
		if err == nil {
			return struct{}{}, nil
		}
		if isConflict(err) {
			metrics.RatingAggregateConflicts.Inc()
			log.Logger().Warn("rating aggregate conflict",
				zap.String("place_id", placeID), zap.Int("attempt", attempt), zap.Error(err))
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}, backoff.WithBackOff(newBackOff()), backoff.WithMaxTries(a.maxRetries))
	if err != nil && isConflict(err) {
		return errors.Annotatef(err, "place %s aggregate still conflicting after %d attempts", placeID, attempt)
	}
	return err
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	return b
}

func isConflict(err error) bool {
	if errors.Is(err, ErrAggregateConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, state := range retryableSQLStates {
			if pgErr.Code == state {
				return true
			}
		}
	}
	return false
}

// lockPlace reads the place row, locking it on databases with row locks.
func (a *RatingAggregator) lockPlace(tx *gorm.DB, placeID string) (model.Place, error) {
	var place model.Place
	err := tx.Scopes(forUpdate).
		Select("id_place", "aggregate_version").
		Where("id_place = ?", placeID).
		First(&place).Error
	if err != nil {
		return model.Place{}, translate(err, "place %s", placeID)
	}
	return place, nil
}

type ratingTotals struct {
	Count int64
	Total int64
}

// recompute derives the aggregate from the ratings of one place and writes
// it back if nobody else did since lockPlace.
func (a *RatingAggregator) recompute(tx *gorm.DB, place model.Place) (model.PlaceAggregate, error) {
	var totals ratingTotals
	err := tx.Model(&model.Rating{}).
		Select("COUNT(*) AS count, COALESCE(SUM(score), 0) AS total").
		Where("id_place = ?", place.PlaceID).
		Scan(&totals).Error
	if err != nil {
		return model.PlaceAggregate{}, errors.Trace(err)
	}

	aggregate := internals.ComputeRatingAggregate(place.PlaceID, totals.Count, totals.Total)

	result := tx.Model(&model.Place{}).
		Where("id_place = ? AND aggregate_version = ?", place.PlaceID, place.AggregateVersion).
		Updates(map[string]any{
			"num_of_ratings":    aggregate.NumOfRatings,
			"average_rating":    aggregate.AverageRating,
			"aggregate_version": gorm.Expr("aggregate_version + 1"),
		})
	if result.Error != nil {
		return model.PlaceAggregate{}, errors.Trace(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.PlaceAggregate{}, ErrAggregateConflict
	}
	return aggregate, nil
}

// OnRatingCreated runs in the transaction that inserted rating. It updates
// the place aggregate and reloads the place and the author so that both
// rating collections include the new rating.
func (a *RatingAggregator) OnRatingCreated(tx *gorm.DB, rating *model.Rating) (model.RatingResult, error) {
	place, err := a.lockPlace(tx, rating.PlaceID)
	if err != nil {
		return model.RatingResult{}, err
	}
	aggregate, err := a.recompute(tx, place)
	if err != nil {
		return model.RatingResult{}, err
	}

	var result model.RatingResult
	err = tx.Preload("Ratings", orderByNewest).
		Preload("Interests").
		Preload("Category").
		Preload("Picture").
		Where("id_place = ?", rating.PlaceID).
		First(&result.Place).Error
	if err != nil {
		return model.RatingResult{}, translate(err, "place %s", rating.PlaceID)
	}
	err = tx.Preload("Ratings", orderByNewest).
		Where("id_user = ?", rating.UserID).
		First(&result.User).Error
	if err != nil {
		return model.RatingResult{}, translate(err, "user %s", rating.UserID)
	}
	result.Rating = *rating

	log.Logger().Debug("rating aggregate updated",
		zap.String("place_id", aggregate.PlaceID),
		zap.Int("num_of_ratings", aggregate.NumOfRatings),
		zap.Float64("average_rating", aggregate.AverageRating))
	return result, nil
}

// OnRatingDeleted runs in the transaction that deleted a rating of placeID.
func (a *RatingAggregator) OnRatingDeleted(tx *gorm.DB, placeID string) (model.PlaceAggregate, error) {
	place, err := a.lockPlace(tx, placeID)
	if err != nil {
		return model.PlaceAggregate{}, err
	}
	return a.recompute(tx, place)
}

func orderByNewest(tx *gorm.DB) *gorm.DB {
	return tx.Order("created_at desc, id_rating desc")
}
