package internals

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/juju/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tourism-recommender-server/log"
	"tourism-recommender-server/metrics"
	"tourism-recommender-server/model"
)

// UserProfileStore resolves the interest profile of a user. It fails with a
// NotFound error when the user does not exist.
type UserProfileStore interface {
	GetUserInterests(ctx context.Context, userID string) ([]model.Interest, error)
}

// PlaceCatalog lists every place with its interests and ratings loaded.
type PlaceCatalog interface {
	ListPlaces(ctx context.Context) ([]model.Place, error)
}

type RecommenderOptions struct {
	// CacheTTL keeps a user's list for this long; 0 disables the cache
	CacheTTL time.Duration
	// Deduplicate keeps one entry per place in the merged list
	Deduplicate bool
	// ExcludeRated drops collaborative candidates the user already rated
	ExcludeRated bool
}

// Recommender ranks places for a user by shared interests, then appends
// places rated by users who rated the same places. It is safe for
// concurrent use.
type Recommender struct {
	users   UserProfileStore
	places  PlaceCatalog
	options RecommenderOptions
	cache   *ttlcache.Cache[string, []model.Recommendation]
}

func NewRecommender(users UserProfileStore, places PlaceCatalog, options RecommenderOptions) *Recommender {
	recommender := &Recommender{
		users:   users,
		places:  places,
		options: options,
	}
	if options.CacheTTL > 0 {
		recommender.cache = ttlcache.New(
			ttlcache.WithTTL[string, []model.Recommendation](options.CacheTTL),
			ttlcache.WithDisableTouchOnHit[string, []model.Recommendation](),
		)
	}
	return recommender
}

// Start runs the cache janitor until Stop is called
func (r *Recommender) Start() {
	if r.cache != nil {
		go r.cache.Start()
	}
}

func (r *Recommender) Stop() {
	if r.cache != nil {
		r.cache.Stop()
	}
}

// Recommend returns the ranked places for userID. An empty list is a valid
// result.
func (r *Recommender) Recommend(ctx context.Context, userID string) ([]model.Recommendation, error) {
	start := time.Now()
	if r.cache != nil {
		if item := r.cache.Get(userID); item != nil {
			metrics.RecommendationRequests.WithLabelValues(metrics.ResultCached).Inc()
			return item.Value(), nil
		}
	}

	recommendations, err := r.recommend(ctx, userID)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			metrics.RecommendationRequests.WithLabelValues(metrics.ResultNotFound).Inc()
		} else {
			metrics.RecommendationRequests.WithLabelValues(metrics.ResultError).Inc()
		}
		return nil, err
	}

	if r.cache != nil {
		r.cache.Set(userID, recommendations, ttlcache.DefaultTTL)
	}
	metrics.RecommendationRequests.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.RecommendationSeconds.Observe(time.Since(start).Seconds())
	metrics.RecommendationResults.Observe(float64(len(recommendations)))
	return recommendations, nil
}

func (r *Recommender) recommend(ctx context.Context, userID string) ([]model.Recommendation, error) {
	interests, err := r.users.GetUserInterests(ctx, userID)
	if err != nil {
		return nil, errors.Trace(err)
	}
	places, err := r.places.ListPlaces(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	// both passes only read the same catalog snapshot
	var (
		content       []model.Recommendation
		collaborative []model.Place
	)
	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		content = ComputeContentScores(model.InterestTitles(interests), places)
		return nil
	})
	group.Go(func() error {
		collaborative = FindCollaborativeCandidates(userID, places, r.options.ExcludeRated)
		return nil
	})
	if err = group.Wait(); err != nil {
		return nil, err
	}

	recommendations := MergeRecommendations(content, collaborative, r.options.Deduplicate)
	log.Logger().Debug("recommendations computed",
		zap.String("user_id", userID),
		zap.Int("interests", len(interests)),
		zap.Int("catalog", len(places)),
		zap.Int("content", len(content)),
		zap.Int("collaborative", len(collaborative)),
		zap.Int("returned", len(recommendations)))
	return recommendations, nil
}

// Purge drops every cached list. Cached entries embed place aggregates and
// co-rater candidates, so any rating change makes all of them stale.
func (r *Recommender) Purge() {
	if r.cache != nil {
		r.cache.DeleteAll()
	}
}
