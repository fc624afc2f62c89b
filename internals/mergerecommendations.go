package internals

import (
	mapset "github.com/deckarep/golang-set/v2"

	"tourism-recommender-server/model"
)

// MergeRecommendations appends the collaborative candidates to the content
// ranking. With deduplicate only the first occurrence of a place is kept,
// which is its highest scoring one since content results come first and are
// sorted.
func MergeRecommendations(content []model.Recommendation, collaborative []model.Place, deduplicate bool) []model.Recommendation {
	merged := make([]model.Recommendation, 0, len(content)+len(collaborative))
	seen := mapset.NewThreadUnsafeSet[string]()

	add := func(recommendation model.Recommendation) {
		if deduplicate && !seen.Add(recommendation.Place.PlaceID) {
			return
		}
		merged = append(merged, recommendation)
	}

	for _, recommendation := range content {
		add(recommendation)
	}
	for _, place := range collaborative {
		add(model.Recommendation{
			Place:  place,
			Score:  0,
			Source: model.SourceCollaborative,
		})
	}
	return merged
}
