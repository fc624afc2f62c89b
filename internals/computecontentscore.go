package internals

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"tourism-recommender-server/model"
)

// ComputeContentScores scores every place by the number of interest titles
// it shares with userInterests. Titles match by exact equality and count
// once each. Places sharing nothing are dropped. The result is sorted by
// score, highest first, and by place id between equal scores.
func ComputeContentScores(userInterests []string, places []model.Place) []model.Recommendation {
	recommendations := []model.Recommendation{}
	if len(userInterests) == 0 {
		return recommendations
	}

	profile := mapset.NewThreadUnsafeSet(userInterests...)
	for _, place := range places {
		placeInterests := mapset.NewThreadUnsafeSet(model.InterestTitles(place.Interests)...)
		score := placeInterests.Intersect(profile).Cardinality()
		if score == 0 {
			continue
		}
		recommendations = append(recommendations, model.Recommendation{
			Place:  place,
			Score:  score,
			Source: model.SourceContent,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].Place.PlaceID < recommendations[j].Place.PlaceID
	})
	return recommendations
}
