package internals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tourism-recommender-server/model"
)

func TestMergeRecommendations(t *testing.T) {
	content := []model.Recommendation{
		{Place: model.Place{PlaceID: "p2"}, Score: 2, Source: model.SourceContent},
		{Place: model.Place{PlaceID: "p1"}, Score: 1, Source: model.SourceContent},
	}
	collaborative := []model.Place{{PlaceID: "p3"}, {PlaceID: "p1"}}

	merged := MergeRecommendations(content, collaborative, true)
	assert.Equal(t, []string{"p2", "p1", "p3"}, placeIDs(merged))
	assert.Equal(t, 1, merged[1].Score)
	assert.Equal(t, model.SourceContent, merged[1].Source)
	assert.Equal(t, 0, merged[2].Score)
	assert.Equal(t, model.SourceCollaborative, merged[2].Source)

	// without deduplication a place may appear twice
	merged = MergeRecommendations(content, collaborative, false)
	assert.Equal(t, []string{"p2", "p1", "p3", "p1"}, placeIDs(merged))
}

func TestMergeRecommendations_Empty(t *testing.T) {
	merged := MergeRecommendations(nil, nil, true)
	assert.NotNil(t, merged)
	assert.Empty(t, merged)
}

func TestComputeRatingAggregate(t *testing.T) {
	assert.Equal(t, model.PlaceAggregate{PlaceID: "p", NumOfRatings: 3, AverageRating: 4}, ComputeRatingAggregate("p", 3, 12))
	assert.Equal(t, model.PlaceAggregate{PlaceID: "p"}, ComputeRatingAggregate("p", 0, 0))
	assert.InDelta(t, 3.5, ComputeRatingAggregate("p", 2, 7).AverageRating, 1e-9)
}
