package internals

import "tourism-recommender-server/model"

// ComputeRatingAggregate derives the count and mean of the ratings of one
// place from their count and score sum. No ratings means an average of 0.
func ComputeRatingAggregate(placeID string, count, sum int64) model.PlaceAggregate {
	aggregate := model.PlaceAggregate{
		PlaceID:      placeID,
		NumOfRatings: int(count),
	}
	if count > 0 {
		aggregate.AverageRating = float64(sum) / float64(count)
	}
	return aggregate
}
