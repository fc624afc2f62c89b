package model

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestRating_Validate(t *testing.T) {
	rating := Rating{PlaceID: "p", UserID: "u", Score: MinRatingScore, Comment: "ok"}
	assert.NoError(t, rating.Validate())
	rating.Score = MaxRatingScore
	assert.NoError(t, rating.Validate())

	for _, invalid := range []Rating{
		{Score: MinRatingScore - 1, Comment: "too low"},
		{Score: MaxRatingScore + 1, Comment: "too high"},
		{Score: 3, Comment: "x"},
		{Score: 3, Comment: string(make([]byte, 151))},
	} {
		err := invalid.Validate()
		assert.True(t, errors.Is(err, errors.NotValid), err)
	}
}

func TestCreateRatingRequest(t *testing.T) {
	assert.NoError(t, Validator().Struct(CreateRatingRequest{Rating: 5, Comment: "lovely"}))
	assert.Error(t, Validator().Struct(CreateRatingRequest{Rating: 0, Comment: "lovely"}))
	assert.Error(t, Validator().Struct(CreateRatingRequest{Rating: 4}))
}

func TestInterestTitles(t *testing.T) {
	assert.Equal(t, []string{"beach", "museum"}, InterestTitles([]Interest{{Title: "beach"}, {Title: "museum"}}))
	assert.Empty(t, InterestTitles(nil))
}
