package db

import (
	"testing"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"tourism-recommender-server/model"
)

type PlaceDAOTestSuite struct {
	daoTestSuite
}

func placeNames(places []model.Place) []string {
	return lo.Map(places, func(place model.Place, _ int) string {
		return place.Name
	})
}

func (suite *PlaceDAOTestSuite) TestListPlaces() {
	category := model.Category{Title: "nature"}
	suite.NoError(suite.categories.CreateCategory(suite.ctx, &category))
	place := suite.createPlace("Bromo", "hiking", "volcano")
	place.CategoryID = &category.CategoryID
	suite.NoError(suite.places.SavePlace(suite.ctx, &place))
	suite.createPlace("Kuta", "beach")
	suite.rate(place, suite.createUser("ana"), 5)

	places, err := suite.places.ListPlaces(suite.ctx)
	suite.NoError(err)
	suite.Len(places, 2)
	bromo, ok := lo.Find(places, func(p model.Place) bool { return p.PlaceID == place.PlaceID })
	suite.True(ok)
	suite.ElementsMatch([]string{"hiking", "volcano"}, model.InterestTitles(bromo.Interests))
	suite.Len(bromo.Ratings, 1)
	suite.NotNil(bromo.Category)
	suite.Equal("nature", bromo.Category.Title)
}

func (suite *PlaceDAOTestSuite) TestListPlaces_Empty() {
	places, err := suite.places.ListPlaces(suite.ctx)
	suite.NoError(err)
	suite.NotNil(places)
	suite.Empty(places)
}

func (suite *PlaceDAOTestSuite) TestSavePlace_KeepsAggregate() {
	place := suite.createPlace("Ubud", "culture")
	suite.rate(place, suite.createUser("ana"), 4)

	// stale aggregate values from the caller are ignored
	place.Name = "Ubud Palace"
	place.NumOfRatings = 0
	place.AverageRating = 0
	place.Interests, _ = suite.interests.GetOrCreateInterests(suite.ctx, "culture", "dance")
	suite.NoError(suite.places.SavePlace(suite.ctx, &place))

	reloaded := suite.reloadPlace(place.PlaceID)
	suite.Equal("Ubud Palace", reloaded.Name)
	suite.Equal(1, reloaded.NumOfRatings)
	suite.InDelta(4.0, reloaded.AverageRating, 1e-9)
	suite.ElementsMatch([]string{"culture", "dance"}, model.InterestTitles(reloaded.Interests))
}

func (suite *PlaceDAOTestSuite) TestSavePlace_NewPlaceStartsEmpty() {
	place := model.Place{Name: "Komodo", Country: "Indonesia", NumOfRatings: 9, AverageRating: 5}
	suite.NoError(suite.places.SavePlace(suite.ctx, &place))
	suite.NotEmpty(place.PlaceID)

	reloaded := suite.reloadPlace(place.PlaceID)
	suite.Zero(reloaded.NumOfRatings)
	suite.Zero(reloaded.AverageRating)
}

func (suite *PlaceDAOTestSuite) TestGetPlaceById_NotFound() {
	_, err := suite.places.GetPlaceById(suite.ctx, "missing")
	suite.True(errors.Is(err, errors.NotFound))
}

func (suite *PlaceDAOTestSuite) TestGetPlacesByIds() {
	a := suite.createPlace("A")
	suite.createPlace("B")
	c := suite.createPlace("C")

	places, err := suite.places.GetPlacesByIds(suite.ctx, []string{c.PlaceID, "missing", a.PlaceID, c.PlaceID})
	suite.NoError(err)
	suite.Equal([]string{"C", "A", "C"}, placeNames(places))

	places, err = suite.places.GetPlacesByIds(suite.ctx, nil)
	suite.NoError(err)
	suite.Empty(places)
}

func (suite *PlaceDAOTestSuite) TestSearchPlaces() {
	for _, name := range []string{"Kuta Beach", "Sanur Beach", "Ubud", "Nusa Dua Beach"} {
		suite.createPlace(name)
	}

	page, err := suite.places.SearchPlaces(suite.ctx, "BEACH", 1, 2)
	suite.NoError(err)
	suite.Equal([]string{"Kuta Beach", "Nusa Dua Beach"}, placeNames(page.Items))
	suite.Equal(model.PageMeta{TotalItems: 3, ItemCount: 2, ItemsPerPage: 2, TotalPages: 2, CurrentPage: 1}, page.Meta)

	page, err = suite.places.SearchPlaces(suite.ctx, "beach", 2, 2)
	suite.NoError(err)
	suite.Equal([]string{"Sanur Beach"}, placeNames(page.Items))

	// description is matched too
	page, err = suite.places.SearchPlaces(suite.ctx, "the ubud", 1, 10)
	suite.NoError(err)
	suite.Equal([]string{"Ubud"}, placeNames(page.Items))

	page, err = suite.places.SearchPlaces(suite.ctx, "", 0, 0)
	suite.NoError(err)
	suite.Len(page.Items, 4)
}

func (suite *PlaceDAOTestSuite) TestUpdateDemographics() {
	place := suite.createPlace("Ubud")
	demographics := model.Demographics{Age: 30, Gender: "female", Location: "Bali"}

	updated, err := suite.places.UpdateDemographics(suite.ctx, place.PlaceID, demographics)
	suite.NoError(err)
	suite.Equal(&demographics, updated.Demographics)
	suite.Equal(place.Name, updated.Name)

	_, err = suite.places.UpdateDemographics(suite.ctx, "missing", demographics)
	suite.True(errors.Is(err, errors.NotFound))
}

func (suite *PlaceDAOTestSuite) TestGetDestinations() {
	a := suite.createPlace("A")
	b := suite.createPlace("B")
	user := suite.createUser("ana")

	_, err := suite.users.ToggleVisitedPlace(suite.ctx, user.UserID, a.PlaceID)
	suite.NoError(err)
	user, err = suite.users.ToggleLikedPlace(suite.ctx, user.UserID, b.PlaceID)
	suite.NoError(err)

	destinations, err := suite.places.GetDestinations(suite.ctx, user)
	suite.NoError(err)
	suite.Equal([]string{"B", "A"}, placeNames(destinations))
}

func TestPlaceDAO(t *testing.T) {
	suite.Run(t, new(PlaceDAOTestSuite))
}
