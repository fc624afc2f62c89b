package db

import (
	"fmt"
	"sync"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tourism-recommender-server/model"
)

type UserDAOTestSuite struct {
	daoTestSuite
}

func (suite *UserDAOTestSuite) TestGetUserInterests() {
	user := suite.createUser("ana", "museum", "beach")

	interests, err := suite.users.GetUserInterests(suite.ctx, user.UserID)
	suite.NoError(err)
	suite.Equal([]string{"beach", "museum"}, model.InterestTitles(interests))

	empty := suite.createUser("budi")
	interests, err = suite.users.GetUserInterests(suite.ctx, empty.UserID)
	suite.NoError(err)
	suite.NotNil(interests)
	suite.Empty(interests)

	_, err = suite.users.GetUserInterests(suite.ctx, "missing")
	suite.True(errors.Is(err, errors.NotFound))
}

func (suite *UserDAOTestSuite) TestSetUserInterests() {
	user := suite.createUser("ana", "museum")
	interests, err := suite.interests.GetOrCreateInterests(suite.ctx, "hiking", "food")
	suite.NoError(err)

	suite.NoError(suite.users.SetUserInterests(suite.ctx, user.UserID, interests))
	updated, err := suite.users.GetUserInterests(suite.ctx, user.UserID)
	suite.NoError(err)
	suite.Equal([]string{"food", "hiking"}, model.InterestTitles(updated))
}

func (suite *UserDAOTestSuite) TestAddUser() {
	user := suite.createUser("ana")
	suite.NotEmpty(user.UserID)
	suite.Equal(model.RoleTourist, user.Role)

	found, err := suite.users.GetUserByFirebaseUID(suite.ctx, user.FirebaseUID)
	suite.NoError(err)
	suite.Equal(user.UserID, found.UserID)

	_, err = suite.users.GetUserByFirebaseUID(suite.ctx, "unknown")
	suite.True(errors.Is(err, errors.NotFound))
	_, err = suite.users.GetUserById(suite.ctx, "unknown")
	suite.True(errors.Is(err, errors.NotFound))
}

func (suite *UserDAOTestSuite) TestTogglePlaces() {
	a := suite.createPlace("A")
	b := suite.createPlace("B")
	user := suite.createUser("ana")

	user, err := suite.users.ToggleLikedPlace(suite.ctx, user.UserID, a.PlaceID)
	suite.NoError(err)
	suite.Equal([]string{a.PlaceID}, user.LikedPlaces)
	user, err = suite.users.ToggleLikedPlace(suite.ctx, user.UserID, b.PlaceID)
	suite.NoError(err)
	suite.Equal([]string{a.PlaceID, b.PlaceID}, user.LikedPlaces)
	user, err = suite.users.ToggleLikedPlace(suite.ctx, user.UserID, a.PlaceID)
	suite.NoError(err)
	suite.Equal([]string{b.PlaceID}, user.LikedPlaces)

	user, err = suite.users.ToggleVisitedPlace(suite.ctx, user.UserID, a.PlaceID)
	suite.NoError(err)
	suite.Equal([]string{a.PlaceID}, user.VisitedPlaces)
	suite.Equal([]string{b.PlaceID}, user.LikedPlaces)

	_, err = suite.users.ToggleLikedPlace(suite.ctx, user.UserID, "missing")
	suite.True(errors.Is(err, errors.NotFound))
	_, err = suite.users.ToggleVisitedPlace(suite.ctx, "missing", a.PlaceID)
	suite.True(errors.Is(err, errors.NotFound))
}

func (suite *UserDAOTestSuite) TestTogglePlaces_Concurrent() {
	user := suite.createUser("ana")
	places := make([]string, 8)
	for i := range places {
		places[i] = suite.createPlace(fmt.Sprintf("P%d", i)).PlaceID
	}

	var wg sync.WaitGroup
	for _, placeID := range places {
		wg.Add(1)
		go func(placeID string) {
			defer wg.Done()
			_, err := suite.users.ToggleLikedPlace(suite.ctx, user.UserID, placeID)
			suite.NoError(err)
		}(placeID)
	}
	wg.Wait()

	reloaded, err := suite.users.GetUserById(suite.ctx, user.UserID)
	suite.NoError(err)
	suite.ElementsMatch(places, reloaded.LikedPlaces)
}

func (suite *UserDAOTestSuite) TestGetUserHistory() {
	a := suite.createPlace("A")
	b := suite.createPlace("B")
	user := suite.createUser("ana")
	_, err := suite.users.ToggleLikedPlace(suite.ctx, user.UserID, a.PlaceID)
	suite.NoError(err)
	_, err = suite.users.ToggleVisitedPlace(suite.ctx, user.UserID, b.PlaceID)
	suite.NoError(err)
	_, err = suite.users.ToggleVisitedPlace(suite.ctx, user.UserID, a.PlaceID)
	suite.NoError(err)

	history, err := suite.users.GetUserHistory(suite.ctx, user.UserID)
	suite.NoError(err)
	suite.Equal([]string{"A"}, placeNames(history.LikedPlaces))
	suite.Equal([]string{"B", "A"}, placeNames(history.VisitedPlaces))

	_, err = suite.users.GetUserHistory(suite.ctx, "missing")
	suite.True(errors.Is(err, errors.NotFound))
}

func TestUserDAO(t *testing.T) {
	suite.Run(t, new(UserDAOTestSuite))
}

func TestForUpdate(t *testing.T) {
	pg, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=tourism dbname=tourism"}),
		&gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	lookup := func(tx *gorm.DB) *gorm.DB {
		return tx.Scopes(forUpdate).Where("id_user = ?", "u1").First(&model.User{})
	}

	assert.Contains(t, pg.ToSQL(lookup), "FOR UPDATE")
	assert.NotContains(t, openTestDB(t).ToSQL(lookup), "FOR UPDATE")
}
