package db

import (
	"context"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"tourism-recommender-server/model"
)

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

func (userDAO *UserDAO) GetUserById(ctx context.Context, userID string) (model.User, error) {
	var user model.User
	err := userDAO.db.WithContext(ctx).Where("id_user = ?", userID).First(&user).Error
	if err != nil {
		return model.User{}, translate(err, "user %s", userID)
	}
	return user, nil
}

func (userDAO *UserDAO) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (model.User, error) {
	var user model.User
	err := userDAO.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error
	if err != nil {
		return model.User{}, translate(err, "user with firebase uid %s", firebaseUID)
	}
	return user, nil
}

// GetUserInterests resolves the interest profile of a user. A user without
// interests has an empty, non nil profile.
func (userDAO *UserDAO) GetUserInterests(ctx context.Context, userID string) ([]model.Interest, error) {
	var user model.User
	err := userDAO.db.WithContext(ctx).
		Preload("Interests", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("title")
		}).
		Where("id_user = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, translate(err, "user %s", userID)
	}
	if user.Interests == nil {
		return []model.Interest{}, nil
	}
	return user.Interests, nil
}

// AddUser creates a user and links the given interests, which must exist
func (userDAO *UserDAO) AddUser(ctx context.Context, user model.User) (model.User, error) {
	err := userDAO.db.WithContext(ctx).Omit("Interests.*", "Ratings").Create(&user).Error
	return user, errors.Trace(err)
}

func (userDAO *UserDAO) SetUserInterests(ctx context.Context, userID string, interests []model.Interest) error {
	user := model.User{UserID: userID}
	err := userDAO.db.WithContext(ctx).Model(&user).Omit("Interests.*").Association("Interests").Replace(interests)
	return errors.Trace(err)
}

// ToggleLikedPlace adds placeID to the liked places of the user, or removes
// it when already present.
func (userDAO *UserDAO) ToggleLikedPlace(ctx context.Context, userID, placeID string) (model.User, error) {
	return userDAO.togglePlace(ctx, userID, placeID, func(user *model.User) *[]string {
		return &user.LikedPlaces
	}, "liked_places")
}

func (userDAO *UserDAO) ToggleVisitedPlace(ctx context.Context, userID, placeID string) (model.User, error) {
	return userDAO.togglePlace(ctx, userID, placeID, func(user *model.User) *[]string {
		return &user.VisitedPlaces
	}, "visited_places")
}

func (userDAO *UserDAO) togglePlace(ctx context.Context, userID, placeID string, list func(*model.User) *[]string, column string) (model.User, error) {
	var user model.User
	err := userDAO.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Select("id_place").Where("id_place = ?", placeID).First(&model.Place{}).Error
		if err != nil {
			return translate(err, "place %s", placeID)
		}
		// concurrent toggles of the same user must not overwrite each other
		if err = tx.Scopes(forUpdate).Where("id_user = ?", userID).First(&user).Error; err != nil {
			return translate(err, "user %s", userID)
		}

		places := list(&user)
		if lo.Contains(*places, placeID) {
			*places = lo.Without(*places, placeID)
		} else {
			*places = append(*places, placeID)
		}
		return errors.Trace(tx.Model(&user).Select(column).Updates(&user).Error)
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// GetUserHistory returns the liked and visited places of a user
func (userDAO *UserDAO) GetUserHistory(ctx context.Context, userID string) (model.PlacesHistory, error) {
	user, err := userDAO.GetUserById(ctx, userID)
	if err != nil {
		return model.PlacesHistory{}, err
	}
	return NewPlaceDAO(userDAO.db).getHistory(ctx, user)
}
