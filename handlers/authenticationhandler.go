package handlers

import (
	"net/http"
	"strings"

	"github.com/juju/errors"

	"tourism-recommender-server/db"
	"tourism-recommender-server/externals"
	"tourism-recommender-server/model"
)

// authenticateUser resolves the caller from the firebase bearer token
func authenticateUser(r *http.Request) (model.User, error) {
	// get Firebase token
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return model.User{}, errors.Unauthorizedf("missing or invalid auth header")
	}
	idToken := strings.TrimPrefix(authHeader, "Bearer ")

	// verify Firebase token
	firebaseUID, err := externals.VerifyFirebaseToken(r.Context(), idToken)
	if err != nil {
		return model.User{}, err
	}

	userDAO := db.NewUserDAO(db.GetDB())
	user, err := userDAO.GetUserByFirebaseUID(r.Context(), firebaseUID)
	if errors.Is(err, errors.NotFound) {
		return model.User{}, errors.Unauthorizedf("no user for the token")
	}
	return user, err
}
