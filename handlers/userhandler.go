package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tourism-recommender-server/db"
)

func HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	user, err := authenticateUser(r)
	if err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}

	userDAO := db.NewUserDAO(db.GetDB())
	user, err = userDAO.ToggleLikedPlace(r.Context(), user.UserID, chi.URLParam(r, "placeId"))
	if err != nil {
		writeError(w, r, err, "Error updating liked places")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func HandleToggleVisit(w http.ResponseWriter, r *http.Request) {
	user, err := authenticateUser(r)
	if err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}

	userDAO := db.NewUserDAO(db.GetDB())
	user, err = userDAO.ToggleVisitedPlace(r.Context(), user.UserID, chi.URLParam(r, "placeId"))
	if err != nil {
		writeError(w, r, err, "Error updating visited places")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func HandleGetPlacesHistory(w http.ResponseWriter, r *http.Request) {
	user, err := authenticateUser(r)
	if err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}

	userDAO := db.NewUserDAO(db.GetDB())
	history, err := userDAO.GetUserHistory(r.Context(), user.UserID)
	if err != nil {
		writeError(w, r, err, "Error getting places history")
		return
	}
	writeJSON(w, http.StatusOK, history)
}
