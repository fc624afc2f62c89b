package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juju/errors"

	"tourism-recommender-server/db"
	"tourism-recommender-server/model"
)

func HandleCreateRating(w http.ResponseWriter, r *http.Request) {
	user, err := authenticateUser(r)
	if err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}

	// decode json data
	var request model.CreateRatingRequest
	if err = decodeJSON(r, &request); err != nil {
		writeError(w, r, err, "Invalid data format")
		return
	}
	// check rating data
	if err = model.Validator().Struct(request); err != nil {
		writeError(w, r, errors.NewNotValid(err, "invalid rating"), "Invalid rating value")
		return
	}

	rating := model.Rating{
		PlaceID: chi.URLParam(r, "placeId"),
		UserID:  user.UserID,
		Score:   request.Rating,
		Comment: request.Comment,
	}
	ratingDAO := db.NewRatingDAO(db.GetDB())
	result, err := ratingDAO.CreateRating(r.Context(), &rating)
	if err != nil {
		writeError(w, r, err, "Error creating rating")
		return
	}
	purgeRecommendations()

	writeJSON(w, http.StatusCreated, result)
}

func HandleGetRatingsByPlace(w http.ResponseWriter, r *http.Request) {
	if _, err := authenticateUser(r); err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}
	page, limit, err := pageParams(r)
	if err != nil {
		writeError(w, r, err, "Invalid pagination")
		return
	}

	ratingDAO := db.NewRatingDAO(db.GetDB())
	ratings, err := ratingDAO.ListRatingsByPlace(r.Context(), chi.URLParam(r, "placeId"), page, limit)
	if err != nil {
		writeError(w, r, err, "Error getting ratings")
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

func HandleGetRating(w http.ResponseWriter, r *http.Request) {
	user, err := authenticateUser(r)
	if err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}

	ratingDAO := db.NewRatingDAO(db.GetDB())
	rating, err := ratingDAO.GetRating(r.Context(), chi.URLParam(r, "id"), user.UserID)
	if err != nil {
		writeError(w, r, err, "Rating could not be found")
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

func HandleDeleteRating(w http.ResponseWriter, r *http.Request) {
	user, err := authenticateUser(r)
	if err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}

	ratingDAO := db.NewRatingDAO(db.GetDB())
	rating, err := ratingDAO.DeleteRating(r.Context(), chi.URLParam(r, "id"), user.UserID)
	if err != nil {
		writeError(w, r, err, "Error deleting rating")
		return
	}
	purgeRecommendations()

	writeJSON(w, http.StatusOK, rating)
}
