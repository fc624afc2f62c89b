package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juju/errors"

	"tourism-recommender-server/db"
	"tourism-recommender-server/model"
)

func HandleGetDestinations(w http.ResponseWriter, r *http.Request) {
	user, err := authenticateUser(r)
	if err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}

	placeDAO := db.NewPlaceDAO(db.GetDB())
	places, err := placeDAO.GetDestinations(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "Error getting destinations")
		return
	}
	writeJSON(w, http.StatusOK, places)
}

// HandleGetPlaces lists every place, paginated
func HandleGetPlaces(w http.ResponseWriter, r *http.Request) {
	if _, err := authenticateUser(r); err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}
	page, limit, err := pageParams(r)
	if err != nil {
		writeError(w, r, err, "Invalid pagination")
		return
	}

	placeDAO := db.NewPlaceDAO(db.GetDB())
	places, err := placeDAO.SearchPlaces(r.Context(), "", page, limit)
	if err != nil {
		writeError(w, r, err, "Error retrieving places")
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func HandleGetAvailablePlaces(w http.ResponseWriter, r *http.Request) {
	if _, err := authenticateUser(r); err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}
	page, limit, err := pageParams(r)
	if err != nil {
		writeError(w, r, err, "Invalid pagination")
		return
	}

	placeDAO := db.NewPlaceDAO(db.GetDB())
	places, err := placeDAO.SearchPlaces(r.Context(), r.URL.Query().Get("searchTerm"), page, limit)
	if err != nil {
		writeError(w, r, err, "Error searching places")
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func HandleGetPlace(w http.ResponseWriter, r *http.Request) {
	if _, err := authenticateUser(r); err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}

	placeDAO := db.NewPlaceDAO(db.GetDB())
	place, err := placeDAO.GetPlaceById(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "Place could not be found")
		return
	}
	writeJSON(w, http.StatusOK, place)
}

func HandleUpdateDemographics(w http.ResponseWriter, r *http.Request) {
	if _, err := authenticateUser(r); err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}

	var demographics model.Demographics
	if err := decodeJSON(r, &demographics); err != nil {
		writeError(w, r, err, "Invalid data format")
		return
	}
	if err := model.Validator().Struct(demographics); err != nil {
		writeError(w, r, errors.NewNotValid(err, "invalid demographics"), "Invalid demographics")
		return
	}

	placeDAO := db.NewPlaceDAO(db.GetDB())
	place, err := placeDAO.UpdateDemographics(r.Context(), chi.URLParam(r, "placeId"), demographics)
	if err != nil {
		writeError(w, r, err, "Error updating demographics")
		return
	}
	purgeRecommendations()
	writeJSON(w, http.StatusOK, place)
}
