package handlers

import (
	"net/http"

	"tourism-recommender-server/db"
	"tourism-recommender-server/log"
)

func HandleResetTestDatabase(w http.ResponseWriter, r *http.Request) {
	err := db.ResetTestDatabase()
	if err != nil {
		writeError(w, r, err, "Error resetting test database")
		return
	}
	// cached lists point at deleted places
	purgeRecommendations()
	log.Logger().Info("test database reset")
	w.WriteHeader(http.StatusOK)
}
