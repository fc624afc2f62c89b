package handlers

import (
	"net/http"

	"tourism-recommender-server/config"
	"tourism-recommender-server/db"
	"tourism-recommender-server/internals"
)

var recommender *internals.Recommender

// InitRecommender builds the engine shared by all requests on top of the
// current database handle.
func InitRecommender(cfg config.RecommendConfig) {
	database := db.GetDB()
	recommender = internals.NewRecommender(db.NewUserDAO(database), db.NewPlaceDAO(database), internals.RecommenderOptions{
		CacheTTL:     cfg.CacheTTL,
		Deduplicate:  cfg.Deduplicate,
		ExcludeRated: cfg.ExcludeRated,
	})
	recommender.Start()
}

func CloseRecommender() {
	if recommender != nil {
		recommender.Stop()
	}
}

// purgeRecommendations drops every cached list after a change to ratings
// or places
func purgeRecommendations() {
	if recommender != nil {
		recommender.Purge()
	}
}

func HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	user, err := authenticateUser(r)
	if err != nil {
		writeError(w, r, err, "Unauthorized")
		return
	}

	recommendations, err := recommender.Recommend(r.Context(), user.UserID)
	if err != nil {
		writeError(w, r, err, "Error computing recommendations")
		return
	}
	writeJSON(w, http.StatusOK, recommendations)
}
