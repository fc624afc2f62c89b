package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tourism-recommender-server/handlers"
)

func SetupRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	// setup routes
	router.Route("/places", func(r chi.Router) {
		r.Get("/", handlers.HandleGetPlaces)
		r.Get("/recommendations", handlers.HandleGetRecommendations)
		r.Get("/destinations", handlers.HandleGetDestinations)
		r.Get("/available", handlers.HandleGetAvailablePlaces)
		r.Patch("/demographics/{placeId}", handlers.HandleUpdateDemographics)
		r.Get("/{id}", handlers.HandleGetPlace)
	})

	router.Route("/ratings", func(r chi.Router) {
		r.Post("/{placeId}", handlers.HandleCreateRating)
		r.Get("/all/{placeId}", handlers.HandleGetRatingsByPlace)
		r.Get("/{id}", handlers.HandleGetRating)
		r.Delete("/{id}", handlers.HandleDeleteRating)
	})

	router.Route("/users", func(r chi.Router) {
		r.Post("/toggle-like/{placeId}", handlers.HandleToggleLike)
		r.Post("/toggle-visit/{placeId}", handlers.HandleToggleVisit)
		r.Get("/places-history", handlers.HandleGetPlacesHistory)
	})

	router.Post("/resetTestDatabase", handlers.HandleResetTestDatabase)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func SetupServer(port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server
}
