package handlers

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"tourism-recommender-server/db"
	"tourism-recommender-server/log"
)

// statusOf maps the error taxonomy of the stores to an HTTP status
func statusOf(err error) int {
	switch {
	case errors.Is(err, errors.Unauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errors.Forbidden):
		return http.StatusForbidden
	case errors.Is(err, errors.NotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.NotValid), errors.Is(err, errors.BadRequest):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrAggregateConflict):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := statusOf(err)
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		log.Logger().Error(message, fields...)
	} else {
		log.Logger().Info(message, fields...)
	}
	http.Error(w, message, status)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Logger().Error("error encoding JSON", zap.Error(err))
	}
}

// decodeJSON reads the request body into value
func decodeJSON(r *http.Request, value any) error {
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Logger().Warn("error closing request body", zap.Error(err))
		}
	}()
	if err := json.NewDecoder(r.Body).Decode(value); err != nil {
		return errors.NewBadRequest(err, "invalid data format")
	}
	return nil
}

// pageParams reads the optional page and limit query parameters
func pageParams(r *http.Request) (int, int, error) {
	page, limit := 0, 0
	var err error
	if value := r.URL.Query().Get("page"); value != "" {
		if page, err = strconv.Atoi(value); err != nil || page < 1 {
			return 0, 0, errors.BadRequestf("page %q is not valid", value)
		}
	}
	if value := r.URL.Query().Get("limit"); value != "" {
		if limit, err = strconv.Atoi(value); err != nil || limit < 1 {
			return 0, 0, errors.BadRequestf("limit %q is not valid", value)
		}
	}
	return page, limit, nil
}
