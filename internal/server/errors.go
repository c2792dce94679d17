package server

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
	"github.com/tristan-derez/league-stats/internal/service"
	"github.com/tristan-derez/league-stats/internal/transformer"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps the error taxonomy to HTTP statuses.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalidErr  *riotapi.InvalidParameterError
		rateErr     *riotapi.RateLimitExceededError
		upstreamErr *riotapi.UpstreamError
		networkErr  *riotapi.NetworkError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &invalidErr):
		status = http.StatusBadRequest
	case errors.As(err, &rateErr):
		status = http.StatusTooManyRequests
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(rateErr.RetryAfter.Seconds()))))
	case errors.As(err, &upstreamErr):
		status = http.StatusBadGateway
		// 401 and 403 concern our API key, not the caller
		if upstreamErr.StatusCode >= 400 && upstreamErr.StatusCode < 500 &&
			upstreamErr.StatusCode != http.StatusUnauthorized && upstreamErr.StatusCode != http.StatusForbidden {
			status = upstreamErr.StatusCode
		}
	case errors.As(err, &networkErr):
		status = http.StatusGatewayTimeout
	case errors.Is(err, service.ErrPlayerNotInMatch), errors.Is(err, service.ErrNoRecentMatch):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrHistoryDisabled):
		status = http.StatusNotImplemented
	case errors.Is(err, transformer.ErrMissingStaticData):
		status = http.StatusBadGateway
	}

	entry := s.logger.WithFields(logrus.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"path":       r.URL.Path,
		"status":     status,
	})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("Request failed")
	} else {
		entry.WithError(err).Info("Request rejected")
	}

	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
