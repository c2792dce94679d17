package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tristan-derez/league-stats/internal/metrics"
	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
)

const defaultMatchCount = 10

// registerRoutes registers all HTTP routes. {summoner} is a legacy summoner
// name on the lookup route and a puuid on the match listing.
func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/history/{puuid}", s.handleHistory)

		r.Route("/{region}", func(r chi.Router) {
			r.Get("/summoners/{summoner}", s.handleSummonerByName)
			r.Get("/summoners/{summoner}/matches", s.handleMatchIDs)
			r.Get("/players/{puuid}", s.handleSummoner)
			r.Get("/accounts/{gameName}/{tagLine}", s.handleProfile)
			r.Get("/matches/{matchID}", s.handleMatch)
			r.Get("/matches/{matchID}/players/{puuid}", s.handlePlayerMatch)
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	var limiters []riotapi.LimiterStats
	if s.limiters != nil {
		limiters = s.limiters.LimiterStats()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"limiters": limiters,
	})
}

func (s *Server) handleSummonerByName(w http.ResponseWriter, r *http.Request) {
	summoner, err := s.svc.SummonerByName(r.Context(), chi.URLParam(r, "region"), chi.URLParam(r, "summoner"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summoner)
}

func (s *Server) handleSummoner(w http.ResponseWriter, r *http.Request) {
	summoner, err := s.svc.Summoner(r.Context(), chi.URLParam(r, "region"), chi.URLParam(r, "puuid"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summoner)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.svc.ProfileByRiotID(r.Context(), chi.URLParam(r, "region"),
		chi.URLParam(r, "gameName"), chi.URLParam(r, "tagLine"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleMatchIDs(w http.ResponseWriter, r *http.Request) {
	var (
		filter riotapi.MatchFilter
		err    error
	)
	if filter.Count, err = intQuery(r, "count", defaultMatchCount); err != nil {
		s.handleError(w, r, err)
		return
	}
	if filter.Queue, err = intQuery(r, "queue", 0); err != nil {
		s.handleError(w, r, err)
		return
	}
	if filter.Start, err = intQuery(r, "start", 0); err != nil {
		s.handleError(w, r, err)
		return
	}

	ids, err := s.svc.MatchIDs(r.Context(), chi.URLParam(r, "region"), chi.URLParam(r, "summoner"), filter)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	detailed, err := boolQuery(r, "detailed")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	view, err := s.svc.Match(r.Context(), chi.URLParam(r, "region"), chi.URLParam(r, "matchID"), detailed)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handlePlayerMatch(w http.ResponseWriter, r *http.Request) {
	detailed, err := boolQuery(r, "detailed")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	view, err := s.svc.PlayerMatch(r.Context(), chi.URLParam(r, "region"),
		chi.URLParam(r, "matchID"), chi.URLParam(r, "puuid"), detailed)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", 20)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	records, err := s.svc.History(r.Context(), chi.URLParam(r, "puuid"), limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func intQuery(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &riotapi.InvalidParameterError{Param: name, Reason: "must be a non-negative integer"}
	}
	return v, nil
}

func boolQuery(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &riotapi.InvalidParameterError{Param: name, Reason: "must be a boolean"}
	}
	return v, nil
}
