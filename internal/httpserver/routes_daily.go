// internal/httpserver/routes_daily.go
//
// Leaderboard routes.
//   - POST /results/{lang}     → record the caller's finished puzzle (auth required)
//   - GET  /leaderboard/{lang} → winners of ?day=N (default: today), fewest guesses first
//
// The server trusts the reported guess count; it only checks that the day
// exists (1..today) and that the count is within 1..6. One result per user
// and day is kept.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kelime/internal/daily"
	"github.com/robalobadob/kelime/internal/game"
)

func (s *Server) mountDaily() {
	r := s.r.With(s.onlyLang)
	r.With(s.requireAuth).Post("/results/{lang}", s.handleResult)
	r.Get("/leaderboard/{lang}", s.handleLeaderboard)
}

// resultReq is the payload of POST /results/{lang}.
type resultReq struct {
	Day     int  `json:"day"`
	Guesses int  `json:"guesses"`
	Won     bool `json:"won"`
}

// handleResult validates and stores a finished puzzle for the current user.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r.Context())
	if me == nil {
		jsonError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var p resultReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	today := daily.DayCount(s.cfg.DailyEpoch, s.now())
	if p.Day < 1 || p.Day > today {
		jsonError(w, http.StatusBadRequest, "invalid_day")
		return
	}
	if p.Guesses < 1 || p.Guesses > game.MaxGuesses {
		jsonError(w, http.StatusBadRequest, "invalid_guesses")
		return
	}

	inserted, err := s.results.InsertResult(r.Context(), daily.Result{
		UserID: me.ID, Lang: Lang, Day: p.Day, Guesses: p.Guesses, Won: p.Won,
	})
	if err != nil {
		log.Error().Err(err).Str("user", me.ID).Msg("insert result")
		jsonError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if !inserted {
		jsonError(w, http.StatusConflict, "already_submitted")
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// lbRes is returned by /leaderboard/{lang}.
type lbRes struct {
	Day int           `json:"day"`
	Top []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the top 20 winners of the requested day.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	day := daily.DayCount(s.cfg.DailyEpoch, s.now())
	if v := r.URL.Query().Get("day"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			jsonError(w, http.StatusBadRequest, "invalid_day")
			return
		}
		day = n
	}
	rows, err := s.results.Leaderboard(r.Context(), Lang, day, 20)
	if err != nil {
		log.Error().Err(err).Int("day", day).Msg("leaderboard")
		jsonError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Day: day, Top: rows})
}
