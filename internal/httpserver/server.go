// internal/httpserver/server.go
//
// HTTP server wiring for the self-hostable word backend (`kelime serve`).
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Puzzle endpoints: /words/{lang}, /word/today/{lang}, /word/previous/{lang}.
//   - Auth endpoints: /auth/signup, /auth/login (see auth.go).
//   - Leaderboard endpoints: POST /results/{lang} (auth), GET /leaderboard/{lang}
//     (see routes_daily.go).
//
// Notes:
//   - Only one language is served; other {lang} values 404.
//   - Puzzles come from daily.Generator and are cached in a store.PuzzleStore.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kelime/internal/config"
	"github.com/robalobadob/kelime/internal/daily"
	"github.com/robalobadob/kelime/internal/store"
	"github.com/robalobadob/kelime/internal/words"
)

// Lang is the language this backend serves.
const Lang = "tr"

// Server bundles router, puzzle cache, result store and word lists.
type Server struct {
	r       *chi.Mux
	db      *sql.DB
	puzzles store.PuzzleStore
	results *daily.Store
	gen     daily.Generator
	dict    *words.Dictionary
	cfg     config.Server
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
// db must carry db.ServerSchema.
func New(cfg config.Server, db *sql.DB, puzzles store.PuzzleStore, dict *words.Dictionary, answers []string) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		db:      db,
		puzzles: puzzles,
		results: daily.NewStore(db),
		gen:     daily.Generator{Answers: answers, Salt: cfg.DailySalt, Epoch: cfg.DailyEpoch},
		dict:    dict,
		cfg:     cfg,
		now:     time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.CORSOrigins))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"kelime","endpoints":["/health","/words/{lang}","/word/today/{lang}","/word/previous/{lang}","/auth/*","/results/{lang}","/leaderboard/{lang}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountWords()
	s.mountAuthRoutes()
	s.mountDaily()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows origin ("*" for any) to call the API with bearer tokens.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog logs method, path, status and latency of every request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------ WORDS --------------------------------------

func (s *Server) mountWords() {
	r := s.r.With(s.onlyLang)
	r.Get("/words/{lang}", s.handleWords)
	r.Get("/word/today/{lang}", s.handleToday)
	r.Get("/word/previous/{lang}", s.handlePrevious)
}

// onlyLang 404s requests for languages this server does not serve.
func (s *Server) onlyLang(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "lang") != Lang {
			jsonError(w, http.StatusNotFound, "unknown_language")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleWords serves the full dictionary as {"words": [...]}.
func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(words.File{Words: s.dict.Words()})
}

// handleToday serves today's puzzle.
func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	p, err := s.puzzleFor(r.Context(), s.now())
	if err != nil {
		log.Error().Err(err).Msg("today's puzzle")
		jsonError(w, http.StatusInternalServerError, "no_puzzle")
		return
	}
	_ = json.NewEncoder(w).Encode(p)
}

// handlePrevious serves the seven puzzles before today, most recent first.
func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(daily.Previous{Previous: s.gen.Last(s.now(), 7)})
}

// puzzleFor returns the cached puzzle of t's day, computing it on a miss.
func (s *Server) puzzleFor(ctx context.Context, t time.Time) (daily.Puzzle, error) {
	key := daily.DateKey(t)
	if p, err := s.puzzles.Get(ctx, Lang, key); err == nil {
		return p, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return daily.Puzzle{}, err
	}
	p := s.gen.For(t)
	if p.Word == "" {
		return daily.Puzzle{}, errors.New("answer list is empty")
	}
	if err := s.puzzles.Save(ctx, Lang, p); err != nil {
		return daily.Puzzle{}, err
	}
	return p, nil
}

// ------------------------------- util --------------------------------------

// jsonError writes {"error": code} with status.
func jsonError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
