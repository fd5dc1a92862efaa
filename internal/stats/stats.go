// internal/stats/stats.go
//
// Local statistics: the player's own results, kept in a SQLite file under
// the data directory, and the numbers shown after a game and by
// `kelime stats`.
//
// Results are keyed by puzzle date (YYYY-MM-DD, UTC), not by puzzle number.
// The number depends on who counted it (the backend or the offline
// generator's epoch); the date does not.
//
// Streaks:
//   - A streak is a run of won puzzles on consecutive dates.
//   - The current streak survives only while the last result is from today
//     or yesterday; a missed day ends it.

package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/kelime/internal/daily"
	"github.com/robalobadob/kelime/internal/db"
	"github.com/robalobadob/kelime/internal/game"
)

// Result is one finished puzzle.
type Result struct {
	Date       time.Time // puzzle date; only the UTC calendar day is kept
	Day        int       // puzzle number, for display
	Word       string
	Guesses    int
	Won        bool
	FinishedAt time.Time
}

// Summary aggregates all recorded results.
type Summary struct {
	Played        int                  `json:"played"`
	Wins          int                  `json:"wins"`
	WinPercent    int                  `json:"winPercent"`
	CurrentStreak int                  `json:"currentStreak"`
	MaxStreak     int                  `json:"maxStreak"`
	Distribution  [game.MaxGuesses]int `json:"distribution"` // wins by guess count, index 0 = 1 guess
}

// Store is the local results database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the statistics database at path.
func Open(path string) (*Store, error) {
	d, err := db.Open(path, db.StatsSchema)
	if err != nil {
		return nil, err
	}
	return &Store{db: d}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record stores r. Only the first result of a date is kept; recorded
// reports whether r was written.
func (s *Store) Record(ctx context.Context, r Result) (recorded bool, err error) {
	if r.Guesses < 1 || r.Guesses > game.MaxGuesses {
		return false, fmt.Errorf("guesses out of range: %d", r.Guesses)
	}
	if r.Date.IsZero() {
		return false, errors.New("result without a puzzle date")
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO results (date, day, word, guesses, won, finished_at) VALUES (?,?,?,?,?,?)`,
		daily.DateKey(r.Date), r.Day, r.Word, r.Guesses, r.Won, r.FinishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Played reports whether a result exists for the puzzle of date.
func (s *Store) Played(ctx context.Context, date time.Time) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM results WHERE date=?`, daily.DateKey(date)).Scan(&n)
	return n > 0, err
}

// Lookup returns the result recorded for date; ok is false when there is none.
func (s *Store) Lookup(ctx context.Context, date time.Time) (r Result, ok bool, err error) {
	var key, finished string
	err = s.db.QueryRowContext(ctx,
		`SELECT date, day, word, guesses, won, finished_at FROM results WHERE date=?`, daily.DateKey(date),
	).Scan(&key, &r.Day, &r.Word, &r.Guesses, &r.Won, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, err
	}
	r.Date, _ = time.Parse("2006-01-02", key)
	r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
	return r, true, nil
}

// Summary computes totals, streaks and the guess distribution as of today.
func (s *Store) Summary(ctx context.Context, today time.Time) (Summary, error) {
	var sum Summary
	rows, err := s.db.QueryContext(ctx, `SELECT date, guesses, won FROM results ORDER BY date ASC`)
	if err != nil {
		return sum, err
	}
	defer rows.Close()

	run := 0
	var prev time.Time
	for rows.Next() {
		var key string
		var guesses int
		var won bool
		if err := rows.Scan(&key, &guesses, &won); err != nil {
			return sum, err
		}
		date, err := time.Parse("2006-01-02", key)
		if err != nil {
			return sum, fmt.Errorf("bad result date %q: %w", key, err)
		}
		sum.Played++
		if won {
			sum.Wins++
			if guesses >= 1 && guesses <= game.MaxGuesses {
				sum.Distribution[guesses-1]++
			}
			if run > 0 && date.Equal(prev.AddDate(0, 0, 1)) {
				run++
			} else {
				run = 1
			}
		} else {
			run = 0
		}
		if run > sum.MaxStreak {
			sum.MaxStreak = run
		}
		prev = date
	}
	if err := rows.Err(); err != nil {
		return sum, err
	}

	// A run that stopped before yesterday is over.
	yesterday := midnight(today).AddDate(0, 0, -1)
	if run > 0 && !prev.Before(yesterday) {
		sum.CurrentStreak = run
	}
	if sum.Played > 0 {
		sum.WinPercent = sum.Wins * 100 / sum.Played
	}
	return sum, nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
