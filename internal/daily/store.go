// internal/daily/store.go
//
// Backend persistence for daily results: one row per user, language and
// day, plus the per-day leaderboard.

package daily

import (
	"context"
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"
)

// Result is one player's finished puzzle as reported to the backend.
type Result struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Lang      string    `json:"lang"`
	Day       int       `json:"day"`
	Guesses   int       `json:"guesses"`
	Won       bool      `json:"won"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists results in the backend database (db.ServerSchema).
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID has a result for lang/day.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, lang string, day int) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND lang=? AND day=?`,
		userID, lang, day,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records r. A second result for the same user and day is
// ignored; inserted reports whether a row was written.
func (s *Store) InsertResult(ctx context.Context, r Result) (inserted bool, err error) {
	if r.ID == "" {
		r.ID = ulid.Make().String()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(id, user_id, lang, day, guesses, won)
		 VALUES(?,?,?,?,?,?)`, r.ID, r.UserID, r.Lang, r.Day, r.Guesses, r.Won,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	Username string `json:"username"`
	Guesses  int    `json:"guesses"`
}

// Leaderboard returns the winners of lang/day, fewest guesses first, ties
// broken by who finished first.
func (s *Store) Leaderboard(ctx context.Context, lang string, day, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.username, r.guesses
		 FROM daily_results r JOIN users u ON u.id = r.user_id
		 WHERE r.lang=? AND r.day=? AND r.won=1
		 ORDER BY r.guesses ASC, r.created_at ASC, r.id ASC
		 LIMIT ?`, lang, day, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Username, &r.Guesses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
