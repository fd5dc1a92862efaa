// internal/daily/daily.go
//
// Daily puzzle model and deterministic puzzle selection.
//
// A Puzzle is what the backend serves on /word/today/{lang}:
//
//	{"word": "tablo", "date": 1700000000000, "count": 42}
//
// where date is Unix milliseconds and count is the 1-based day number since
// the game's epoch. The same Generator drives the self-hosted backend and
// offline play, so both agree on the word for a given date.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"time"
)

// Puzzle is one day's target word.
type Puzzle struct {
	Word  string
	Date  time.Time
	Count int
}

type puzzleJSON struct {
	Word  string `json:"word"`
	Date  int64  `json:"date"`
	Count int    `json:"count"`
}

// MarshalJSON encodes Date as Unix milliseconds.
func (p Puzzle) MarshalJSON() ([]byte, error) {
	return json.Marshal(puzzleJSON{Word: p.Word, Date: p.Date.UnixMilli(), Count: p.Count})
}

// UnmarshalJSON decodes Date from Unix milliseconds.
func (p *Puzzle) UnmarshalJSON(b []byte) error {
	var raw puzzleJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.Word = raw.Word
	p.Date = time.UnixMilli(raw.Date).UTC()
	p.Count = raw.Count
	return nil
}

// Previous is the payload of /word/previous/{lang}.
type Previous struct {
	Previous []Puzzle `json:"previous"`
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// midnight truncates t to the start of its UTC day.
func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayCount returns the 1-based number of the UTC day containing t, counting
// the epoch's day as 1. Dates before the epoch return 0.
func DayCount(epoch, t time.Time) int {
	days := int(midnight(t).Sub(midnight(epoch)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days + 1
}

// DefaultEpoch is the first day of the game.
var DefaultEpoch = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

// Generator picks puzzles deterministically from Answers.
type Generator struct {
	Answers []string
	Salt    string
	Epoch   time.Time
}

// For returns the puzzle of the UTC day containing t.
func (g Generator) For(t time.Time) Puzzle {
	day := midnight(t)
	p := Puzzle{Date: day, Count: DayCount(g.Epoch, day)}
	if len(g.Answers) > 0 {
		p.Word = g.Answers[WordIndex(day, g.Salt, len(g.Answers))]
	}
	return p
}

// Last returns the n puzzles before the day containing t, most recent first.
// Days before the epoch are skipped.
func (g Generator) Last(t time.Time, n int) []Puzzle {
	out := make([]Puzzle, 0, n)
	day := midnight(t)
	for i := 1; i <= n; i++ {
		p := g.For(day.AddDate(0, 0, -i))
		if p.Count == 0 {
			break
		}
		out = append(out, p)
	}
	return out
}
