package daily

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/kelime/internal/db"
)

func TestPuzzleJSONUsesMilliseconds(t *testing.T) {
	body := []byte(`{"word":"tablo","date":1700000000000,"count":42}`)
	var p Puzzle
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatal(err)
	}
	if p.Word != "tablo" || p.Count != 42 {
		t.Fatalf("unexpected puzzle: %+v", p)
	}
	if !p.Date.Equal(time.UnixMilli(1700000000000)) {
		t.Fatalf("unexpected date: %v", p.Date)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["date"].(float64) != 1700000000000 {
		t.Fatalf("expected millisecond date, got %v", raw["date"])
	}
}

func TestDayCount(t *testing.T) {
	epoch := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want int
	}{
		{epoch, 1},
		{epoch.Add(23 * time.Hour), 1},
		{epoch.AddDate(0, 0, 1), 2},
		{epoch.AddDate(1, 0, 0), 366},
		{epoch.Add(-time.Hour), 0},
	}
	for _, c := range cases {
		if got := DayCount(epoch, c.at); got != c.want {
			t.Errorf("DayCount(%v) = %d, want %d", c.at, got, c.want)
		}
	}
}

func TestWordIndexIsStable(t *testing.T) {
	d := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	a := WordIndex(d, "salt", 100)
	b := WordIndex(d.Add(5*time.Hour), "salt", 100)
	if a != b {
		t.Fatalf("same day must map to same index: %d != %d", a, b)
	}
	if a < 0 || a >= 100 {
		t.Fatalf("index out of range: %d", a)
	}
	if WordIndex(d, "salt", 0) != 0 {
		t.Fatal("empty list must map to 0")
	}
}

func TestGenerator(t *testing.T) {
	g := Generator{
		Answers: []string{"tablo", "kalem", "kitap", "deniz"},
		Salt:    "test",
		Epoch:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	at := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	p := g.For(at)
	if p.Count != 10 {
		t.Fatalf("expected day 10, got %d", p.Count)
	}
	if p.Word == "" || p.Date.Hour() != 0 {
		t.Fatalf("unexpected puzzle: %+v", p)
	}
	if again := g.For(at.Add(time.Hour)); again.Word != p.Word {
		t.Fatal("generator must be deterministic within a day")
	}

	last := g.Last(at, 20)
	if len(last) != 9 {
		t.Fatalf("expected 9 previous puzzles back to the epoch, got %d", len(last))
	}
	if last[0].Count != 9 || last[8].Count != 1 {
		t.Fatalf("expected most recent first, got %d..%d", last[0].Count, last[8].Count)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "server.db"), db.ServerSchema)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	for _, u := range []string{"ayse", "mehmet", "zeynep"} {
		if _, err := d.Exec(`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
			"id-"+u, u, "x", time.Now().UTC().Format(time.RFC3339)); err != nil {
			t.Fatal(err)
		}
	}
	return NewStore(d)
}

func TestStoreResultsAndLeaderboard(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	results := []Result{
		{UserID: "id-ayse", Lang: "tr", Day: 7, Guesses: 4, Won: true},
		{UserID: "id-mehmet", Lang: "tr", Day: 7, Guesses: 2, Won: true},
		{UserID: "id-zeynep", Lang: "tr", Day: 7, Guesses: 6, Won: false},
	}
	for _, r := range results {
		ok, err := s.InsertResult(ctx, r)
		if err != nil || !ok {
			t.Fatalf("insert %+v: ok=%v err=%v", r, ok, err)
		}
	}

	dup, err := s.InsertResult(ctx, Result{UserID: "id-ayse", Lang: "tr", Day: 7, Guesses: 1, Won: true})
	if err != nil {
		t.Fatal(err)
	}
	if dup {
		t.Fatal("second result for the same day must be ignored")
	}

	played, err := s.AlreadyPlayed(ctx, "id-ayse", "tr", 7)
	if err != nil || !played {
		t.Fatalf("expected played, got %v %v", played, err)
	}
	played, _ = s.AlreadyPlayed(ctx, "id-ayse", "tr", 8)
	if played {
		t.Fatal("day 8 was not played")
	}

	lb, err := s.Leaderboard(ctx, "tr", 7, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(lb) != 2 {
		t.Fatalf("expected 2 winners, got %+v", lb)
	}
	if lb[0].Username != "mehmet" || lb[1].Username != "ayse" || lb[1].Guesses != 4 {
		t.Fatalf("unexpected order: %+v", lb)
	}
}
