package render

import (
	"strings"
	"testing"

	"github.com/pterm/pterm"

	"github.com/robalobadob/kelime/internal/game"
	"github.com/robalobadob/kelime/internal/stats"
)

type allWords struct{}

func (allWords) Contains(string) bool { return true }

func playedSession(t *testing.T, target string, guesses ...string) *game.Session {
	t.Helper()
	s, err := game.NewSession(target, 42, allWords{})
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range guesses {
		if _, err := s.Submit(g); err != nil {
			t.Fatalf("submit %q: %v", g, err)
		}
	}
	return s
}

func TestMain(m *testing.M) {
	pterm.DisableColor()
	m.Run()
}

func TestTileUppercasesTurkish(t *testing.T) {
	if got := Tile("i", game.Correct); !strings.Contains(got, "İ") {
		t.Fatalf("expected dotted capital I, got %q", got)
	}
	if got := Tile("ı", game.Absent); !strings.Contains(got, "I") {
		t.Fatalf("expected dotless capital I, got %q", got)
	}
}

func TestBoard(t *testing.T) {
	s := playedSession(t, "tablo", "kalem", "çiçek")
	out, err := Board(s.Guesses())
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range []string{"K", "A", "L", "E", "M", "Ç", "İ"} {
		if !strings.Contains(out, l) {
			t.Errorf("board is missing %q:\n%s", l, out)
		}
	}

	empty, err := Board(nil)
	if err != nil || empty != "" {
		t.Fatalf("expected empty board, got %q %v", empty, err)
	}
}

func TestStatistics(t *testing.T) {
	won := playedSession(t, "tablo", "kalem", "tablo")
	if got := Statistics(won); got != "Wordle 42 2/6" {
		t.Fatalf("unexpected line %q", got)
	}

	lost := playedSession(t, "tablo", "kalem", "kalem", "kalem", "kalem", "kalem", "kalem")
	if got := Statistics(lost); got != "Wordle 42 X/6" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestShareGrid(t *testing.T) {
	s := playedSession(t, "kalem", "melak", "kalem")
	want := "Wordle 42 2/6\n\n🟨🟨🟩🟨🟨\n🟩🟩🟩🟩🟩"
	if got := ShareGrid(s); got != want {
		t.Fatalf("unexpected grid:\n%s\nwant:\n%s", got, want)
	}
}

func TestBannerAndSummary(t *testing.T) {
	b, err := Banner(7)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b, "7. Gün") {
		t.Fatalf("banner is missing the day:\n%s", b)
	}

	out, err := Summary(stats.Summary{Played: 4, Wins: 3, WinPercent: 75, CurrentStreak: 2, MaxStreak: 3,
		Distribution: [6]int{0, 1, 2, 0, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"Oynanan: 4", "Kazanılan: 3", "En uzun seri: 3"} {
		if !strings.Contains(out, s) {
			t.Errorf("summary is missing %q:\n%s", s, out)
		}
	}
}
