package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pterm/pterm"

	"github.com/robalobadob/kelime/internal/config"
	"github.com/robalobadob/kelime/internal/daily"
	"github.com/robalobadob/kelime/internal/db"
	"github.com/robalobadob/kelime/internal/game"
	"github.com/robalobadob/kelime/internal/httpserver"
	"github.com/robalobadob/kelime/internal/stats"
	"github.com/robalobadob/kelime/internal/store"
	"github.com/robalobadob/kelime/internal/words"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

type fakeMeanings map[string]string

func (f fakeMeanings) Meaning(ctx context.Context, word string) (string, error) {
	return f[word], nil
}

func newPlayer(input string) (*player, *bytes.Buffer) {
	var out bytes.Buffer
	return &player{
		in:       bufio.NewScanner(strings.NewReader(input)),
		out:      &out,
		meanings: fakeMeanings{"kalem": "Yazı yazmaya yarayan araç"},
	}, &out
}

func session(t *testing.T, target string, dict ...string) *game.Session {
	t.Helper()
	s, err := game.NewSession(target, 7, withTarget{words.NewDictionary(dict), target})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestErrorMessage(t *testing.T) {
	cases := map[error]string{
		game.ErrGuessLimitExceeded: "Tahmin sayınız doldu.",
		game.ErrGameOver:           "Tahmin sayınız doldu.",
		game.ErrLengthMismatch:     "Tahmin ile hedef kelime farklı uzunlukta.",
		game.ErrInvalidGuessLength: "Kelime uzunluğu 5 harf olmalı.",
		game.ErrNotInDictionary:    "Kelime sözlükte bulunamadı.",
		errors.New("boom"):         "Beklenmedik hata oluştu.",
	}
	for err, want := range cases {
		if got := errorMessage(err); got != want {
			t.Errorf("errorMessage(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestWithTargetAcceptsTarget(t *testing.T) {
	d := withTarget{words.NewDictionary([]string{"kitap"}), "kalem"}
	if !d.Contains("kalem") || !d.Contains("kitap") || d.Contains("deniz") {
		t.Fatal("withTarget must accept the target and the dictionary words only")
	}
}

func TestPlayRepromptsAndWins(t *testing.T) {
	s := session(t, "kalem", "kitap")
	p, out := newPlayer("abc\ndeniz\nKİTAP\nKALEM\n")
	if err := p.play(s); err != nil {
		t.Fatal(err)
	}
	if !s.IsWon() || s.GuessCount() != 2 {
		t.Fatalf("expected a win in 2, got %v after %d", s.State(), s.GuessCount())
	}
	if g := s.Guesses(); g[0].Word != "kitap" {
		t.Fatalf("input must be normalised, got %q", g[0].Word)
	}
	text := out.String()
	for _, want := range []string{"Kelime uzunluğu 5 harf olmalı.", "Kelime sözlükte bulunamadı.", "Yeni tahmin >"} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}

	p.finish(context.Background(), s)
	text = out.String()
	for _, want := range []string{"Tebrikler kelimeyi doğru tahmin ettiniz", "kalem: Yazı yazmaya yarayan araç", "Wordle 7 2/6"} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}
}

func TestPlayLoses(t *testing.T) {
	s := session(t, "kalem", "kitap")
	p, out := newPlayer(strings.Repeat("kitap\n", 6) + "kitap\n")
	if err := p.play(s); err != nil {
		t.Fatal(err)
	}
	if !s.IsLost() || s.GuessCount() != game.MaxGuesses {
		t.Fatalf("expected a loss after 6 guesses, got %v after %d", s.State(), s.GuessCount())
	}
	p.finish(context.Background(), s)
	text := out.String()
	for _, want := range []string{"Maalesef kelimeyi bilemediniz.", "Kelime: kalem", "Wordle 7 X/6"} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}
}

func TestPlayStopsWhenInputEnds(t *testing.T) {
	s := session(t, "kalem", "kitap")
	p, _ := newPlayer("kitap\n")
	if err := p.play(s); !errors.Is(err, errQuit) {
		t.Fatalf("expected errQuit, got %v", err)
	}
	if s.GuessCount() != 1 || s.IsOver() {
		t.Fatal("the accepted guess must be kept and the game left open")
	}
}

// backend starts a kelime server whose only answer is "kalem", and a fake
// definition service. submits counts POST /results requests.
func backend(t *testing.T) (apiURL, tdkURL string, submits *atomic.Int32) {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "server.db"), db.ServerSchema)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	srvCfg := config.Server{
		JWTSecret:   "test-secret",
		JWTExpiry:   time.Hour,
		DailySalt:   "salt",
		DailyEpoch:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CORSOrigins: "*",
	}
	dict := words.NewDictionary([]string{"kalem", "kitap", "deniz"})
	router := httpserver.New(srvCfg, conn, store.NewMemoryStore(), dict, []string{"kalem"}).Router()
	submits = new(atomic.Int32)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/results/") {
			submits.Add(1)
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(api.Close)

	tdk := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"madde":"kalem","anlamlarListe":[{"anlam":"Yazı yazmaya yarayan araç"}]}]`))
	}))
	t.Cleanup(tdk.Close)
	return api.URL, tdk.URL, submits
}

// run executes the root command with a fresh flag state.
func run(t *testing.T, input string, args ...string) string {
	t.Helper()
	apiFlag, langFlag, dataDirFlag, tdkFlag, logLevelFlag = "", "", "", "", ""
	offlineFlag, againFlag = false, false
	usernameFlag, passwordFlag, dayFlag, portFlag = "", "", 0, ""

	var out bytes.Buffer
	RootCmd.SetArgs(append(args, "--log-level", "error"))
	RootCmd.SetIn(strings.NewReader(input))
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&bytes.Buffer{})
	if err := Execute(context.Background()); err != nil {
		t.Fatalf("kelime %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestPlayAgainstBackend(t *testing.T) {
	apiURL, tdkURL, submits := backend(t)
	dir := t.TempDir()
	common := []string{"--api", apiURL, "--tdk-url", tdkURL, "--data-dir", dir}

	run(t, "", append([]string{"signup", "-u", "ayse", "--password", "correct horse"}, common...)...)
	if b, err := os.ReadFile(filepath.Join(dir, "token")); err != nil || len(bytes.TrimSpace(b)) == 0 {
		t.Fatalf("signup must store a token: %v", err)
	}

	out := run(t, "deniz\nkalem\n", common...)
	for _, want := range []string{"Tebrikler kelimeyi doğru tahmin ettiniz", "kalem: Yazı yazmaya yarayan araç", "2/6"} {
		if !strings.Contains(out, want) {
			t.Errorf("play output lacks %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "dictionary.json")); err != nil {
		t.Fatalf("the dictionary must be cached: %v", err)
	}

	st, err := stats.Open(filepath.Join(dir, "stats.db"))
	if err != nil {
		t.Fatal(err)
	}
	sum, err := st.Summary(context.Background(), time.Now())
	st.Close()
	if err != nil {
		t.Fatal(err)
	}
	if sum.Played != 1 || sum.Wins != 1 || sum.Distribution[1] != 1 {
		t.Fatalf("unexpected stats %+v", sum)
	}

	if n := submits.Load(); n != 1 {
		t.Fatalf("expected one submitted result, got %d", n)
	}

	again := run(t, "", common...)
	if !strings.Contains(again, "zaten tamamladınız") || !strings.Contains(again, "İstatistik") {
		t.Fatalf("a finished day must not be replayed:\n%s", again)
	}

	replay := run(t, "kalem\n", append([]string{"play", "--again"}, common...)...)
	if !strings.Contains(replay, "1/6") {
		t.Fatalf("--again must start a new game:\n%s", replay)
	}
	if n := submits.Load(); n != 1 {
		t.Fatalf("a replay must not be submitted, got %d submissions", n)
	}
	st, err = stats.Open(filepath.Join(dir, "stats.db"))
	if err != nil {
		t.Fatal(err)
	}
	r, ok, err := st.Lookup(context.Background(), time.Now())
	st.Close()
	if err != nil || !ok || r.Guesses != 2 {
		t.Fatalf("a replay must keep the first result, got %+v ok=%v err=%v", r, ok, err)
	}

	lb := run(t, "", append([]string{"leaderboard"}, common...)...)
	if !strings.Contains(lb, "ayse") {
		t.Fatalf("leaderboard lacks the submitted result:\n%s", lb)
	}

	show := run(t, "", append([]string{"dict", "show"}, common...)...)
	if !strings.Contains(show, "source: cache") || !strings.Contains(show, "words:  3") {
		t.Fatalf("unexpected dict show output:\n%s", show)
	}

	run(t, "", append([]string{"logout"}, common...)...)
	if _, err := os.Stat(filepath.Join(dir, "token")); !os.IsNotExist(err) {
		t.Fatal("logout must remove the token")
	}
}

func TestPlayOffline(t *testing.T) {
	today := offlineToday(t)

	dir := t.TempDir()
	out := run(t, today.Word+"\n", "--offline", "--data-dir", dir, "--tdk-url", "http://127.0.0.1:1")
	if !strings.Contains(out, "Tebrikler") || !strings.Contains(out, "1/6") {
		t.Fatalf("unexpected offline output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "dictionary.json")); !os.IsNotExist(err) {
		t.Fatal("offline play must not write a dictionary cache")
	}
}

// offlineToday returns today's puzzle as the offline generator derives it
// with DAILY_SALT=offline-salt and DAILY_EPOCH=2024-01-01.
func offlineToday(t *testing.T) daily.Puzzle {
	t.Helper()
	t.Setenv("DAILY_SALT", "offline-salt")
	t.Setenv("DAILY_EPOCH", "2024-01-01")
	answers, err := words.Answers()
	if err != nil {
		t.Fatal(err)
	}
	gen := daily.Generator{Answers: answers, Salt: "offline-salt", Epoch: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return gen.For(time.Now())
}

func TestOfflineAndOnlineShareTheDate(t *testing.T) {
	today := offlineToday(t)
	apiURL, tdkURL, submits := backend(t)
	dir := t.TempDir()

	run(t, today.Word+"\n", "--offline", "--data-dir", dir, "--tdk-url", tdkURL)

	// The backend counts days from another epoch; the date still matches.
	out := run(t, "", "--api", apiURL, "--tdk-url", tdkURL, "--data-dir", dir)
	if !strings.Contains(out, "zaten tamamladınız") {
		t.Fatalf("an offline result must count for the same date online:\n%s", out)
	}
	if n := submits.Load(); n != 0 {
		t.Fatalf("nothing should be submitted, got %d", n)
	}
}

func TestHistory(t *testing.T) {
	apiURL, tdkURL, _ := backend(t)
	dir := t.TempDir()

	st, err := stats.Open(filepath.Join(dir, "stats.db"))
	if err != nil {
		t.Fatal(err)
	}
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	_, err = st.Record(context.Background(), stats.Result{Date: yesterday, Day: 1, Word: "kalem", Guesses: 4, Won: true})
	st.Close()
	if err != nil {
		t.Fatal(err)
	}

	out := run(t, "", "history", "--api", apiURL, "--tdk-url", tdkURL, "--data-dir", dir)
	for _, want := range []string{daily.DateKey(yesterday), "kalem", "4/6", "-"} {
		if !strings.Contains(out, want) {
			t.Errorf("history lacks %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "kalem") != 7 {
		t.Errorf("expected 7 previous puzzles:\n%s", out)
	}
}
