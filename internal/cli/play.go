// internal/cli/play.go
//
// `kelime play`, also the default command.
// Flow:
//   - Fetch today's puzzle (backend, else the local generator).
//   - Stop with the statistics panel if the date is already recorded,
//     unless --again is given.
//   - Load the dictionary through words.Provider and run the prompt loop.
//   - Print the outcome, record it locally and submit it when logged in.
//     Replays are neither recorded nor submitted.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/kelime/internal/api"
	"github.com/robalobadob/kelime/internal/daily"
	"github.com/robalobadob/kelime/internal/game"
	"github.com/robalobadob/kelime/internal/render"
	"github.com/robalobadob/kelime/internal/stats"
	"github.com/robalobadob/kelime/internal/words"
)

var againFlag bool

func init() {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play today's puzzle (default command)",
		RunE:  runPlay,
	}
	addPlayFlags(cmd)
	RootCmd.AddCommand(cmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&againFlag, "again", false, "Play even if today's puzzle was already finished")
}

// errQuit is returned when input ends before the game is over.
var errQuit = errors.New("input closed before the game ended")

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	client := apiClient()

	puzzle, err := todaysPuzzle(ctx, client)
	if err != nil {
		return err
	}
	target := words.Normalize(puzzle.Word)
	if puzzle.Date.IsZero() {
		puzzle.Date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	st, err := stats.Open(cfg.StatsPath())
	if err != nil {
		return fmt.Errorf("open stats: %w", err)
	}
	defer st.Close()

	replay, err := st.Played(ctx, puzzle.Date)
	if err != nil {
		return err
	}
	if replay && !againFlag {
		fmt.Fprintln(out, pterm.Info.Sprintf("%d. günün bulmacasını zaten tamamladınız. Yarın görüşmek üzere!", puzzle.Count))
		return printSummary(ctx, out, st)
	}

	banner, err := render.Banner(puzzle.Count)
	if err != nil {
		return err
	}
	fmt.Fprint(out, banner)

	provider := &words.Provider{Cache: cfg.DictionaryCache()}
	if !offlineFlag {
		provider.Fetcher = client
	}
	dict, src, err := provider.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}
	log.Debug().Str("source", string(src)).Int("words", dict.Len()).Msg("dictionary loaded")

	s, err := game.NewSession(target, puzzle.Count, withTarget{dict, target})
	if err != nil {
		return err
	}

	p := &player{in: bufio.NewScanner(cmd.InOrStdin()), out: out, meanings: meaningClient()}
	if err := p.play(s); err != nil {
		return err
	}
	p.finish(ctx, s)

	if replay {
		log.Debug().Str("date", daily.DateKey(puzzle.Date)).Msg("replay, result not recorded")
		return nil
	}
	if _, err := st.Record(ctx, stats.Result{
		Date: puzzle.Date, Day: s.Day(), Word: s.Target(), Guesses: s.GuessCount(), Won: s.IsWon(), FinishedAt: time.Now(),
	}); err != nil {
		log.Warn().Err(err).Msg("record statistics")
	}
	if client.Token != "" && !offlineFlag {
		sub := api.Submission{Day: s.Day(), Guesses: s.GuessCount(), Won: s.IsWon()}
		if err := client.SubmitResult(ctx, sub); err != nil {
			log.Warn().Err(err).Msg("submit result")
		}
	}
	return nil
}

// todaysPuzzle asks the backend for today's puzzle. Offline, or when the
// backend is unreachable, the puzzle comes from the built-in answer list.
func todaysPuzzle(ctx context.Context, client *api.Client) (daily.Puzzle, error) {
	if !offlineFlag {
		p, err := client.Today(ctx)
		if err == nil && game.Length(words.Normalize(p.Word)) == game.WordLength {
			return p, nil
		}
		if err == nil {
			err = fmt.Errorf("unplayable word %q", p.Word)
		}
		log.Warn().Err(err).Msg("today's puzzle unavailable, playing offline")
	}
	gen, err := localGenerator()
	if err != nil {
		return daily.Puzzle{}, err
	}
	return gen.For(time.Now()), nil
}

// localGenerator derives puzzles from the built-in answers the same way
// `kelime serve` does.
func localGenerator() (daily.Generator, error) {
	answers, err := words.Answers()
	if err != nil {
		return daily.Generator{}, err
	}
	return daily.Generator{Answers: answers, Salt: cfg.Server.DailySalt, Epoch: cfg.Server.DailyEpoch}, nil
}

// withTarget accepts the target even when the dictionary lacks it.
type withTarget struct {
	game.Dictionary
	target string
}

func (d withTarget) Contains(w string) bool {
	return w == d.target || d.Dictionary.Contains(w)
}

type meaningLookup interface {
	Meaning(ctx context.Context, word string) (string, error)
}

// player runs the prompt loop over a line-oriented input.
type player struct {
	in       *bufio.Scanner
	out      io.Writer
	meanings meaningLookup
}

// play prompts until the session is over. Rejected guesses print a message
// and prompt again.
func (p *player) play(s *game.Session) error {
	for !s.IsOver() {
		fmt.Fprintln(p.out, "Yeni tahmin >")
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return err
			}
			return errQuit
		}
		if _, err := s.Submit(words.Normalize(p.in.Text())); err != nil {
			fmt.Fprintln(p.out, pterm.Warning.Sprint(errorMessage(err)))
			continue
		}
		board, err := render.Board(s.Guesses())
		if err != nil {
			return err
		}
		fmt.Fprintln(p.out, board)
	}
	return nil
}

// finish prints the outcome: the word's meaning and the result line on a
// win, the answer on a loss.
func (p *player) finish(ctx context.Context, s *game.Session) {
	switch {
	case s.IsWon():
		fmt.Fprintln(p.out, pterm.Success.Sprint("Tebrikler kelimeyi doğru tahmin ettiniz"))
		m, err := p.meanings.Meaning(ctx, s.Target())
		if err != nil {
			log.Warn().Err(err).Str("word", s.Target()).Msg("meaning lookup")
		}
		fmt.Fprintf(p.out, "%s: %s\n", s.Target(), m)
	case s.IsLost():
		fmt.Fprintln(p.out, pterm.Error.Sprint("Tahmin sayınız doldu. Maalesef kelimeyi bilemediniz."))
		fmt.Fprintf(p.out, "Kelime: %s\n", s.Target())
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, render.ShareGrid(s))
}

// errorMessage is the message shown for a rejected guess.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrGuessLimitExceeded), errors.Is(err, game.ErrGameOver):
		return "Tahmin sayınız doldu."
	case errors.Is(err, game.ErrLengthMismatch):
		return "Tahmin ile hedef kelime farklı uzunlukta."
	case errors.Is(err, game.ErrInvalidGuessLength):
		return "Kelime uzunluğu 5 harf olmalı."
	case errors.Is(err, game.ErrNotInDictionary):
		return "Kelime sözlükte bulunamadı."
	}
	return "Beklenmedik hata oluştu."
}
