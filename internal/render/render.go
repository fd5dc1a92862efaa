// internal/render/render.go
//
// Terminal output with pterm: letter tiles, the guess board, the result
// line, the share grid, the banner and the statistics panel.
// Everything here returns strings so callers choose the writer; nothing
// prints directly.

package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/kelime/internal/game"
	"github.com/robalobadob/kelime/internal/stats"
)

var (
	upper = cases.Upper(language.Turkish)
	ink   = pterm.NewRGB(0, 0, 0)

	tileStyles = map[game.LetterClass]pterm.RGBStyle{
		game.Correct: pterm.NewRGBStyle(ink, pterm.NewRGB(173, 247, 182)),
		game.Present: pterm.NewRGBStyle(ink, pterm.NewRGB(255, 238, 147)),
		game.Absent:  pterm.NewRGBStyle(ink, pterm.NewRGB(255, 192, 159)),
	}

	shareSquares = map[game.LetterClass]string{
		game.Correct: "🟩",
		game.Present: "🟨",
		game.Absent:  "⬜",
	}
)

// Tile renders one upper-cased letter on the background of its class.
func Tile(letter string, c game.LetterClass) string {
	return tileStyles[c].Sprint(" " + upper.String(letter) + " ")
}

// Board renders the accepted guesses as a rounded table, one row per guess.
func Board(guesses []game.Guess) (string, error) {
	if len(guesses) == 0 {
		return "", nil
	}
	data := make(pterm.TableData, 0, len(guesses))
	for _, g := range guesses {
		letters := game.Graphemes(g.Word)
		row := make([]string, len(letters))
		for i, l := range letters {
			row[i] = Tile(l, g.Classes[i])
		}
		data = append(data, row)
	}
	return pterm.DefaultTable.
		WithBoxed().
		WithRowSeparator("─").
		WithData(data).
		Srender()
}

// Statistics is the one-line result, e.g. "Wordle 42 3/6" or "Wordle 42 X/6".
func Statistics(s *game.Session) string {
	n := strconv.Itoa(s.GuessCount())
	if s.IsLost() {
		n = "X"
	}
	return fmt.Sprintf("Wordle %d %s/%d", s.Day(), n, game.MaxGuesses)
}

// ShareGrid renders the statistics line followed by an emoji grid, without
// revealing any letters.
func ShareGrid(s *game.Session) string {
	var b strings.Builder
	b.WriteString(Statistics(s))
	b.WriteString("\n")
	for _, g := range s.Guesses() {
		b.WriteString("\n")
		for _, c := range g.Classes {
			b.WriteString(shareSquares[c])
		}
	}
	return b.String()
}

// Banner renders the game title and the day number.
func Banner(day int) (string, error) {
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("KEL", pterm.FgGreen.ToStyle()),
		putils.LettersFromStringWithStyle("IME", pterm.FgYellow.ToStyle()),
	).Srender()
	if err != nil {
		return "", err
	}
	return title + pterm.Sprintfln("%d. Gün Wordle Hoş Geldiniz", day), nil
}

// Summary renders local statistics as a boxed panel with a guess
// distribution chart.
func Summary(sum stats.Summary) (string, error) {
	head := pterm.Sprintfln("Oynanan: %d\nKazanılan: %d (%%%d)\nSeri: %d\nEn uzun seri: %d",
		sum.Played, sum.Wins, sum.WinPercent, sum.CurrentStreak, sum.MaxStreak)

	bars := make(pterm.Bars, len(sum.Distribution))
	for i, v := range sum.Distribution {
		bars[i] = pterm.Bar{Label: strconv.Itoa(i + 1), Value: v}
	}
	chart, err := pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Srender()
	if err != nil {
		return "", err
	}
	return pterm.DefaultBox.WithTitle("İstatistik").WithTitleTopCenter().Sprint(head + "\n" + chart), nil
}
