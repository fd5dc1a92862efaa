// internal/game/score.go
//
// Guess scoring.
//
// Words are compared grapheme by grapheme (user-perceived characters, via
// uniseg) so that letters such as "ğ" or "i̇" count as one position no matter
// how many code points encode them.
//
// Scoring is single pass and has no per-letter budget: every guess position
// re-scans the whole target. A guess that repeats a letter the target holds
// once may therefore mark more than one position Present/Correct for it.

package game

import "github.com/rivo/uniseg"

// Graphemes splits s into its grapheme clusters.
func Graphemes(s string) []string {
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Length returns the number of grapheme clusters in s.
func Length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Score classifies every position of guess against target.
// Returns ErrLengthMismatch if the two words differ in grapheme count.
func Score(target, guess string) ([]LetterClass, error) {
	t := Graphemes(target)
	g := Graphemes(guess)
	if len(t) != len(g) {
		return nil, ErrLengthMismatch
	}

	out := make([]LetterClass, len(g))
	for i, letter := range g {
		switch {
		case t[i] == letter:
			out[i] = Correct
		case contains(t, letter):
			out[i] = Present
		default:
			out[i] = Absent
		}
	}
	return out, nil
}

func contains(letters []string, letter string) bool {
	for _, l := range letters {
		if l == letter {
			return true
		}
	}
	return false
}

// allCorrect returns true if every class is Correct.
func allCorrect(classes []LetterClass) bool {
	if len(classes) == 0 {
		return false
	}
	for _, c := range classes {
		if c != Correct {
			return false
		}
	}
	return true
}
