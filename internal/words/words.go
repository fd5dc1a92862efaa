// internal/words/words.go
//
// Word normalisation and the in-memory dictionary.
//
// Responsibilities:
//   - Normalise raw input the same way everywhere (trim, NFC, Turkish lower case).
//   - Keep only well-formed words (game.WordLength letters).
//   - Hold the dictionary as a set for containment checks.
//   - Expose the embedded word lists from the assets package.
//
// Turkish casing matters: "I" lowers to "ı" and "İ" to "i", which the default
// Unicode mapping gets wrong.

package words

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/kelime/assets"
	"github.com/robalobadob/kelime/internal/game"
)

var lower = cases.Lower(language.Turkish)

// Normalize trims s, composes it to NFC and lower-cases it with Turkish rules.
func Normalize(s string) string {
	return lower.String(norm.NFC.String(strings.TrimSpace(s)))
}

// IsWord reports whether w (already normalised) is a playable word:
// exactly game.WordLength graphemes made of letters and combining marks.
func IsWord(w string) bool {
	if game.Length(w) != game.WordLength {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
			return false
		}
	}
	return true
}

// Dictionary is a read-only set of normalised words.
type Dictionary struct {
	set map[string]struct{}
}

// NewDictionary normalises list and keeps the playable words.
func NewDictionary(list []string) *Dictionary {
	d := &Dictionary{set: make(map[string]struct{}, len(list))}
	for _, w := range list {
		w = Normalize(w)
		if IsWord(w) {
			d.set[w] = struct{}{}
		}
	}
	return d
}

// Contains reports whether w is in the dictionary. w must already be
// normalised; the lookup is exact.
func (d *Dictionary) Contains(w string) bool {
	if d == nil {
		return false
	}
	_, ok := d.set[w]
	return ok
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.set)
}

// Words returns the words in sorted order.
func (d *Dictionary) Words() []string {
	out := make([]string, 0, d.Len())
	if d == nil {
		return out
	}
	for w := range d.set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Embedded returns the dictionary compiled into the binary.
// Answers are always included.
func Embedded() (*Dictionary, error) {
	allowed, err := assets.AllowedList()
	if err != nil {
		return nil, err
	}
	answers, err := Answers()
	if err != nil {
		return nil, err
	}
	return NewDictionary(append(allowed, answers...)), nil
}

// Answers returns the embedded target words, normalised and filtered,
// in file order.
func Answers() ([]string, error) {
	raw, err := assets.AnswersList()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		w = Normalize(w)
		if IsWord(w) {
			out = append(out, w)
		}
	}
	return out, nil
}
