// assets/embed.go
//
// Word lists compiled into the binary. They back the dictionary when neither
// the backend nor the local cache can provide one, and they are the source of
// truth for the self-hosted backend (`kelime serve`).
//
//   answers.txt: candidate daily targets.
//   allowed.txt: every accepted guess (answers included).
//
// Lines are returned as written, minus blanks and "#" comments; callers
// normalise them.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// AnswersList returns the embedded target words.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// AllowedList returns the embedded accepted guesses.
func AllowedList() ([]string, error) {
	return readLines("allowed.txt")
}
