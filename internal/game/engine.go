// internal/game/engine.go
//
// Game engine for a single daily puzzle.
// Responsibilities:
//   - Create a session for a fixed target, day number and dictionary.
//   - Validate and apply guesses (length, guess limit, dictionary).
//   - Score accepted guesses with Score.
//   - Track state transitions: in progress → won/lost.
//
// Notes:
//   - A Session is owned by one caller and is not safe for concurrent use.
//   - History is append-only; accepted guesses are never altered.

package game

import "fmt"

// Session holds the state of one puzzle being played.
type Session struct {
	target  string
	day     int
	dict    Dictionary
	guesses []Guess
	state   State
}

// NewSession constructs a session for target. The target must be
// WordLength graphemes long; dict must not be nil.
func NewSession(target string, day int, dict Dictionary) (*Session, error) {
	if Length(target) != WordLength {
		return nil, fmt.Errorf("target %q: %w", target, ErrInvalidGuessLength)
	}
	if dict == nil {
		return nil, fmt.Errorf("nil dictionary")
	}
	return &Session{
		target:  target,
		day:     day,
		dict:    dict,
		guesses: make([]Guess, 0, MaxGuesses),
	}, nil
}

// Submit validates candidate and, if accepted, appends it to the history.
//
// Validation order:
//   - ErrInvalidGuessLength if candidate is not WordLength graphemes.
//   - ErrGuessLimitExceeded if MaxGuesses guesses are already recorded.
//   - ErrGameOver if the session was already won.
//   - ErrNotInDictionary if the dictionary does not hold candidate.
//
// State transitions:
//   - All positions Correct → Won.
//   - Else if MaxGuesses guesses are recorded → Lost.
func (s *Session) Submit(candidate string) (Guess, error) {
	if Length(candidate) != WordLength {
		return Guess{}, ErrInvalidGuessLength
	}
	if len(s.guesses) >= MaxGuesses {
		return Guess{}, ErrGuessLimitExceeded
	}
	if s.state == Won {
		return Guess{}, ErrGameOver
	}
	if !s.dict.Contains(candidate) {
		return Guess{}, ErrNotInDictionary
	}

	classes, err := Score(s.target, candidate)
	if err != nil {
		return Guess{}, err
	}
	g := Guess{Word: candidate, Classes: classes}
	s.guesses = append(s.guesses, g)

	if g.Solved() {
		s.state = Won
	} else if len(s.guesses) == MaxGuesses {
		s.state = Lost
	}
	return g, nil
}

// Classifications rescores the guess at index i against the target.
func (s *Session) Classifications(i int) ([]LetterClass, error) {
	if i < 0 || i >= len(s.guesses) {
		return nil, fmt.Errorf("guess %d: %w", i, ErrNoSuchGuess)
	}
	return Score(s.target, s.guesses[i].Word)
}

// Guesses returns a copy of the accepted guesses, oldest first.
func (s *Session) Guesses() []Guess {
	out := make([]Guess, len(s.guesses))
	for i, g := range s.guesses {
		out[i] = Guess{Word: g.Word, Classes: append([]LetterClass(nil), g.Classes...)}
	}
	return out
}

func (s *Session) State() State    { return s.state }
func (s *Session) IsOver() bool    { return s.state != InProgress }
func (s *Session) IsWon() bool     { return s.state == Won }
func (s *Session) IsLost() bool    { return s.state == Lost }
func (s *Session) GuessCount() int { return len(s.guesses) }
func (s *Session) Day() int        { return s.day }

// Target returns the word being guessed. Callers should only reveal it
// once the session is over.
func (s *Session) Target() string { return s.target }
