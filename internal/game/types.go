// internal/game/types.go
//
// Core type definitions for the guessing game.
// Defines:
//   - LetterClass: per-letter verdict of a guess (correct/present/absent).
//   - State: lifecycle of a Session (in progress, won, lost).
//   - Guess: an accepted word together with its classifications.
//   - Dictionary: the membership contract a Session validates against.
//   - The sentinel errors returned by Score and Session.Submit.

package game

import "errors"

const (
	// WordLength is the number of graphemes in a target and in every guess.
	WordLength = 5
	// MaxGuesses is the number of guesses a player gets per puzzle.
	MaxGuesses = 6
)

// LetterClass is the evaluation result for a single grapheme in a guess.
type LetterClass int

const (
	// Absent: the letter does not occur in the target.
	Absent LetterClass = iota
	// Present: the letter occurs in the target at another position.
	Present
	// Correct: the letter occupies the same position in the target.
	Correct
)

func (c LetterClass) String() string {
	switch c {
	case Correct:
		return "correct"
	case Present:
		return "present"
	case Absent:
		return "absent"
	}
	return "unknown"
}

// State is the lifecycle state of a Session.
type State int

const (
	InProgress State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "unknown"
}

// Guess is an accepted word plus its per-position classification.
type Guess struct {
	Word    string
	Classes []LetterClass
}

// Solved reports whether every position of the guess is Correct.
func (g Guess) Solved() bool {
	return allCorrect(g.Classes)
}

// Dictionary is the read-only word set a Session validates guesses against.
// words.Dictionary satisfies it.
type Dictionary interface {
	Contains(word string) bool
}

var (
	// ErrInvalidGuessLength is returned when a word is not WordLength graphemes long.
	ErrInvalidGuessLength = errors.New("guess must be 5 letters")
	// ErrLengthMismatch is returned by Score when target and guess differ in length.
	ErrLengthMismatch = errors.New("guess and target lengths differ")
	// ErrGuessLimitExceeded is returned when MaxGuesses guesses are already recorded.
	ErrGuessLimitExceeded = errors.New("guess limit exceeded")
	// ErrNotInDictionary is returned for words missing from the dictionary.
	ErrNotInDictionary = errors.New("word not in dictionary")
	// ErrGameOver is returned when submitting to a session that was already won.
	ErrGameOver = errors.New("game is over")
	// ErrNoSuchGuess is returned by Classifications for an out-of-range index.
	ErrNoSuchGuess = errors.New("no such guess")
)
