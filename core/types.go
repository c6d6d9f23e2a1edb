package core

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MinNumberSize is the smallest secret length the game supports.
	MinNumberSize = 3

	// Player name length bounds, inclusive.
	MinPlayerNameLen = 3
	MaxPlayerNameLen = 20
)

// digitsSequence is the fixed ordered alphabet difficulties draw from.
const digitsSequence = "123456789abcdefghijklmnopqrstuvwxyz"

// Difficulty identifies one game setting: the length of the secret number
// and the size of the digit alphabet it is drawn from. It is a pure value
// and is used as a ranking lookup key.
type Difficulty struct {
	NumberSize int
	DigitsNum  int
}

// NewDifficulty builds a validated Difficulty.
func NewDifficulty(numberSize, digitsNum int) (Difficulty, error) {
	d := Difficulty{NumberSize: numberSize, DigitsNum: digitsNum}
	if err := d.Validate(); err != nil {
		return Difficulty{}, err
	}
	return d, nil
}

// Validate checks that a secret of NumberSize distinct digits can be drawn
// from a DigitsNum-sized alphabet.
func (d Difficulty) Validate() error {
	if d.NumberSize < MinNumberSize {
		return fmt.Errorf("%w: number size %d smaller than %d",
			ErrConfiguration, d.NumberSize, MinNumberSize)
	}
	if d.NumberSize >= d.DigitsNum {
		return fmt.Errorf("%w: number size %d not less than digits number %d",
			ErrConfiguration, d.NumberSize, d.DigitsNum)
	}
	return nil
}

// Less orders difficulties by number size, then digits number.
func (d Difficulty) Less(other Difficulty) bool {
	if d.NumberSize != other.NumberSize {
		return d.NumberSize < other.NumberSize
	}
	return d.DigitsNum < other.DigitsNum
}

func (d Difficulty) String() string {
	return fmt.Sprintf("%dx%d", d.NumberSize, d.DigitsNum)
}

// Digits is the symbol set a number may be built from, plus a short range
// description shown to the player.
type Digits struct {
	Set         string
	Description string
}

// Contains reports whether r is a member of the digit set.
func (d Digits) Contains(r rune) bool {
	return strings.ContainsRune(d.Set, r)
}

// StandardDigits returns the first n symbols of the 1-9a-z sequence with a
// printable description such as "[1-6]" or "[1-9a-f]".
func StandardDigits(n int) (Digits, error) {
	if n < 2 {
		return Digits{}, fmt.Errorf("%w: digits number %d less than 2", ErrConfiguration, n)
	}
	if n > len(digitsSequence) {
		return Digits{}, fmt.Errorf("%w: digits number %d greater than %d",
			ErrConfiguration, n, len(digitsSequence))
	}

	var description string
	switch {
	case n <= 9:
		description = fmt.Sprintf("[1-%d]", n)
	case n == 10:
		description = "[1-9a]"
	default:
		description = fmt.Sprintf("[1-9a-%c]", digitsSequence[n-1])
	}

	return Digits{Set: digitsSequence[:n], Description: description}, nil
}

// NumberParams couples a difficulty with the concrete digit alphabet used
// to draw and validate numbers for it.
type NumberParams struct {
	Difficulty Difficulty
	Digits     Digits
	Label      string
}

// StandardParams builds NumberParams for a difficulty using the standard
// digit sequence.
func StandardParams(difficulty Difficulty, label string) (NumberParams, error) {
	if err := difficulty.Validate(); err != nil {
		return NumberParams{}, err
	}
	digits, err := StandardDigits(difficulty.DigitsNum)
	if err != nil {
		return NumberParams{}, err
	}
	return NumberParams{Difficulty: difficulty, Digits: digits, Label: label}, nil
}

func (p NumberParams) NumberSize() int { return p.Difficulty.NumberSize }

func (p NumberParams) DigitsNum() int { return p.Difficulty.DigitsNum }

// Validate checks the difficulty and that the alphabet matches its size.
func (p NumberParams) Validate() error {
	if err := p.Difficulty.Validate(); err != nil {
		return err
	}
	if got := utf8.RuneCountInString(p.Digits.Set); got != p.DigitsNum() {
		return fmt.Errorf("%w: digit set has %d symbols, difficulty wants %d",
			ErrConfiguration, got, p.DigitsNum())
	}
	return nil
}

// DefaultParams is the standard difficulty catalog.
func DefaultParams() []NumberParams {
	out := make([]NumberParams, 0, 3)
	for _, entry := range []struct {
		difficulty Difficulty
		label      string
	}{
		{Difficulty{3, 6}, "easy"},
		{Difficulty{4, 9}, "normal"},
		{Difficulty{5, 15}, "hard"},
	} {
		params, err := StandardParams(entry.difficulty, entry.label)
		if err != nil {
			panic(err)
		}
		out = append(out, params)
	}
	return out
}

// GuessRecord is one evaluated guess: the submitted number and how many
// digits were correct in place (bulls) or correct but misplaced (cows).
type GuessRecord struct {
	Number string
	Bulls  int
	Cows   int
}

// ScoreData carries everything needed to save a finished round's score.
// Lower score is better.
type ScoreData struct {
	Score      int
	At         time.Time
	Difficulty Difficulty
}

// ValidatePlayerName checks the name length bounds.
func ValidatePlayerName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinPlayerNameLen {
		return fmt.Errorf("%w: too short name (%d), at least %d characters needed",
			ErrInvalidPlayerName, n, MinPlayerNameLen)
	}
	if n > MaxPlayerNameLen {
		return fmt.Errorf("%w: too long name (%d), maximum %d characters allowed",
			ErrInvalidPlayerName, n, MaxPlayerNameLen)
	}
	return nil
}

// IsPlayerNameValid wraps ValidatePlayerName as a predicate.
func IsPlayerNameValid(name string) bool {
	return ValidatePlayerName(name) == nil
}
