package core

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// roundState tags the round lifecycle. A single tag instead of separate
// finished/extracted flags makes "score extracted but not finished"
// unrepresentable.
type roundState int

const (
	roundInProgress roundState = iota
	roundFinished
	roundScoreExtracted
)

// Round owns one secret number and the guess history of a single game.
// It holds no external resources and is not safe for concurrent use.
type Round struct {
	params     NumberParams
	secret     string
	history    []GuessRecord
	state      roundState
	finishedAt time.Time
	now        func() time.Time
}

// RoundOption configures round creation.
type RoundOption func(*roundConfig)

type roundConfig struct {
	rng    *rand.Rand
	now    func() time.Time
	secret string
}

// WithRand sets the generator used to draw the secret.
func WithRand(rng *rand.Rand) RoundOption {
	return func(c *roundConfig) { c.rng = rng }
}

// WithClock sets the clock used for the finish time.
func WithClock(now func() time.Time) RoundOption {
	return func(c *roundConfig) { c.now = now }
}

// WithSecret fixes the secret instead of drawing one. The secret must be a
// valid number for the round's parameters.
func WithSecret(secret string) RoundOption {
	return func(c *roundConfig) { c.secret = secret }
}

// NewRound starts a round for the given parameters, drawing a fresh secret
// unless one is supplied.
func NewRound(params NumberParams, opts ...RoundOption) (*Round, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	cfg := roundConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	secret := cfg.secret
	if secret == "" {
		rng := cfg.rng
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		secret = DrawNumber(rng, params)
	} else if err := ValidateNumber(secret, params); err != nil {
		return nil, err
	}

	return &Round{params: params, secret: secret, now: cfg.now}, nil
}

// DrawNumber samples NumberSize distinct digits without replacement from
// the params' alphabet.
func DrawNumber(rng *rand.Rand, params NumberParams) string {
	digits := []byte(params.Digits.Set)
	rng.Shuffle(len(digits), func(i, j int) {
		digits[i], digits[j] = digits[j], digits[i]
	})
	return string(digits[:params.NumberSize()])
}

// ValidateNumber checks a candidate against the params: only alphabet
// members, exact length, no repeated digits. Failures wrap ErrInvalidGuess
// with the specific reason.
func ValidateNumber(number string, params NumberParams) error {
	if wrong := offAlphabet(number, params.Digits); len(wrong) > 0 {
		return fmt.Errorf("%w: wrong characters: %s", ErrInvalidGuess, quoteRunes(wrong))
	}

	runes := []rune(number)
	if len(runes) != params.NumberSize() {
		return fmt.Errorf("%w: number has %d digits, %d needed",
			ErrInvalidGuess, len(runes), params.NumberSize())
	}

	if repeated := repeatedRunes(runes); len(repeated) > 0 {
		return fmt.Errorf("%w: repeated digits: %s", ErrInvalidGuess, quoteRunes(repeated))
	}
	return nil
}

// IsNumberValid wraps ValidateNumber as a pure predicate.
func IsNumberValid(number string, params NumberParams) bool {
	return ValidateNumber(number, params) == nil
}

func offAlphabet(number string, digits Digits) []rune {
	seen := map[rune]bool{}
	var wrong []rune
	for _, r := range number {
		if !digits.Contains(r) && !seen[r] {
			seen[r] = true
			wrong = append(wrong, r)
		}
	}
	sort.Slice(wrong, func(i, j int) bool { return wrong[i] < wrong[j] })
	return wrong
}

func repeatedRunes(runes []rune) []rune {
	counts := map[rune]int{}
	for _, r := range runes {
		counts[r]++
	}
	var repeated []rune
	for r, n := range counts {
		if n > 1 {
			repeated = append(repeated, r)
		}
	}
	sort.Slice(repeated, func(i, j int) bool { return repeated[i] < repeated[j] })
	return repeated
}

func quoteRunes(runes []rune) string {
	quoted := make([]string, len(runes))
	for i, r := range runes {
		quoted[i] = fmt.Sprintf("'%c'", r)
	}
	return strings.Join(quoted, ", ")
}

// Guess evaluates a candidate against the secret. It appends the result to
// the history and finishes the round on a full-bulls guess.
func (r *Round) Guess(number string) (GuessRecord, error) {
	if r.state != roundInProgress {
		return GuessRecord{}, ErrRoundFinished
	}
	if err := ValidateNumber(number, r.params); err != nil {
		return GuessRecord{}, err
	}

	bulls, cows := bullsAndCows(number, r.secret)
	record := GuessRecord{Number: number, Bulls: bulls, Cows: cows}
	r.history = append(r.history, record)

	if bulls == r.params.NumberSize() {
		r.state = roundFinished
		r.finishedAt = r.now()
	}
	return record, nil
}

// bullsAndCows scans the guess position by position: an exact match counts
// as a bull, a digit present elsewhere in the secret as a cow. Both inputs
// are valid numbers of the same length with distinct digits.
func bullsAndCows(guess, secret string) (bulls, cows int) {
	secretRunes := []rune(secret)
	for i, g := range []rune(guess) {
		switch {
		case g == secretRunes[i]:
			bulls++
		case strings.ContainsRune(secret, g):
			cows++
		}
	}
	return bulls, cows
}

// History returns a copy of the guess records in submission order.
func (r *Round) History() []GuessRecord {
	out := make([]GuessRecord, len(r.history))
	copy(out, r.history)
	return out
}

// Steps is the number of guesses submitted so far.
func (r *Round) Steps() int { return len(r.history) }

// Params returns the round's number parameters.
func (r *Round) Params() NumberParams { return r.params }

// Finished reports whether the secret has been guessed.
func (r *Round) Finished() bool { return r.state != roundInProgress }

// TakeScore extracts the score of a finished round. It succeeds exactly
// once per round.
func (r *Round) TakeScore() (ScoreData, error) {
	switch r.state {
	case roundInProgress:
		return ScoreData{}, ErrRoundNotFinished
	case roundScoreExtracted:
		return ScoreData{}, ErrScoreExtracted
	}
	r.state = roundScoreExtracted
	return ScoreData{
		Score:      len(r.history),
		At:         r.finishedAt,
		Difficulty: r.params.Difficulty,
	}, nil
}
