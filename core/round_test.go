package core

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParams(t *testing.T, numberSize, digitsNum int) NumberParams {
	t.Helper()
	difficulty, err := NewDifficulty(numberSize, digitsNum)
	require.NoError(t, err)
	params, err := StandardParams(difficulty, "")
	require.NoError(t, err)
	return params
}

func TestDrawNumber(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, difficulty := range []Difficulty{{3, 6}, {4, 9}, {5, 15}, {6, 7}} {
		params := mustParams(t, difficulty.NumberSize, difficulty.DigitsNum)

		for i := 0; i < 50; i++ {
			number := DrawNumber(rng, params)
			assert.Len(t, number, difficulty.NumberSize)
			assert.True(t, IsNumberValid(number, params),
				"drawn number %q must be valid for %v", number, difficulty)
		}
	}
}

func TestValidateNumber(t *testing.T) {
	params := mustParams(t, 3, 6)

	tests := []struct {
		name   string
		number string
		valid  bool
	}{
		{"valid", "163", true},
		{"valid all boundaries", "162", true},
		{"too short", "16", false},
		{"too long", "1634", false},
		{"repeated digit", "161", false},
		{"digit out of alphabet", "167", false},
		{"letter out of alphabet", "1a3", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNumber(tt.number, params)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidGuess)
			}
			assert.Equal(t, tt.valid, IsNumberValid(tt.number, params))
		})
	}
}

func TestBullsAndCows(t *testing.T) {
	tests := []struct {
		secret string
		guess  string
		bulls  int
		cows   int
	}{
		{"123", "123", 3, 0},
		{"123", "132", 1, 2},
		{"123", "321", 1, 2},
		{"123", "456", 0, 0},
		{"123", "312", 0, 3},
		{"123", "145", 1, 0},
		{"123", "415", 0, 1},
		{"1234", "1243", 2, 2},
	}
	for _, tt := range tests {
		bulls, cows := bullsAndCows(tt.guess, tt.secret)
		assert.Equal(t, tt.bulls, bulls, "bulls for guess %q against %q", tt.guess, tt.secret)
		assert.Equal(t, tt.cows, cows, "cows for guess %q against %q", tt.guess, tt.secret)
		assert.LessOrEqual(t, bulls+cows, len(tt.secret))
	}
}

func TestNewRound_invalidParams(t *testing.T) {
	_, err := NewRound(NumberParams{Difficulty: Difficulty{6, 4}})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewRound_invalidSecret(t *testing.T) {
	_, err := NewRound(mustParams(t, 3, 6), WithSecret("778"))
	assert.ErrorIs(t, err, ErrInvalidGuess)
}

func TestRound_Guess(t *testing.T) {
	round, err := NewRound(mustParams(t, 3, 6), WithSecret("123"))
	require.NoError(t, err)

	record, err := round.Guess("456")
	require.NoError(t, err)
	assert.Equal(t, GuessRecord{Number: "456", Bulls: 0, Cows: 0}, record)
	assert.False(t, round.Finished())

	record, err = round.Guess("132")
	require.NoError(t, err)
	assert.Equal(t, GuessRecord{Number: "132", Bulls: 1, Cows: 2}, record)
	assert.False(t, round.Finished())

	record, err = round.Guess("123")
	require.NoError(t, err)
	assert.Equal(t, GuessRecord{Number: "123", Bulls: 3, Cows: 0}, record)
	assert.True(t, round.Finished())

	history := round.History()
	require.Len(t, history, 3)
	assert.Equal(t, "456", history[0].Number)
	assert.Equal(t, "123", history[2].Number)
}

func TestRound_Guess_invalidNotRecorded(t *testing.T) {
	round, err := NewRound(mustParams(t, 3, 6), WithSecret("123"))
	require.NoError(t, err)

	_, err = round.Guess("111")
	assert.ErrorIs(t, err, ErrInvalidGuess)
	assert.Equal(t, 0, round.Steps())
	assert.False(t, round.Finished())
}

func TestRound_Guess_afterFinished(t *testing.T) {
	round, err := NewRound(mustParams(t, 3, 6), WithSecret("123"))
	require.NoError(t, err)

	_, err = round.Guess("123")
	require.NoError(t, err)
	require.True(t, round.Finished())

	_, err = round.Guess("456")
	assert.ErrorIs(t, err, ErrRoundFinished)
	assert.Equal(t, 1, round.Steps())
}

func TestRound_TakeScore(t *testing.T) {
	finishTime := time.Date(2021, 6, 5, 12, 30, 0, 0, time.UTC)
	round, err := NewRound(
		mustParams(t, 3, 6),
		WithSecret("123"),
		WithClock(func() time.Time { return finishTime }),
	)
	require.NoError(t, err)

	_, err = round.TakeScore()
	assert.ErrorIs(t, err, ErrRoundNotFinished)

	_, err = round.Guess("456")
	require.NoError(t, err)
	_, err = round.Guess("123")
	require.NoError(t, err)

	score, err := round.TakeScore()
	require.NoError(t, err)
	assert.Equal(t, 2, score.Score)
	assert.True(t, finishTime.Equal(score.At))
	assert.Equal(t, Difficulty{3, 6}, score.Difficulty)

	_, err = round.TakeScore()
	assert.ErrorIs(t, err, ErrScoreExtracted)
}

func TestRound_drawsDistinctSecrets(t *testing.T) {
	params := mustParams(t, 4, 9)
	rng := rand.New(rand.NewSource(7))

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		round, err := NewRound(params, WithRand(rng))
		require.NoError(t, err)
		assert.True(t, IsNumberValid(round.secret, params))
		seen[round.secret] = true
	}
	assert.Greater(t, len(seen), 1, "secrets should vary across rounds")
}
