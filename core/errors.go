package core

import "errors"

// Error kinds for contract violations. None of them is transient; callers
// either re-prompt (invalid guess, invalid player name) or treat the call
// as failed.
var (
	ErrConfiguration     = errors.New("invalid game configuration")
	ErrInvalidGuess      = errors.New("invalid guess")
	ErrRoundFinished     = errors.New("round already finished")
	ErrRoundNotFinished  = errors.New("round not finished")
	ErrScoreExtracted    = errors.New("score already extracted")
	ErrInvalidPlayerName = errors.New("invalid player name")
)
