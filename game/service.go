// Package game wires the difficulty catalog and a ranking store into one
// play-session API consumed by the presentation layer.
package game

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"bacgo/core"
	"bacgo/ranking"
)

// Service coordinates rounds and score recording.
type Service struct {
	repo    ranking.Repo
	catalog []core.NumberParams
	rng     *rand.Rand
	now     func() time.Time
	log     zerolog.Logger
}

// Option configures the Service builder.
type Option func(*Service)

// WithCatalog sets the selectable difficulty catalog.
func WithCatalog(catalog []core.NumberParams) Option {
	return func(s *Service) { s.catalog = catalog }
}

// WithRand sets the generator used to draw secrets.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithClock sets the clock used for score finish times.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// New builds a Service around a ranking repo. Defaults: the standard
// difficulty catalog, a time-seeded generator and a disabled logger.
func New(repo ranking.Repo, opts ...Option) *Service {
	if repo == nil {
		panic("game.New requires a non-nil ranking repo")
	}
	s := &Service{
		repo:    repo,
		catalog: core.DefaultParams(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Difficulties returns the selectable difficulty catalog.
func (s *Service) Difficulties() []core.NumberParams {
	out := make([]core.NumberParams, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// StartRound draws a fresh secret for the given parameters.
func (s *Service) StartRound(params core.NumberParams) (*core.Round, error) {
	round, err := core.NewRound(params, core.WithRand(s.rng), core.WithClock(s.now))
	if err != nil {
		return nil, err
	}
	s.log.Debug().
		Str("label", params.Label).
		Int("number_size", params.NumberSize()).
		Int("digits_num", params.DigitsNum()).
		Msg("round started")
	return round, nil
}

// ScoreFits reports whether the score would enter its difficulty's table.
func (s *Service) ScoreFits(scoreData core.ScoreData) (bool, error) {
	return s.repo.ScoreFits(scoreData)
}

// SaveScore records a finished round's score under a player name and
// returns the updated ranking.
func (s *Service) SaveScore(scoreData core.ScoreData, player string) (ranking.Ranking, error) {
	table, err := s.repo.Update(scoreData, player)
	if err != nil {
		return ranking.Ranking{}, err
	}
	s.log.Info().
		Str("player", player).
		Int("score", scoreData.Score).
		Stringer("difficulty", scoreData.Difficulty).
		Msg("score saved")
	return table, nil
}

// Ranking loads the score table for a difficulty.
func (s *Service) Ranking(difficulty core.Difficulty) (ranking.Ranking, error) {
	return s.repo.Load(difficulty)
}

// AvailableDifficulties lists difficulties with a non-empty ranking.
func (s *Service) AvailableDifficulties() ([]core.Difficulty, error) {
	return s.repo.AvailableDifficulties()
}
