// Package memory provides a process-scoped ranking store. State lives only
// for the process lifetime.
package memory

import (
	"sync"

	"bacgo/core"
	"bacgo/ranking"
)

// Repo is an in-memory ranking.Repo implementation.
type Repo struct {
	mu   sync.Mutex
	data map[core.Difficulty][]ranking.Record
}

// New returns an empty in-memory repo.
func New() *Repo {
	return &Repo{data: map[core.Difficulty][]ranking.Record{}}
}

// NewSeeded returns a repo preloaded with rankings, one sorted capped table
// per difficulty. The seed map is copied.
func NewSeeded(seed map[core.Difficulty][]ranking.Record) *Repo {
	r := New()
	for difficulty, records := range seed {
		table := ranking.Ranking{Difficulty: difficulty}
		for _, rec := range records {
			table = ranking.Insert(table, rec)
		}
		r.data[difficulty] = table.Records
	}
	return r
}

func (r *Repo) Load(difficulty core.Difficulty) (ranking.Ranking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(difficulty), nil
}

func (r *Repo) Update(scoreData core.ScoreData, player string) (ranking.Ranking, error) {
	if err := core.ValidatePlayerName(player); err != nil {
		return ranking.Ranking{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated := ranking.Insert(r.snapshot(scoreData.Difficulty), ranking.Record{
		Score:  scoreData.Score,
		At:     scoreData.At,
		Player: player,
	})
	r.data[scoreData.Difficulty] = updated.Records
	return r.snapshot(scoreData.Difficulty), nil
}

func (r *Repo) ScoreFits(scoreData core.ScoreData) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ranking.Fits(r.snapshot(scoreData.Difficulty), scoreData.Score), nil
}

func (r *Repo) AvailableDifficulties() ([]core.Difficulty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]core.Difficulty, 0, len(r.data))
	for difficulty, records := range r.data {
		if len(records) > 0 {
			out = append(out, difficulty)
		}
	}
	ranking.SortDifficulties(out)
	return out, nil
}

// snapshot copies the stored records so callers never alias internal state.
func (r *Repo) snapshot(difficulty core.Difficulty) ranking.Ranking {
	records := make([]ranking.Record, len(r.data[difficulty]))
	copy(records, r.data[difficulty])
	return ranking.Ranking{Difficulty: difficulty, Records: records}
}

var _ ranking.Repo = (*Repo)(nil)
