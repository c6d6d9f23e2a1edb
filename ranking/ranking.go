// Package ranking defines the capped score table kept per difficulty and
// the store contract its backends implement.
package ranking

import (
	"sort"
	"time"

	"bacgo/core"
)

// Size is the maximum number of records retained per difficulty.
const Size = 10

// Record is one saved score.
type Record struct {
	Score  int
	At     time.Time
	Player string
}

// Less orders records ascending by score, then finish time, then player
// name. Equal scores rank the earlier achievement higher.
func (r Record) Less(other Record) bool {
	if r.Score != other.Score {
		return r.Score < other.Score
	}
	if !r.At.Equal(other.At) {
		return r.At.Before(other.At)
	}
	return r.Player < other.Player
}

// Ranking is a sorted snapshot of the best records for one difficulty,
// never longer than Size.
type Ranking struct {
	Difficulty core.Difficulty
	Records    []Record
}

// Insert returns a new ranking with rec added, re-sorted and truncated to
// Size. The input ranking is left untouched; a record worse than a full
// table's worst entry is dropped.
func Insert(r Ranking, rec Record) Ranking {
	records := make([]Record, 0, len(r.Records)+1)
	records = append(records, r.Records...)
	records = append(records, rec)
	sort.Slice(records, func(i, j int) bool { return records[i].Less(records[j]) })
	if len(records) > Size {
		records = records[:Size]
	}
	return Ranking{Difficulty: r.Difficulty, Records: records}
}

// Fits reports whether a score would enter or stay in the top-Size set.
func Fits(r Ranking, score int) bool {
	return len(r.Records) < Size || r.Records[len(r.Records)-1].Score > score
}

// Repo is the ranking store contract shared by all backends. Update is the
// only mutating operation; Load never creates persistent state beyond an
// empty placeholder.
type Repo interface {
	// Load returns the ranking for a difficulty, an empty one if none
	// exists yet.
	Load(difficulty core.Difficulty) (Ranking, error)

	// Update inserts a record for the score data under the player name,
	// persists the capped result and returns the new snapshot.
	Update(scoreData core.ScoreData, player string) (Ranking, error)

	// ScoreFits reports whether the score would make it into the table.
	ScoreFits(scoreData core.ScoreData) (bool, error)

	// AvailableDifficulties lists difficulties with a non-empty ranking,
	// sorted ascending. Each call re-reads the backing store.
	AvailableDifficulties() ([]core.Difficulty, error)
}

// SortDifficulties orders difficulties in place by the Difficulty ordering.
func SortDifficulties(ds []core.Difficulty) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].Less(ds[j]) })
}
