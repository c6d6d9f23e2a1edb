// Package csvfile persists rankings as one CSV file per difficulty under a
// directory. Files are named "{number_size}_{digits_num}.csv" and hold
// "score,timestamp,player" lines sorted ascending.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"bacgo/core"
	"bacgo/ranking"
)

// timeLayout is the sortable textual timestamp format used in record files.
const timeLayout = time.RFC3339Nano

// Repo is a file-backed ranking.Repo. Updates rewrite the whole file, with
// no partial-write protection; concurrent writers are not coordinated and
// the last write wins.
type Repo struct {
	mu  sync.Mutex
	dir string
}

// New returns a repo storing rankings under dir. The directory must exist.
func New(dir string) *Repo {
	return &Repo{dir: dir}
}

func (r *Repo) Load(difficulty core.Difficulty) (ranking.Ranking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(difficulty)
}

func (r *Repo) Update(scoreData core.ScoreData, player string) (ranking.Ranking, error) {
	if err := core.ValidatePlayerName(player); err != nil {
		return ranking.Ranking{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.load(scoreData.Difficulty)
	if err != nil {
		return ranking.Ranking{}, err
	}
	updated := ranking.Insert(current, ranking.Record{
		Score:  scoreData.Score,
		At:     scoreData.At,
		Player: player,
	})
	if err := r.save(updated); err != nil {
		return ranking.Ranking{}, err
	}
	return updated, nil
}

func (r *Repo) ScoreFits(scoreData core.ScoreData) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.load(scoreData.Difficulty)
	if err != nil {
		return false, err
	}
	return ranking.Fits(current, scoreData.Score), nil
}

func (r *Repo) AvailableDifficulties() ([]core.Difficulty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}

	var out []core.Difficulty
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		difficulty, ok := parseFilename(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		if info.Size() == 0 {
			continue
		}
		out = append(out, difficulty)
	}
	ranking.SortDifficulties(out)
	return out, nil
}

// load reads a difficulty's file, creating an empty one if absent.
func (r *Repo) load(difficulty core.Difficulty) (ranking.Ranking, error) {
	path := r.path(difficulty)
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return ranking.Ranking{}, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return ranking.Ranking{}, fmt.Errorf("read ranking file %s: %w", path, err)
	}

	records := make([]ranking.Record, 0, len(rows))
	for _, row := range rows {
		record, err := parseRecord(row)
		if err != nil {
			return ranking.Ranking{}, fmt.Errorf("ranking file %s: %w", path, err)
		}
		records = append(records, record)
	}
	return ranking.Ranking{Difficulty: difficulty, Records: records}, nil
}

func (r *Repo) save(table ranking.Ranking) error {
	f, err := os.Create(r.path(table.Difficulty))
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	for _, record := range table.Records {
		row := []string{
			strconv.Itoa(record.Score),
			record.At.Format(timeLayout),
			record.Player,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (r *Repo) path(difficulty core.Difficulty) string {
	name := fmt.Sprintf("%d_%d.csv", difficulty.NumberSize, difficulty.DigitsNum)
	return filepath.Join(r.dir, name)
}

func parseRecord(row []string) (ranking.Record, error) {
	if len(row) != 3 {
		return ranking.Record{}, fmt.Errorf("record has %d fields, 3 needed", len(row))
	}
	score, err := strconv.Atoi(row[0])
	if err != nil {
		return ranking.Record{}, fmt.Errorf("bad score %q: %w", row[0], err)
	}
	at, err := time.Parse(timeLayout, row[1])
	if err != nil {
		return ranking.Record{}, fmt.Errorf("bad timestamp %q: %w", row[1], err)
	}
	return ranking.Record{Score: score, At: at, Player: row[2]}, nil
}

// parseFilename decodes "{number_size}_{digits_num}.csv". Anything else is
// not a ranking file.
func parseFilename(name string) (core.Difficulty, bool) {
	stem, ok := strings.CutSuffix(name, ".csv")
	if !ok {
		return core.Difficulty{}, false
	}
	sizeStr, digitsStr, ok := strings.Cut(stem, "_")
	if !ok {
		return core.Difficulty{}, false
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return core.Difficulty{}, false
	}
	digits, err := strconv.Atoi(digitsStr)
	if err != nil {
		return core.Difficulty{}, false
	}
	return core.Difficulty{NumberSize: size, DigitsNum: digits}, true
}

var _ ranking.Repo = (*Repo)(nil)
