package csvfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bacgo/core"
	"bacgo/ranking"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func score(s int, at time.Time, d core.Difficulty) core.ScoreData {
	return core.ScoreData{Score: s, At: at, Difficulty: d}
}

// assertRecords compares records field by field so that timestamps are
// checked as instants rather than by internal representation.
func assertRecords(t *testing.T, expected, got []ranking.Record) {
	t.Helper()
	require.Len(t, got, len(expected))
	for i := range expected {
		assert.Equal(t, expected[i].Score, got[i].Score, "record %d score", i)
		assert.Truef(t, expected[i].At.Equal(got[i].At),
			"record %d time: want %v, got %v", i, expected[i].At, got[i].At)
		assert.Equal(t, expected[i].Player, got[i].Player, "record %d player", i)
	}
}

func TestRepo_Load_notExistingRanking(t *testing.T) {
	repo := New(t.TempDir())
	difficulty := core.Difficulty{NumberSize: 4, DigitsNum: 6}

	table, err := repo.Load(difficulty)
	require.NoError(t, err)
	assert.Equal(t, difficulty, table.Difficulty)
	assert.Empty(t, table.Records)
}

func TestRepo_Load_touchesFile(t *testing.T) {
	dir := t.TempDir()
	repo := New(dir)

	_, err := repo.Load(core.Difficulty{NumberSize: 3, DigitsNum: 6})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "3_6.csv"))
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "loading must only create an empty placeholder")
}

func TestRepo_Update_sortsAndPersists(t *testing.T) {
	dir := t.TempDir()
	repo := New(dir)
	difficulty := core.Difficulty{NumberSize: 5, DigitsNum: 8}

	var table ranking.Ranking
	var err error
	for _, entry := range []struct {
		data   core.ScoreData
		player string
	}{
		{score(15, date(2021, 6, 4), difficulty), "Tomasz"},
		{score(10, date(2021, 6, 5), difficulty), "Tomek"},
		{score(12, date(2021, 6, 6), difficulty), "Maciek"},
	} {
		table, err = repo.Update(entry.data, entry.player)
		require.NoError(t, err)
	}

	expected := []ranking.Record{
		{Score: 10, At: date(2021, 6, 5), Player: "Tomek"},
		{Score: 12, At: date(2021, 6, 6), Player: "Maciek"},
		{Score: 15, At: date(2021, 6, 4), Player: "Tomasz"},
	}
	assertRecords(t, expected, table.Records)

	// a fresh repo instance over the same directory sees the same data
	reloaded, err := New(dir).Load(difficulty)
	require.NoError(t, err)
	assertRecords(t, expected, reloaded.Records)
}

func TestRepo_Update_fullRankingDropsWorst(t *testing.T) {
	repo := New(t.TempDir())
	difficulty := core.Difficulty{NumberSize: 3, DigitsNum: 6}

	var table ranking.Ranking
	var err error
	for _, entry := range []struct {
		data   core.ScoreData
		player string
	}{
		{score(32, date(2020, 8, 1), difficulty), "TO_DROP"},
		{score(30, date(2020, 11, 10), difficulty), "Darek"},
		{score(20, date(2020, 12, 30), difficulty), "Tomasz"},
		{score(6, date(2021, 3, 17), difficulty), "Tomasz"},
		{score(8, date(2021, 2, 18), difficulty), "Maciek"},
		{score(10, date(2021, 6, 5), difficulty), "Tomek"},
		{score(15, date(2021, 6, 4), difficulty), "Tomasz"},
		{score(15, date(2021, 6, 6), difficulty), "Zofia"},
		{score(17, date(2021, 4, 5), difficulty), "Piotrek"},
		{score(21, date(2021, 3, 20), difficulty), "Tomasz"},
		{score(12, date(2021, 6, 6), difficulty), "NEWEST"},
	} {
		table, err = repo.Update(entry.data, entry.player)
		require.NoError(t, err)
	}

	expected := []ranking.Record{
		{Score: 6, At: date(2021, 3, 17), Player: "Tomasz"},
		{Score: 8, At: date(2021, 2, 18), Player: "Maciek"},
		{Score: 10, At: date(2021, 6, 5), Player: "Tomek"},
		{Score: 12, At: date(2021, 6, 6), Player: "NEWEST"},
		{Score: 15, At: date(2021, 6, 4), Player: "Tomasz"},
		{Score: 15, At: date(2021, 6, 6), Player: "Zofia"},
		{Score: 17, At: date(2021, 4, 5), Player: "Piotrek"},
		{Score: 20, At: date(2020, 12, 30), Player: "Tomasz"},
		{Score: 21, At: date(2021, 3, 20), Player: "Tomasz"},
		{Score: 30, At: date(2020, 11, 10), Player: "Darek"},
	}
	assertRecords(t, expected, table.Records)

	loaded, err := repo.Load(difficulty)
	require.NoError(t, err)
	assertRecords(t, expected, loaded.Records)
}

func TestRepo_ScoreFits(t *testing.T) {
	repo := New(t.TempDir())
	difficulty := core.Difficulty{NumberSize: 3, DigitsNum: 6}

	fit, err := repo.ScoreFits(score(100, date(2021, 6, 6), difficulty))
	require.NoError(t, err)
	assert.True(t, fit, "anything fits an empty ranking")

	for i := 0; i < ranking.Size; i++ {
		_, err := repo.Update(score(10+i, date(2021, 1, 1+i), difficulty), "Player")
		require.NoError(t, err)
	}

	fit, err = repo.ScoreFits(score(12, date(2021, 6, 6), difficulty))
	require.NoError(t, err)
	assert.True(t, fit)

	fit, err = repo.ScoreFits(score(33, date(2021, 6, 6), difficulty))
	require.NoError(t, err)
	assert.False(t, fit)
}

func TestRepo_Update_invalidPlayerName(t *testing.T) {
	dir := t.TempDir()
	repo := New(dir)
	difficulty := core.Difficulty{NumberSize: 3, DigitsNum: 6}

	_, err := repo.Update(score(10, date(2021, 6, 5), difficulty), "ab")
	assert.ErrorIs(t, err, core.ErrInvalidPlayerName)

	_, err = os.Stat(filepath.Join(dir, "3_6.csv"))
	assert.True(t, os.IsNotExist(err), "rejected update must not touch the directory")
}

func TestRepo_AvailableDifficulties(t *testing.T) {
	dir := t.TempDir()
	repo := New(dir)
	difficulty2 := core.Difficulty{NumberSize: 4, DigitsNum: 10}
	difficulty3 := core.Difficulty{NumberSize: 3, DigitsNum: 5}

	// an empty placeholder from a plain read must not be listed
	_, err := repo.Load(core.Difficulty{NumberSize: 4, DigitsNum: 8})
	require.NoError(t, err)

	_, err = repo.Update(score(10, date(2020, 12, 30), difficulty2), "Tomek")
	require.NoError(t, err)
	_, err = repo.Update(score(7, date(2021, 4, 10), difficulty2), "Maciek")
	require.NoError(t, err)
	_, err = repo.Update(score(5, date(2021, 3, 2), difficulty3), "Piotrek")
	require.NoError(t, err)

	available, err := repo.AvailableDifficulties()
	require.NoError(t, err)
	assert.Equal(t, []core.Difficulty{difficulty3, difficulty2}, available)
}

func TestRepo_AvailableDifficulties_skipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	repo := New(dir)
	difficulty := core.Difficulty{NumberSize: 3, DigitsNum: 6}

	_, err := repo.Update(score(5, date(2021, 3, 2), difficulty), "Piotrek")
	require.NoError(t, err)

	for name, content := range map[string]string{
		"notes.txt":  "not a ranking",
		"3_x.csv":    "5,2021-03-02T00:00:00Z,Piotrek\n",
		"ranking":    "whatever",
		"4_9_10.csv": "junk",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	available, err := repo.AvailableDifficulties()
	require.NoError(t, err)
	assert.Equal(t, []core.Difficulty{difficulty}, available)
}

func TestRepo_Load_malformedFile(t *testing.T) {
	dir := t.TempDir()
	repo := New(dir)
	path := filepath.Join(dir, "3_6.csv")
	require.NoError(t, os.WriteFile(path, []byte("not-a-score,zzz,Player\n"), 0o644))

	_, err := repo.Load(core.Difficulty{NumberSize: 3, DigitsNum: 6})
	assert.Error(t, err)
}

func TestRepo_fileFormat(t *testing.T) {
	dir := t.TempDir()
	repo := New(dir)
	difficulty := core.Difficulty{NumberSize: 3, DigitsNum: 6}

	_, err := repo.Update(score(10, date(2021, 6, 5), difficulty), "Tomek")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "3_6.csv"))
	require.NoError(t, err)
	assert.Equal(t, "10,2021-06-05T00:00:00Z,Tomek\n", string(raw))
}
