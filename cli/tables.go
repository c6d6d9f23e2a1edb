package cli

import (
	"strconv"

	"github.com/olekukonko/tablewriter"

	"bacgo/core"
	"bacgo/ranking"
)

// printRanking renders a full Size-row table, padding empty positions with
// dashes the way the score screen always shows ten slots.
func (u *UI) printRanking(table ranking.Ranking) {
	t := tablewriter.NewWriter(u.out)
	t.SetHeader([]string{"Pos.", "Score", "Player"})
	t.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})
	for i := 0; i < ranking.Size; i++ {
		row := []string{strconv.Itoa(i + 1), "-", "-"}
		if i < len(table.Records) {
			record := table.Records[i]
			row[1] = strconv.Itoa(record.Score)
			row[2] = record.Player
		}
		t.Append(row)
	}
	t.Render()
}

func (u *UI) printDifficulties(catalog []core.NumberParams) {
	t := tablewriter.NewWriter(u.out)
	t.SetHeader([]string{"Key", "Difficulty", "Size", "Digits"})
	for i, params := range catalog {
		t.Append([]string{
			strconv.Itoa(i + 1),
			params.Label,
			strconv.Itoa(params.NumberSize()),
			params.Digits.Description,
		})
	}
	t.Render()
}

func (u *UI) printAvailable(available []core.Difficulty) {
	t := tablewriter.NewWriter(u.out)
	t.SetHeader([]string{"Key", "Size", "Digits"})
	for i, difficulty := range available {
		t.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(difficulty.NumberSize),
			strconv.Itoa(difficulty.DigitsNum),
		})
	}
	t.Render()
}

func (u *UI) printHistory(history []core.GuessRecord) {
	t := tablewriter.NewWriter(u.out)
	t.SetHeader([]string{"Number", "Bulls", "Cows"})
	for _, record := range history {
		t.Append([]string{
			record.Number,
			strconv.Itoa(record.Bulls),
			strconv.Itoa(record.Cows),
		})
	}
	t.Render()
}
