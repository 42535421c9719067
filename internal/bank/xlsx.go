package bank

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

func readXLSX(ctx context.Context, path string, sheets map[Difficulty]string) (map[Difficulty][]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	out := make(map[Difficulty][]Row, len(Tiers))
	for _, d := range Tiers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := sheets[d]
		idx, err := f.GetSheetIndex(name)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("%w: sheet %q for %s", ErrMissingPartition, name, d)
		}
		grid, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		out[d] = rowsFromGrid(grid)
	}
	return out, nil
}

// rowsFromGrid maps a header-first cell grid onto Rows. Columns are matched
// by name, so their order in the sheet does not matter. Blank lines are dropped.
func rowsFromGrid(grid [][]string) []Row {
	if len(grid) == 0 {
		return nil
	}
	cols := make(map[string]int, len(grid[0]))
	for i, h := range grid[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cell := func(rec []string, name string) *string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return nil
		}
		v := rec[i]
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return &v
	}

	rows := make([]Row, 0, len(grid)-1)
	for n, rec := range grid[1:] {
		if blank(rec) {
			continue
		}
		rows = append(rows, Row{
			Line:     n + 1,
			ID:       cell(rec, ColID),
			Question: cell(rec, ColQuestion),
			Options: [OptionCount]*string{
				cell(rec, ColOptionA),
				cell(rec, ColOptionB),
				cell(rec, ColOptionC),
				cell(rec, ColOptionD),
			},
			CorrectOption: cell(rec, ColCorrectOption),
		})
	}
	return rows
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
