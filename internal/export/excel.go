package export

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"chartdesk/internal/chart"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Chart History"

// WriteHistoryXLSX writes the pivoted history matrix as a spreadsheet: the
// date axis in the first column, one column per charted entry, and blank
// cells for weeks with no appearance.
func WriteHistoryXLSX(w io.Writer, h *chart.History) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := setCell(f, 1, 1, "Date"); err != nil {
		return err
	}
	for j, col := range h.Columns {
		if err := setCell(f, j+2, 1, col); err != nil {
			return err
		}
	}

	for i, date := range h.Dates {
		if err := setCell(f, 1, i+2, date); err != nil {
			return err
		}
		for j, rank := range h.Ranks[i] {
			if rank == 0 {
				continue
			}
			if err := setCell(f, j+2, i+2, rank); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheetName, cell, value)
}

// SafeFilename derives the download filename from a performer query:
// title-cased, spaces replaced with underscores.
func SafeFilename(query string) string {
	words := strings.Fields(strings.TrimSpace(query))
	if len(words) == 0 {
		return "Chart_History.xlsx"
	}
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, "_") + "_Chart_History.xlsx"
}
