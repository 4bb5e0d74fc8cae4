package export

import (
	"bytes"
	"testing"

	"chartdesk/internal/chart"

	"github.com/xuri/excelize/v2"
)

func TestWriteHistoryXLSX(t *testing.T) {
	h := &chart.History{
		Query:   "artist x",
		Dates:   []string{"2020-01-04", "2020-01-11"},
		Columns: []string{"Hello (Artist X)"},
		Ranks:   [][]int{{5}, {0}},
	}

	var buf bytes.Buffer
	if err := WriteHistoryXLSX(&buf, h); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue(sheetName, "B1")
	if err != nil {
		t.Fatalf("Read header: %v", err)
	}
	if got != "Hello (Artist X)" {
		t.Errorf("Expected column header, got %q", got)
	}

	got, _ = f.GetCellValue(sheetName, "B2")
	if got != "5" {
		t.Errorf("Expected rank 5 in B2, got %q", got)
	}

	// Missing week stays blank, not zero.
	got, _ = f.GetCellValue(sheetName, "B3")
	if got != "" {
		t.Errorf("Expected blank cell for missing week, got %q", got)
	}
}

func TestSafeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"artist x", "Artist_X_Chart_History.xlsx"},
		{"  the weeknd  ", "The_Weeknd_Chart_History.xlsx"},
		{"", "Chart_History.xlsx"},
	}
	for _, tc := range cases {
		if got := SafeFilename(tc.in); got != tc.want {
			t.Errorf("SafeFilename(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
