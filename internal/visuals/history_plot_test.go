package visuals

import (
	"bytes"
	"strings"
	"testing"

	"chartdesk/internal/chart"
)

func TestRenderHistory(t *testing.T) {
	h := &chart.History{
		Query:   "artist x",
		Dates:   []string{"2020-01-04", "2020-01-11"},
		Columns: []string{"Hello (Artist X)"},
		Ranks:   [][]int{{5}, {3}},
	}

	var buf bytes.Buffer
	if err := RenderHistory(&buf, h); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, "Hello (Artist X)") {
		t.Error("Expected series name in rendered HTML")
	}
	if !strings.Contains(html, "2020-01-04") {
		t.Error("Expected date axis labels in rendered HTML")
	}
}

func TestNewHistoryLine_MissingWeeksBreakLine(t *testing.T) {
	h := &chart.History{
		Query:   "artist x",
		Dates:   []string{"2020-01-04", "2020-01-11", "2020-01-18"},
		Columns: []string{"Hello (Artist X)"},
		Ranks:   [][]int{{5}, {0}, {3}},
	}

	var buf bytes.Buffer
	if err := NewHistoryLine(h).Render(&buf); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// The gap week is encoded as "-" so the series shows a break rather
	// than a dip to zero.
	if !strings.Contains(buf.String(), `"-"`) {
		t.Error("Expected missing week marker in rendered chart data")
	}
}
