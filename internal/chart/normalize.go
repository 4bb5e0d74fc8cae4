package chart

import (
	"strconv"
	"strings"
	"time"
)

// Row is one raw record as read from the source file, before any parsing.
type Row struct {
	Date      string
	Title     string
	Performer string
	Rank      string
	LastWeek  string
	Peak      string
}

// NormalizeResult carries the clean entries plus an explicit account of the
// rows that were rejected, so callers and tests can assert on drop counts
// instead of inferring them.
type NormalizeResult struct {
	Entries []Entry
	Dropped int
}

// dateLayouts covers the formats observed across dataset revisions.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2006/01/02",
	"01/02/2006",
}

// Normalize parses raw rows into typed entries. Rows without a parseable
// date or a positive rank are dropped and counted. Text fields are trimmed;
// a lowercase copy is retained for matching while the original casing is
// preserved for display.
func Normalize(rows []Row) NormalizeResult {
	res := NormalizeResult{Entries: make([]Entry, 0, len(rows))}

	for _, row := range rows {
		date, ok := parseDate(row.Date)
		if !ok {
			res.Dropped++
			continue
		}

		rank, ok := parseRank(row.Rank)
		if !ok {
			res.Dropped++
			continue
		}

		title := strings.TrimSpace(row.Title)
		performer := strings.TrimSpace(row.Performer)

		e := Entry{
			Date:         date,
			Title:        title,
			Performer:    performer,
			Rank:         rank,
			TitleKey:     strings.ToLower(title),
			PerformerKey: strings.ToLower(performer),
		}

		if prior, ok := parseRank(row.LastWeek); ok {
			p := prior
			e.PriorRank = &p
		}

		if peak, ok := parseRank(row.Peak); ok {
			e.Peak = peak
		} else {
			e.Peak = rank
		}

		res.Entries = append(res.Entries, e)
	}

	return res
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseRank reads a rank-like field. Blank, dash, zero, and non-numeric
// values all mean "absent" rather than zero, so a missing prior rank is
// distinguishable from a parse error downstream.
func parseRank(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, false
	}
	// Some dataset revisions export ranks as floats ("5.0").
	s = strings.TrimSuffix(s, ".0")
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
