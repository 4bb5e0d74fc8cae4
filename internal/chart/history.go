package chart

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// HistoryOptions configures a history build.
type HistoryOptions struct {
	// MinDate, when set, restricts matching to entries on or after it.
	// The zero value keeps the full era.
	MinDate time.Time

	// SortPolicy orders the per-entry stats listing. The matrix column
	// order is always first-appearance ascending regardless of policy.
	SortPolicy SortPolicy
}

// History is the dense rank-over-time view for one performer query: a
// date x entry grid aligned to every chart date the dataset contains from
// the performer's first appearance onward.
type History struct {
	Query   string   `json:"query"`
	Dates   []string `json:"dates"`
	Columns []string `json:"columns"`

	// Ranks has one row per date and one cell per column. Chart ranks are
	// always positive; 0 marks a week with no appearance.
	Ranks [][]int `json:"ranks"`

	Entries []EntryStats `json:"entries"`
	Summary Summary      `json:"summary"`

	// Duplicates counts source rows discarded because another row already
	// supplied a rank for the same (date, entry) cell.
	Duplicates int `json:"duplicates,omitempty"`
}

// columnKey identifies a distinct charted entry within a query by its
// lowercase title and performer.
type columnKey struct {
	performer string
	title     string
}

// BuildHistory matches entries whose lowercase performer contains the
// lowercase query and pivots them into a date x entry rank grid.
//
// The substring match is intentionally loose ("the" matches many unrelated
// performers); it supports partial-name search and is preserved as-is for
// compatibility with existing callers.
func BuildHistory(ds *Dataset, query string, opts HistoryOptions) (*History, error) {
	if ds == nil {
		return nil, ErrDataUnavailable
	}

	q := strings.ToLower(strings.TrimSpace(query))

	// 1. Select matches.
	var matches []Entry
	for _, e := range ds.Entries {
		if !strings.Contains(e.PerformerKey, q) {
			continue
		}
		if !opts.MinDate.IsZero() && e.Date.Before(opts.MinDate) {
			continue
		}
		matches = append(matches, e)
	}
	if len(matches) == 0 {
		return nil, &NotFoundError{Query: query}
	}

	// 2. Resolve display spellings: performers across the whole match set,
	// titles within each performer's title group.
	performerVariants := make(map[string][]string)
	titleVariants := make(map[columnKey][]string)
	for _, e := range matches {
		performerVariants[e.PerformerKey] = append(performerVariants[e.PerformerKey], e.Performer)
		ck := columnKey{performer: e.PerformerKey, title: e.TitleKey}
		titleVariants[ck] = append(titleVariants[ck], e.Title)
	}

	display := make(map[columnKey]string, len(titleVariants))
	entryNames := make(map[columnKey][2]string, len(titleVariants))
	for ck, titles := range titleVariants {
		title := ResolveDisplay(titles)
		performer := ResolveDisplay(performerVariants[ck.performer])
		display[ck] = fmt.Sprintf("%s (%s)", title, performer)
		entryNames[ck] = [2]string{title, performer}
	}

	// 3. Build the sparse grid, keeping the first rank seen per cell.
	type cell struct {
		date time.Time
		col  columnKey
	}
	grid := make(map[cell]int)
	firstDate := make(map[columnKey]time.Time)
	firstIndex := make(map[columnKey]int)
	duplicates := 0
	minMatched := matches[0].Date

	for i, e := range matches {
		if e.Date.Before(minMatched) {
			minMatched = e.Date
		}

		ck := columnKey{performer: e.PerformerKey, title: e.TitleKey}
		if _, seen := firstDate[ck]; !seen {
			firstDate[ck] = e.Date
			firstIndex[ck] = i
		} else if e.Date.Before(firstDate[ck]) {
			firstDate[ck] = e.Date
		}

		c := cell{date: e.Date, col: ck}
		if _, dup := grid[c]; dup {
			duplicates++
			continue
		}
		grid[c] = e.Rank
	}

	// 4. Densify the row axis: every dataset date from the first matched
	// appearance onward, so gaps in a chart run stay visible.
	var axis []time.Time
	for _, d := range ds.Dates {
		if !d.Before(minMatched) {
			axis = append(axis, d)
		}
	}

	// 5. Order columns by first appearance, stable on source order.
	columns := make([]columnKey, 0, len(firstDate))
	for ck := range firstDate {
		columns = append(columns, ck)
	}
	sort.SliceStable(columns, func(i, j int) bool {
		a, b := columns[i], columns[j]
		if !firstDate[a].Equal(firstDate[b]) {
			return firstDate[a].Before(firstDate[b])
		}
		return firstIndex[a] < firstIndex[b]
	})

	h := &History{
		Query:      query,
		Dates:      make([]string, len(axis)),
		Columns:    make([]string, len(columns)),
		Ranks:      make([][]int, len(axis)),
		Duplicates: duplicates,
	}
	for i, ck := range columns {
		h.Columns[i] = display[ck]
	}
	for i, d := range axis {
		h.Dates[i] = d.Format(DateFormat)
		row := make([]int, len(columns))
		for j, ck := range columns {
			row[j] = grid[cell{date: d, col: ck}]
		}
		h.Ranks[i] = row
	}

	// 6. Per-entry stats over each column's samples, presentation order
	// per the requested policy.
	h.Entries = make([]EntryStats, 0, len(columns))
	for _, ck := range columns {
		var samples []Sample
		for _, d := range axis {
			if r, ok := grid[cell{date: d, col: ck}]; ok {
				samples = append(samples, Sample{Date: d, Rank: r})
			}
		}
		peak, weeks, first := AggregateSamples(samples)
		names := entryNames[ck]
		h.Entries = append(h.Entries, EntryStats{
			Title:     names[0],
			Performer: names[1],
			Column:    display[ck],
			Peak:      peak,
			Weeks:     weeks,
			FirstDate: first,
		})
	}
	SortEntryStats(h.Entries, opts.SortPolicy)
	h.Summary = Summarize(h.Entries)

	return h, nil
}

// SongHistory returns the dated rank samples for one exact title/performer
// pair, matched case-insensitively, sorted ascending by date.
func SongHistory(ds *Dataset, title, performer string) ([]Sample, error) {
	if ds == nil {
		return nil, ErrDataUnavailable
	}

	titleKey := strings.ToLower(strings.TrimSpace(title))
	performerKey := strings.ToLower(strings.TrimSpace(performer))

	seen := make(map[time.Time]bool)
	var samples []Sample
	for _, e := range ds.Entries {
		if e.TitleKey != titleKey || e.PerformerKey != performerKey {
			continue
		}
		if seen[e.Date] {
			continue
		}
		seen[e.Date] = true
		samples = append(samples, Sample{Date: e.Date, Rank: e.Rank})
	}
	if len(samples) == 0 {
		return nil, &NotFoundError{Query: fmt.Sprintf("%s (%s)", title, performer)}
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].Date.Before(samples[j].Date) })
	return samples, nil
}
