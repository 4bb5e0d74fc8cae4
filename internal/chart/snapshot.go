package chart

import (
	"sort"
	"time"
)

// Movement classifies a rank's change relative to the prior week.
type Movement string

const (
	MovementNew  Movement = "new"
	MovementUp   Movement = "up"
	MovementDown Movement = "down"
	MovementSame Movement = "same"
)

// SnapshotRow is one placement within a weekly chart listing.
type SnapshotRow struct {
	Rank      int    `json:"rank"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
	PriorRank *int   `json:"priorRank,omitempty"`

	// Delta is the absolute rank change; 0 for new and unchanged entries.
	Delta    int      `json:"delta"`
	Movement Movement `json:"movement"`
	Peak     int      `json:"peak"`

	// CumulativeWeeks counts this exact title/performer pair's chart
	// appearances up to and including the snapshot date.
	CumulativeWeeks int `json:"cumulativeWeeks"`
}

// Snapshot is the full ranked listing for one chart week.
type Snapshot struct {
	Date string        `json:"date"`
	Rows []SnapshotRow `json:"rows"`

	// AvailableDates lists every chart date in the dataset, most recent
	// first. The first element is the default selection.
	AvailableDates []string `json:"availableDates"`
}

// BuildSnapshot produces the ranked listing for the given chart date, with
// week-over-week movement and cumulative weeks-on-chart per row. A zero
// date selects the most recent chart week.
func BuildSnapshot(ds *Dataset, date time.Time) (*Snapshot, error) {
	if ds == nil {
		return nil, ErrDataUnavailable
	}

	if date.IsZero() {
		date = ds.LatestDate()
	}

	// Cumulative appearances per exact pair, computed once per request
	// rather than rescanning history for every row.
	cumulative := make(map[Key]int)
	var rows []SnapshotRow
	for _, e := range ds.Entries {
		if e.Date.After(date) {
			continue
		}
		cumulative[Key{Title: e.Title, Performer: e.Performer}]++
		if e.Date.Equal(date) {
			rows = append(rows, classify(e))
		}
	}

	for i := range rows {
		rows[i].CumulativeWeeks = cumulative[Key{Title: rows[i].Title, Performer: rows[i].Performer}]
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })

	snap := &Snapshot{
		Date:           date.Format(DateFormat),
		Rows:           rows,
		AvailableDates: make([]string, 0, len(ds.Dates)),
	}
	for i := len(ds.Dates) - 1; i >= 0; i-- {
		snap.AvailableDates = append(snap.AvailableDates, ds.Dates[i].Format(DateFormat))
	}
	return snap, nil
}

func classify(e Entry) SnapshotRow {
	row := SnapshotRow{
		Rank:      e.Rank,
		Title:     e.Title,
		Performer: e.Performer,
		PriorRank: e.PriorRank,
		Peak:      e.Peak,
	}

	switch {
	case e.PriorRank == nil:
		row.Movement = MovementNew
	case e.Rank < *e.PriorRank:
		row.Movement = MovementUp
		row.Delta = *e.PriorRank - e.Rank
	case e.Rank > *e.PriorRank:
		row.Movement = MovementDown
		row.Delta = e.Rank - *e.PriorRank
	default:
		row.Movement = MovementSame
	}
	return row
}
