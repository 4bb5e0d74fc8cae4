package chart

import (
	"sort"
	"time"
)

// Entry is one normalized chart row: a single title/performer placement for
// one chart week. Entries are never mutated after normalization.
type Entry struct {
	Date      time.Time `json:"date"`
	Title     string    `json:"title"`
	Performer string    `json:"performer"`
	Rank      int       `json:"rank"`

	// PriorRank is nil for newly charted entries and for rows whose
	// "Last Week" field was blank, a dash, zero, or non-numeric.
	PriorRank *int `json:"priorRank,omitempty"`

	// Peak is the best rank reported by the source for this row. The
	// normalizer falls back to Rank when the source value is absent.
	Peak int `json:"peak"`

	// Lowercased, trimmed copies retained for matching. Display always
	// uses the original casing above.
	TitleKey     string `json:"-"`
	PerformerKey string `json:"-"`
}

// Key identifies a charted song by its exact title and performer spelling.
// Used as a value-object map key for cumulative-weeks counting.
type Key struct {
	Title     string
	Performer string
}

// Dataset is an immutable in-memory chart dataset. It is built once from
// normalized entries and passed into every query function; queries never
// mutate it, so concurrent reads need no locking.
type Dataset struct {
	Entries []Entry

	// Dates holds every distinct chart date in the dataset, ascending.
	Dates []time.Time
}

// NewDataset builds a dataset handle from normalized entries, precomputing
// the distinct date axis.
func NewDataset(entries []Entry) *Dataset {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, e := range entries {
		if !seen[e.Date] {
			seen[e.Date] = true
			dates = append(dates, e.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return &Dataset{Entries: entries, Dates: dates}
}

// LatestDate returns the most recent chart date, or the zero time for an
// empty dataset.
func (d *Dataset) LatestDate() time.Time {
	if len(d.Dates) == 0 {
		return time.Time{}
	}
	return d.Dates[len(d.Dates)-1]
}

// DateFormat is the wire representation for chart dates.
const DateFormat = "2006-01-02"
