package chart

import (
	"sort"
	"time"
)

// SortPolicy selects how a performer's entries are ordered for presentation.
type SortPolicy string

const (
	// ChronoFirst orders entries purely by first chart appearance.
	ChronoFirst SortPolicy = "chrono"

	// MilestoneFirst lists entries that ever reached rank 1 before the
	// rest; within each group, first chart appearance ascending.
	MilestoneFirst SortPolicy = "milestone"
)

// Sample is one dated rank observation for a single entry.
type Sample struct {
	Date time.Time `json:"date"`
	Rank int       `json:"rank"`
}

// EntryStats summarizes one distinct title/performer pair within a query.
type EntryStats struct {
	Title     string    `json:"title"`
	Performer string    `json:"performer"`
	Column    string    `json:"column"`
	Peak      int       `json:"peak"`
	Weeks     int       `json:"weeksCharted"`
	FirstDate time.Time `json:"firstDate"`
}

// Summary aggregates a performer's charted catalog.
type Summary struct {
	Entries    int `json:"entries"`
	TopTen     int `json:"topTen"`
	NumberOnes int `json:"numberOnes"`
}

// AggregateSamples derives per-entry stats from an entry's dated samples.
// Samples must be non-empty and sorted ascending by date.
func AggregateSamples(samples []Sample) (peak int, weeks int, first time.Time) {
	peak = samples[0].Rank
	for _, s := range samples {
		if s.Rank < peak {
			peak = s.Rank
		}
	}
	return peak, len(samples), samples[0].Date
}

// Summarize computes the catalog-level summary from per-entry stats.
func Summarize(stats []EntryStats) Summary {
	sum := Summary{Entries: len(stats)}
	for _, s := range stats {
		if s.Peak <= 10 {
			sum.TopTen++
		}
		if s.Peak == 1 {
			sum.NumberOnes++
		}
	}
	return sum
}

// SortEntryStats orders entries in place according to the given policy.
func SortEntryStats(stats []EntryStats, policy SortPolicy) {
	switch policy {
	case MilestoneFirst:
		sort.SliceStable(stats, func(i, j int) bool {
			iTop := stats[i].Peak == 1
			jTop := stats[j].Peak == 1
			if iTop != jTop {
				return iTop
			}
			return stats[i].FirstDate.Before(stats[j].FirstDate)
		})
	default:
		sort.SliceStable(stats, func(i, j int) bool {
			return stats[i].FirstDate.Before(stats[j].FirstDate)
		})
	}
}
