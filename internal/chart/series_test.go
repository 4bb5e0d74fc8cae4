package chart

import (
	"testing"
)

func TestAggregateSamples(t *testing.T) {
	samples := []Sample{
		{Date: day(2020, 1, 4), Rank: 5},
		{Date: day(2020, 1, 11), Rank: 3},
		{Date: day(2020, 1, 18), Rank: 7},
	}

	peak, weeks, first := AggregateSamples(samples)
	if peak != 3 {
		t.Errorf("Expected peak 3, got %d", peak)
	}
	if weeks != 3 {
		t.Errorf("Expected 3 weeks, got %d", weeks)
	}
	if !first.Equal(day(2020, 1, 4)) {
		t.Errorf("Expected first date 2020-01-04, got %v", first)
	}
}

func TestSummarize(t *testing.T) {
	stats := []EntryStats{
		{Peak: 1},
		{Peak: 7},
		{Peak: 10},
		{Peak: 55},
	}

	sum := Summarize(stats)
	if sum.Entries != 4 {
		t.Errorf("Expected 4 entries, got %d", sum.Entries)
	}
	if sum.TopTen != 3 {
		t.Errorf("Expected 3 top-10 entries, got %d", sum.TopTen)
	}
	if sum.NumberOnes != 1 {
		t.Errorf("Expected 1 number one, got %d", sum.NumberOnes)
	}
}

func TestSortEntryStats_MilestoneFirst(t *testing.T) {
	stats := []EntryStats{
		{Title: "Minor Early", Peak: 40, FirstDate: day(2019, 1, 1)},
		{Title: "Late Smash", Peak: 1, FirstDate: day(2021, 1, 1)},
		{Title: "Early Smash", Peak: 1, FirstDate: day(2020, 1, 1)},
		{Title: "Minor Late", Peak: 12, FirstDate: day(2022, 1, 1)},
	}

	SortEntryStats(stats, MilestoneFirst)

	want := []string{"Early Smash", "Late Smash", "Minor Early", "Minor Late"}
	for i, w := range want {
		if stats[i].Title != w {
			t.Errorf("Position %d: expected %q, got %q", i, w, stats[i].Title)
		}
	}
}

func TestSortEntryStats_ChronoFirst(t *testing.T) {
	stats := []EntryStats{
		{Title: "Late Smash", Peak: 1, FirstDate: day(2021, 1, 1)},
		{Title: "Minor Early", Peak: 40, FirstDate: day(2019, 1, 1)},
	}

	SortEntryStats(stats, ChronoFirst)

	if stats[0].Title != "Minor Early" {
		t.Errorf("Expected chronological order, got %q first", stats[0].Title)
	}
}
