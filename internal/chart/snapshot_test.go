package chart

import (
	"reflect"
	"testing"
	"time"
)

func TestBuildSnapshot_MovementClassification(t *testing.T) {
	ds := NewDataset([]Entry{
		entry(day(2020, 1, 11), "Climber", "A", 3, intPtr(5)),
		entry(day(2020, 1, 11), "Faller", "B", 8, intPtr(2)),
		entry(day(2020, 1, 11), "Holder", "C", 4, intPtr(4)),
		entry(day(2020, 1, 11), "Debut", "D", 1, nil),
	})

	snap, err := BuildSnapshot(ds, day(2020, 1, 11))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	byTitle := make(map[string]SnapshotRow)
	for _, r := range snap.Rows {
		byTitle[r.Title] = r
	}

	cases := []struct {
		title    string
		movement Movement
		delta    int
	}{
		{"Climber", MovementUp, 2},
		{"Faller", MovementDown, 6},
		{"Holder", MovementSame, 0},
		{"Debut", MovementNew, 0},
	}
	for _, tc := range cases {
		r, ok := byTitle[tc.title]
		if !ok {
			t.Fatalf("Missing row for %s", tc.title)
		}
		if r.Movement != tc.movement {
			t.Errorf("%s: expected movement %s, got %s", tc.title, tc.movement, r.Movement)
		}
		if r.Delta != tc.delta {
			t.Errorf("%s: expected delta %d, got %d", tc.title, tc.delta, r.Delta)
		}
	}
}

func TestBuildSnapshot_RowsSortedByRank(t *testing.T) {
	ds := NewDataset([]Entry{
		entry(day(2020, 1, 11), "Third", "A", 3, nil),
		entry(day(2020, 1, 11), "First", "B", 1, nil),
		entry(day(2020, 1, 11), "Second", "C", 2, nil),
	})

	snap, err := BuildSnapshot(ds, day(2020, 1, 11))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := 1; i < len(snap.Rows); i++ {
		if snap.Rows[i].Rank <= snap.Rows[i-1].Rank {
			t.Errorf("Rows not strictly ascending by rank at index %d: %v", i, snap.Rows)
		}
	}
}

func TestBuildSnapshot_CumulativeWeeks(t *testing.T) {
	ds := NewDataset([]Entry{
		entry(day(2020, 1, 4), "Hit", "A", 10, nil),
		entry(day(2020, 1, 11), "Hit", "A", 7, intPtr(10)),
		entry(day(2020, 1, 18), "Hit", "A", 5, intPtr(7)),
		// A later week must not count toward the 01-11 snapshot.
		entry(day(2020, 1, 25), "Hit", "A", 2, intPtr(5)),
	})

	snap, err := BuildSnapshot(ds, day(2020, 1, 11))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(snap.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(snap.Rows))
	}
	if snap.Rows[0].CumulativeWeeks != 2 {
		t.Errorf("Expected 2 cumulative weeks at 2020-01-11, got %d", snap.Rows[0].CumulativeWeeks)
	}
}

func TestBuildSnapshot_AvailableDatesDescending(t *testing.T) {
	ds := NewDataset([]Entry{
		entry(day(2020, 1, 4), "A", "X", 1, nil),
		entry(day(2020, 1, 18), "A", "X", 2, nil),
		entry(day(2020, 1, 11), "A", "X", 3, nil),
	})

	snap, err := BuildSnapshot(ds, day(2020, 1, 4))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{"2020-01-18", "2020-01-11", "2020-01-04"}
	if !reflect.DeepEqual(snap.AvailableDates, want) {
		t.Errorf("Expected dates %v, got %v", want, snap.AvailableDates)
	}
}

func TestBuildSnapshot_ZeroDateSelectsMostRecent(t *testing.T) {
	ds := NewDataset([]Entry{
		entry(day(2020, 1, 4), "A", "X", 1, nil),
		entry(day(2020, 1, 11), "B", "X", 1, nil),
	})

	snap, err := BuildSnapshot(ds, time.Time{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if snap.Date != "2020-01-11" {
		t.Errorf("Expected default date 2020-01-11, got %s", snap.Date)
	}
	if len(snap.Rows) != 1 || snap.Rows[0].Title != "B" {
		t.Errorf("Expected the most recent week's row, got %v", snap.Rows)
	}
}

func TestBuildSnapshot_NilDataset(t *testing.T) {
	if _, err := BuildSnapshot(nil, day(2020, 1, 4)); err != ErrDataUnavailable {
		t.Errorf("Expected ErrDataUnavailable, got %v", err)
	}
}

func TestBuildSnapshot_PeakFallback(t *testing.T) {
	// Normalizer already resolves peak; the snapshot must carry it through.
	res := Normalize([]Row{
		{Date: "2020-01-11", Title: "NoPeak", Performer: "A", Rank: "9", Peak: ""},
		{Date: "2020-01-11", Title: "HasPeak", Performer: "B", Rank: "9", Peak: "3"},
	})
	ds := NewDataset(res.Entries)

	snap, err := BuildSnapshot(ds, day(2020, 1, 11))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, r := range snap.Rows {
		switch r.Title {
		case "NoPeak":
			if r.Peak != 9 {
				t.Errorf("Expected peak fallback to rank 9, got %d", r.Peak)
			}
		case "HasPeak":
			if r.Peak != 3 {
				t.Errorf("Expected peak 3, got %d", r.Peak)
			}
		}
	}
}
