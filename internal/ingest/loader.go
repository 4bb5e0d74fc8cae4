package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"chartdesk/internal/chart"

	"github.com/rs/zerolog/log"
)

// Source column names. "Last Week" and "Peak Position" are optional; the
// four required columns are checked up front so a malformed file fails
// loudly instead of silently normalizing to nothing.
var requiredColumns = []string{"Date", "Song", "Artist", "Rank"}

// LoadFile reads a chart CSV from disk and normalizes it into a dataset.
func LoadFile(path string) (*chart.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chart csv: %w", err)
	}
	defer f.Close()

	ds, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// Load reads chart rows from r, validates the header, and normalizes the
// rows into an immutable dataset.
func Load(r io.Reader) (*chart.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	var rows []chart.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		rows = append(rows, chart.Row{
			Date:      valueAt(index, record, "Date"),
			Title:     valueAt(index, record, "Song"),
			Performer: valueAt(index, record, "Artist"),
			Rank:      valueAt(index, record, "Rank"),
			LastWeek:  valueAt(index, record, "Last Week"),
			Peak:      valueAt(index, record, "Peak Position"),
		})
	}

	res := chart.Normalize(rows)
	if res.Dropped > 0 {
		log.Warn().Int("dropped", res.Dropped).Int("kept", len(res.Entries)).Msg("Dropped unparseable chart rows")
	}

	return chart.NewDataset(res.Entries), nil
}

func valueAt(index map[string]int, record []string, col string) string {
	i, ok := index[col]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
