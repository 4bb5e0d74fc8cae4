package refresh

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"chartdesk/internal/chart"

	"github.com/rs/zerolog/log"
)

// Updater downloads the weekly dataset and rewrites it into the shape the
// loader expects: chart dates snapped to Saturdays and pipe separators in
// performer names replaced with commas.
type Updater struct {
	url        string
	dest       string
	httpClient *http.Client
}

// NewUpdater creates an updater writing to dest.
func NewUpdater(url, dest string, timeout time.Duration) *Updater {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Updater{
		url:  url,
		dest: dest,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ShouldRun reports whether the weekly update is due. The source publishes
// on Wednesdays; any other day skips unless forced.
func ShouldRun(now time.Time, force bool) bool {
	return force || now.Weekday() == time.Wednesday
}

// Run downloads the dataset, applies the corrections, and atomically
// replaces the destination file.
func (u *Updater) Run(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	log.Info().Str("url", u.url).Msg("Downloading chart dataset")
	resp, err := u.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download dataset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dataset source returned %d", resp.StatusCode)
	}

	tmp := u.dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if err := Correct(resp.Body, out); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("correct dataset: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, u.dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace dataset: %w", err)
	}

	log.Info().Str("path", u.dest).Msg("Chart dataset updated")
	return nil
}

// Correct streams a chart CSV from r to w, snapping dates to Saturdays and
// cleaning performer names. Columns it does not recognize pass through
// untouched; rows with unparseable dates pass through for the loader to
// count and drop.
func Correct(r io.Reader, w io.Writer) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	dateIdx, artistIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Date":
			dateIdx = i
		case "Artist":
			artistIdx = i
		}
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}

		if dateIdx >= 0 && dateIdx < len(record) {
			if t, perr := time.Parse(chart.DateFormat, strings.TrimSpace(record[dateIdx])); perr == nil {
				record[dateIdx] = ToSaturday(t).Format(chart.DateFormat)
			}
		}
		if artistIdx >= 0 && artistIdx < len(record) {
			record[artistIdx] = strings.ReplaceAll(record[artistIdx], "|", ",")
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	return cw.Error()
}

// ToSaturday moves a date forward to the nearest Saturday, the chart's
// standard issue day. Saturdays are unchanged.
func ToSaturday(t time.Time) time.Time {
	daysAhead := int(time.Saturday - t.Weekday())
	if daysAhead < 0 {
		daysAhead += 7
	}
	return t.AddDate(0, 0, daysAhead)
}
