package commands

import (
	"fmt"
	"os"
	"time"

	"chartdesk/internal/chart"
	"chartdesk/internal/export"
	"chartdesk/internal/ingest"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	exportOut  string
	exportSort string
	exportFrom string
)

var exportCmd = &cobra.Command{
	Use:   "export <performer>",
	Short: "Write a performer's chart history matrix to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		ds, err := ingest.LoadFile(cfg.SongsCSV)
		if err != nil {
			return err
		}

		opts := chart.HistoryOptions{SortPolicy: chart.ChronoFirst}
		if exportSort == string(chart.MilestoneFirst) {
			opts.SortPolicy = chart.MilestoneFirst
		}
		if exportFrom != "" {
			minDate, err := time.Parse(chart.DateFormat, exportFrom)
			if err != nil {
				return fmt.Errorf("--from must be YYYY-MM-DD")
			}
			opts.MinDate = minDate
		}

		h, err := chart.BuildHistory(ds, query, opts)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = export.SafeFilename(query)
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := export.WriteHistoryXLSX(f, h); err != nil {
			return err
		}

		log.Info().
			Str("performer", query).
			Int("weeks", len(h.Dates)).
			Int("entries", len(h.Columns)).
			Str("path", out).
			Msg("Chart history exported")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (defaults to <Performer>_Chart_History.xlsx)")
	exportCmd.Flags().StringVar(&exportSort, "sort", "chrono", "entry stats order: chrono or milestone")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "only include entries charting on or after this date")
	rootCmd.AddCommand(exportCmd)
}
