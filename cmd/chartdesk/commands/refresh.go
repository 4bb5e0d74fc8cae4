package commands

import (
	"context"
	"time"

	"chartdesk/internal/refresh"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var refreshForce bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Download the latest weekly dataset",
	Long: `Downloads the current dataset, snaps chart dates to Saturdays, and cleans
performer names. The source publishes on Wednesdays; other days are skipped
unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !refresh.ShouldRun(time.Now(), refreshForce) {
			log.Info().Msg("Not Wednesday, skipping update (use --force to override)")
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.RefreshTimeout+2*time.Minute)
		defer cancel()

		updater := refresh.NewUpdater(cfg.DatasetURL, cfg.SongsCSV, cfg.RefreshTimeout)
		return updater.Run(ctx)
	},
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshForce, "force", false, "update regardless of weekday")
	rootCmd.AddCommand(refreshCmd)
}
