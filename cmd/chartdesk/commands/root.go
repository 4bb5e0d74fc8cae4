package commands

import (
	"context"
	"time"

	"chartdesk/internal/config"
	"chartdesk/internal/enrich"
	"chartdesk/internal/ingest"
	"chartdesk/internal/logging"
	"chartdesk/internal/refresh"
	"chartdesk/internal/web"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose     bool
	openBrowser bool
	cfg         *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "chartdesk",
	Short: "Chartdesk serves weekly music-chart history and snapshot queries",
	Long: `A web service over the weekly Hot 100 dataset: per-performer rank-over-time
matrices (with spreadsheet export and plotting) and per-week ranked listings
with movement and weeks-on-chart.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Chartdesk starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		store := ingest.NewStore()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := store.LoadAll(ctx, cfg.SongsCSV, cfg.AlbumsCSV); err != nil {
			log.Fatal().Err(err).Msg("Failed to load chart datasets")
		}

		if cfg.AutoRefresh {
			go runWeeklyRefresh(store)
		}

		server := web.NewServer(cfg, store, enrich.NewClient(enrich.DefaultConfig()))
		if err := server.Run(openBrowser); err != nil {
			log.Fatal().Err(err).Msg("Server stopped with error")
		}
	},
}

// runWeeklyRefresh checks daily whether the weekly update is due, then
// downloads the dataset and swaps the reloaded charts in.
func runWeeklyRefresh(store *ingest.Store) {
	updater := refresh.NewUpdater(cfg.DatasetURL, cfg.SongsCSV, cfg.RefreshTimeout)
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if !refresh.ShouldRun(time.Now(), false) {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RefreshTimeout+2*time.Minute)
		if err := updater.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Weekly dataset refresh failed")
			cancel()
			continue
		}
		if err := store.LoadAll(ctx, cfg.SongsCSV, cfg.AlbumsCSV); err != nil {
			log.Error().Err(err).Msg("Failed to reload datasets after refresh")
		}
		cancel()
	}
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().BoolVar(&openBrowser, "open", false, "open the local URL in the default browser")
}
