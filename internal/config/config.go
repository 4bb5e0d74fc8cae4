package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Default public location of the weekly Hot 100 dataset.
const defaultDatasetURL = "https://raw.githubusercontent.com/HipsterVizNinja/random-data/main/Music/hot-100-current.csv"

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// DataPath is the directory holding the chart CSV files.
	DataPath  string
	SongsCSV  string
	AlbumsCSV string

	HTTPAddr   string
	DatasetURL string
	LogDir     string

	// RefreshTimeout bounds the dataset download.
	RefreshTimeout time.Duration

	// AutoRefresh enables the in-process weekly refresh ticker.
	AutoRefresh bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first so the binary
	// can be launched from anywhere.
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	timeoutSecs, _ := strconv.Atoi(getEnv("REFRESH_TIMEOUT_SECONDS", "60"))

	cfg := &AppConfig{
		DataPath:       dataPath,
		SongsCSV:       getEnv("SONGS_CSV", filepath.Join(dataPath, "hot100.csv")),
		AlbumsCSV:      getEnv("ALBUMS_CSV", filepath.Join(dataPath, "albums.csv")),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DatasetURL:     getEnv("DATASET_URL", defaultDatasetURL),
		LogDir:         logDir,
		RefreshTimeout: time.Duration(timeoutSecs) * time.Second,
		AutoRefresh:    getEnvBool("AUTO_REFRESH", false),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
