package ingest

import (
	"context"
	"os"
	"sync"
	"time"

	"chartdesk/internal/chart"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ChartKind names one of the hosted charts.
type ChartKind string

const (
	ChartSongs  ChartKind = "songs"
	ChartAlbums ChartKind = "albums"
)

// Store holds the loaded datasets behind a read lock so a weekly refresh
// can swap them atomically underneath running queries. Queries operate on
// the dataset handle they took, never on the store.
type Store struct {
	mu       sync.RWMutex
	songs    *chart.Dataset
	albums   *chart.Dataset
	loadedAt time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// LoadAll loads the songs chart and, when albumsPath is non-empty and the
// file exists, the albums chart, concurrently. The albums chart is
// optional: a missing file disables album queries without failing the load.
func (s *Store) LoadAll(ctx context.Context, songsPath, albumsPath string) error {
	var songs, albums *chart.Dataset

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		ds, err := LoadFile(songsPath)
		if err != nil {
			return err
		}
		songs = ds
		return nil
	})
	if albumsPath != "" {
		g.Go(func() error {
			if _, err := os.Stat(albumsPath); os.IsNotExist(err) {
				log.Info().Str("path", albumsPath).Msg("Albums chart not present, album queries disabled")
				return nil
			}
			ds, err := LoadFile(albumsPath)
			if err != nil {
				return err
			}
			albums = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.songs = songs
	s.albums = albums
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Info().
		Int("songs", len(songs.Entries)).
		Bool("albums", albums != nil).
		Msg("Chart datasets loaded")
	return nil
}

// Swap replaces the held datasets atomically. A nil albums dataset
// disables album queries.
func (s *Store) Swap(songs, albums *chart.Dataset) {
	s.mu.Lock()
	s.songs = songs
	s.albums = albums
	s.loadedAt = time.Now()
	s.mu.Unlock()
}

// Dataset returns the dataset for the requested chart, or nil when it was
// never loaded. Callers receive chart.ErrDataUnavailable from the query
// functions in that case.
func (s *Store) Dataset(kind ChartKind) *chart.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if kind == ChartAlbums {
		return s.albums
	}
	return s.songs
}

// LoadedAt reports when the datasets were last swapped in.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
