package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Info is the best-effort biography/imagery lookup result for a performer.
// All fields may be empty; lookups never affect chart query correctness.
type Info struct {
	Name     string `json:"name"`
	Summary  string `json:"summary,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Source   string `json:"source,omitempty"`
}

// Config holds the endpoints and timeout for enrichment lookups.
type Config struct {
	EncyclopediaURL string
	CatalogURL      string
	Timeout         time.Duration
}

// DefaultConfig points at the public encyclopedia and music-catalog APIs.
func DefaultConfig() Config {
	return Config{
		EncyclopediaURL: "https://en.wikipedia.org/api/rest_v1/page/summary",
		CatalogURL:      "https://itunes.apple.com/search",
		Timeout:         5 * time.Second,
	}
}

// Client looks up performer imagery and biographies with a fallback chain:
// encyclopedia first, music catalog second. Results are cached per process
// since performer metadata changes far slower than the charts.
type Client struct {
	cfg        Config
	httpClient *http.Client

	cacheMutex sync.RWMutex
	cache      map[string]*cacheEntry
}

type cacheEntry struct {
	info       *Info
	expiration time.Time
}

const cacheTTL = 12 * time.Hour

// NewClient creates an enrichment client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      make(map[string]*cacheEntry),
	}
}

// Lookup resolves performer info, falling through the chain on any failure.
func (c *Client) Lookup(ctx context.Context, name string) (*Info, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty performer name")
	}

	key := strings.ToLower(name)
	if info, ok := c.getFromCache(key); ok {
		return info, nil
	}

	info, err := c.lookupEncyclopedia(ctx, name)
	if err != nil {
		log.Debug().Err(err).Str("performer", name).Msg("Encyclopedia lookup failed, trying catalog")
		info, err = c.lookupCatalog(ctx, name)
	}
	if err != nil {
		return nil, err
	}

	c.addToCache(key, info)
	return info, nil
}

func (c *Client) getFromCache(key string) (*Info, bool) {
	c.cacheMutex.RLock()
	defer c.cacheMutex.RUnlock()
	entry, ok := c.cache[key]
	if !ok || time.Now().After(entry.expiration) {
		return nil, false
	}
	return entry.info, true
}

func (c *Client) addToCache(key string, info *Info) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.cache[key] = &cacheEntry{info: info, expiration: time.Now().Add(cacheTTL)}
}

func (c *Client) lookupEncyclopedia(ctx context.Context, name string) (*Info, error) {
	endpoint := fmt.Sprintf("%s/%s", c.cfg.EncyclopediaURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("encyclopedia returned %d", resp.StatusCode)
	}

	var body struct {
		Title     string `json:"title"`
		Extract   string `json:"extract"`
		Thumbnail struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Extract == "" {
		return nil, fmt.Errorf("encyclopedia has no summary for %q", name)
	}

	return &Info{
		Name:     body.Title,
		Summary:  body.Extract,
		ImageURL: body.Thumbnail.Source,
		Source:   "encyclopedia",
	}, nil
}

func (c *Client) lookupCatalog(ctx context.Context, name string) (*Info, error) {
	q := url.Values{}
	q.Set("term", name)
	q.Set("entity", "musicArtist")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.CatalogURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			ArtistName    string `json:"artistName"`
			PrimaryGenre  string `json:"primaryGenreName"`
			ArtistLinkURL string `json:"artistLinkUrl"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Results) == 0 {
		return nil, fmt.Errorf("catalog has no match for %q", name)
	}

	r := body.Results[0]
	summary := r.ArtistName
	if r.PrimaryGenre != "" {
		summary = fmt.Sprintf("%s (%s)", r.ArtistName, r.PrimaryGenre)
	}
	return &Info{
		Name:    r.ArtistName,
		Summary: summary,
		Source:  "catalog",
	}, nil
}
