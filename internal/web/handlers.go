package web

import (
	"errors"
	"net/http"
	"time"

	"chartdesk/internal/chart"
	"chartdesk/internal/enrich"
	"chartdesk/internal/export"
	"chartdesk/internal/ingest"
	"chartdesk/internal/visuals"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handler serves the chart query API on top of the dataset store.
type Handler struct {
	store    *ingest.Store
	enricher *enrich.Client
}

func NewHandler(store *ingest.Store, enricher *enrich.Client) *Handler {
	return &Handler{store: store, enricher: enricher}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	api := r.Group("/api")
	api.GET("/history", h.history)
	api.GET("/history/export", h.historyExport)
	api.GET("/history/plot", h.historyPlot)
	api.GET("/snapshot", h.snapshot)
	api.GET("/dates", h.dates)
	api.GET("/song", h.song)
	api.GET("/performer", h.performer)
}

func (h *Handler) health(c *gin.Context) {
	loadedAt := h.store.LoadedAt()
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"loadedAt": loadedAt,
		"albums":   h.store.Dataset(ingest.ChartAlbums) != nil,
	})
}

// history builds the rank-over-time matrix for a performer query. The
// performer match is a deliberately loose case-insensitive substring;
// "the" matches many unrelated performers and that is accepted behavior.
func (h *Handler) history(c *gin.Context) {
	query := c.Query("performer")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "performer query is required"})
		return
	}

	result, err := h.buildHistory(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Duplicates > 0 {
		log.Debug().Str("query", result.Query).Int("duplicates", result.Duplicates).Msg("Duplicate weekly rows discarded")
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) historyExport(c *gin.Context) {
	if c.Query("performer") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "performer query is required"})
		return
	}

	result, err := h.buildHistory(c)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := export.SafeFilename(result.Query)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := export.WriteHistoryXLSX(c.Writer, result); err != nil {
		log.Error().Err(err).Str("query", result.Query).Msg("Spreadsheet export failed")
	}
}

func (h *Handler) historyPlot(c *gin.Context) {
	if c.Query("performer") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "performer query is required"})
		return
	}

	result, err := h.buildHistory(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := visuals.RenderHistory(c.Writer, result); err != nil {
		log.Error().Err(err).Str("query", result.Query).Msg("Chart render failed")
	}
}

func (h *Handler) buildHistory(c *gin.Context) (*chart.History, error) {
	opts := chart.HistoryOptions{SortPolicy: sortPolicy(c.Query("sort"))}
	if from := c.Query("from"); from != "" {
		minDate, err := time.Parse(chart.DateFormat, from)
		if err != nil {
			return nil, &badRequestError{"from must be YYYY-MM-DD"}
		}
		opts.MinDate = minDate
	}
	return chart.BuildHistory(h.store.Dataset(chartKind(c)), c.Query("performer"), opts)
}

// snapshot returns the ranked listing for one chart week. Without a date
// parameter the most recent week is selected.
func (h *Handler) snapshot(c *gin.Context) {
	var date time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(chart.DateFormat, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	snap, err := chart.BuildSnapshot(h.store.Dataset(chartKind(c)), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) dates(c *gin.Context) {
	ds := h.store.Dataset(chartKind(c))
	if ds == nil {
		respondError(c, chart.ErrDataUnavailable)
		return
	}

	dates := make([]string, 0, len(ds.Dates))
	for i := len(ds.Dates) - 1; i >= 0; i-- {
		dates = append(dates, ds.Dates[i].Format(chart.DateFormat))
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (h *Handler) song(c *gin.Context) {
	title := c.Query("title")
	performer := c.Query("performer")
	if title == "" || performer == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and performer are required"})
		return
	}

	samples, err := chart.SongHistory(h.store.Dataset(chartKind(c)), title, performer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": title, "performer": performer, "samples": samples})
}

// performer serves the best-effort biography/imagery lookup. Failures
// degrade to an empty result; they never affect chart queries.
func (h *Handler) performer(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if h.enricher == nil {
		c.JSON(http.StatusOK, enrich.Info{Name: name})
		return
	}

	info, err := h.enricher.Lookup(c.Request.Context(), name)
	if err != nil {
		log.Debug().Err(err).Str("performer", name).Msg("Enrichment lookup failed")
		c.JSON(http.StatusOK, enrich.Info{Name: name})
		return
	}
	c.JSON(http.StatusOK, info)
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func respondError(c *gin.Context, err error) {
	var nf *chart.NotFoundError
	var br *badRequestError
	switch {
	case errors.As(err, &br):
		c.JSON(http.StatusBadRequest, gin.H{"error": br.msg})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error(), "query": nf.Query})
	case errors.Is(err, chart.ErrDataUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chart dataset not loaded"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func chartKind(c *gin.Context) ingest.ChartKind {
	if c.Query("chart") == string(ingest.ChartAlbums) {
		return ingest.ChartAlbums
	}
	return ingest.ChartSongs
}

func sortPolicy(raw string) chart.SortPolicy {
	if raw == string(chart.MilestoneFirst) {
		return chart.MilestoneFirst
	}
	return chart.ChronoFirst
}
