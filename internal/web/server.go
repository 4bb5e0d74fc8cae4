package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"chartdesk/internal/config"
	"chartdesk/internal/enrich"
	"chartdesk/internal/ingest"

	"github.com/gin-gonic/gin"
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
)

// Server hosts the chart query API.
type Server struct {
	cfg    *config.AppConfig
	router *gin.Engine
}

// NewServer wires the HTTP routes over the dataset store.
func NewServer(cfg *config.AppConfig, store *ingest.Store, enricher *enrich.Client) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	NewHandler(store, enricher).RegisterRoutes(router)

	return &Server{cfg: cfg, router: router}
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully. When open
// is true the local URL is opened in the default browser once listening.
func (s *Server) Run(open bool) error {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.HTTPAddr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if open {
		go func() {
			time.Sleep(200 * time.Millisecond)
			if err := browser.OpenURL(localURL(s.cfg.HTTPAddr)); err != nil {
				log.Warn().Err(err).Msg("Failed to open browser")
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	}
}

func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
