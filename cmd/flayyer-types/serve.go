package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-flayyer/pkg/host"
)

var (
	serveAddr      string
	serveSchemas   []string
	serveCacheSize int
	serveStrict    bool
	serveStripHTML bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a preview host that decodes render requests",
	Long: `Starts an HTTP server exposing:
  GET /props/:template   props for a render query
  GET /sizes             size presets
  GET /agents            recognized agents

Example:
  flayyer-types serve --addr :8080 --schema article=article.schema.json`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringArrayVar(&serveSchemas, "schema", nil, "Template schema as name=file (repeatable)")
	serveCmd.Flags().StringVar(&schemaFormat, "format", formatJSONSchema, "Schema format: jsonschema, literal or openapi")
	serveCmd.Flags().StringVar(&schemaComponent, "component", "", "Component schema name for --format openapi")
	serveCmd.Flags().IntVar(&serveCacheSize, "cache-size", host.DefaultCacheSize, "Decoded props cache size")
	serveCmd.Flags().BoolVar(&serveStrict, "strict", false, "Report undeclared variables")
	serveCmd.Flags().BoolVar(&serveStripHTML, "strip-html", false, "Strip markup from variables")
}

func buildHost(ctx context.Context, specs []string) (*host.Host, error) {
	opts := []host.Option{host.WithLogger(logger), host.WithCacheSize(serveCacheSize)}
	if serveStrict {
		opts = append(opts, host.WithStrict())
	}
	if serveStripHTML {
		opts = append(opts, host.WithHTMLStripping())
	}
	h, err := host.New(opts...)
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		name, location, ok := strings.Cut(spec, "=")
		if !ok || name == "" || location == "" {
			return nil, fmt.Errorf("invalid --schema %q (want name=file)", spec)
		}
		declared, err := readSchema(ctx, location, schemaFormat, schemaComponent)
		if err != nil {
			return nil, err
		}
		if err := h.Register(name, declared); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	loadCtx, cancel := context.WithTimeout(cmd.Context(), timeout)
	h, err := buildHost(loadCtx, serveSchemas)
	cancel()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	h.Routes(e)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("preview host listening", zap.String("addr", serveAddr), zap.Strings("templates", h.Templates()))
		if err := e.Start(serveAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
