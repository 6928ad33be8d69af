package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/RimshaSaif36/Sunbiz-Data-fetch/internal/server"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/cache"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/config"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/observability"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/registry"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/search"
)

// serveCommand creates the serve command, which runs the HTTP lookup API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		listen     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP lookup API",
		Long: `Run the HTTP lookup API consumed by the autocomplete widget.

Endpoints:
  GET /api/search?q=<query>&limit=<n>
  GET /healthz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			store, err := newStore(cmd.Context(), cfg.Cache)
			if err != nil {
				return err
			}
			defer store.Close()

			client := registry.NewClient(cfg.Registry.BaseURL)
			client.SetTimeout(cfg.Registry.Timeout.Std())

			observability.SetCacheHooks(&cacheLogHooks{logger: c.Logger})
			observability.SetHTTPHooks(&httpLogHooks{logger: c.Logger})

			svc := search.New(client, store, c.Logger)
			c.Logger.Info("starting server",
				"registry", cfg.Registry.BaseURL,
				"cache", cfg.Cache.Backend,
			)
			return server.New(svc, c.Logger).Run(cmd.Context(), cfg.Listen)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")

	return cmd
}

// newStore builds the configured cache backend. The redis backend is
// pinged up front so a bad address fails at startup, not mid-request.
func newStore(ctx context.Context, cfg config.Cache) (cache.Store, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		store := cache.NewRedisStore(cfg.RedisAddr)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("redis at %s: %w", cfg.RedisAddr, err)
		}
		return store, nil
	case config.BackendNone:
		return cache.NewNullStore(), nil
	default:
		return cache.NewMemoryStore(cache.DefaultCapacity), nil
	}
}

// cacheLogHooks logs cache activity at debug level.
type cacheLogHooks struct {
	logger *log.Logger
}

func (h *cacheLogHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *cacheLogHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *cacheLogHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

// httpLogHooks logs outbound registry traffic.
type httpLogHooks struct {
	logger *log.Logger
}

func (h *httpLogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("registry request", "method", method, "host", host, "path", path)
}

func (h *httpLogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("registry response", "host", host, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *httpLogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("registry error", "host", host, "err", err)
}
