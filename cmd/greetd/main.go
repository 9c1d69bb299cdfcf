// Package main provides the entry point for greetd.
//
// greetd is a small HTTP service that answers GET /hello with a fixed
// greeting. Everything else is operational plumbing: configuration,
// structured logging, metrics and graceful shutdown.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/avosk/greetd/internal/infra/buildinfo"
	"github.com/avosk/greetd/internal/infra/confloader"
	"github.com/avosk/greetd/internal/infra/shutdown"
	"github.com/avosk/greetd/internal/server/config"
	"github.com/avosk/greetd/internal/server/httpserver"
	"github.com/avosk/greetd/internal/server/httpserver/handler"
	"github.com/avosk/greetd/internal/telemetry/logger"
	"github.com/avosk/greetd/internal/telemetry/metric"
)

func main() {
	app := &cli.App{
		Name:    "greetd",
		Usage:   "minimal greeting HTTP server",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"GREETD_CONFIG"},
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.String("config"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	// Configuration loading is total: bad values become warnings, the
	// process always starts with a usable snapshot.
	cfg, warnings := config.Load(configFile)

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	for _, w := range warnings {
		log.Warn("configuration fallback applied",
			"field", w.Field,
			"reason", w.Reason,
			"fallback", w.Fallback,
		)
	}

	log.Info("starting greetd",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"env", cfg.Env,
		"config", configFile,
	)

	metrics := metric.NewRegistry()
	router := buildRouter(cfg, metrics, log)

	middlewares := []httpserver.Middleware{
		httpserver.RequestID(),
		httpserver.RequestLog(log),
	}
	if cfg.Server.RateLimit > 0 {
		middlewares = append(middlewares, httpserver.RateLimit(cfg.Server.RateLimit))
	}
	middlewares = append(middlewares, httpserver.Metrics(metrics))

	srv := httpserver.New(cfg, httpserver.Chain(router, middlewares...), log)

	sh := shutdown.NewHandler(cfg.Server.ShutdownTimeout)
	sh.OnShutdown(func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	})

	if configFile != "" {
		watcher, err := startConfigWatcher(configFile, log)
		if err != nil {
			log.Warn("configuration watcher unavailable", "error", err)
		} else {
			sh.OnShutdown(func(ctx context.Context) error {
				return watcher.Stop()
			})
		}
	}

	go func() {
		if err := srv.Start(); err != nil {
			sh.Trigger(err)
		}
	}()

	if err := sh.Wait(); err != nil {
		log.Error("greetd stopped with error", "error", err)
		return err
	}

	log.Info("greetd stopped gracefully")
	return nil
}

// initLogger builds the application logger from the configuration and
// installs it as the process default.
func initLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)
	return log, nil
}

// buildRouter assembles the route table. The greeting endpoint is always
// registered; /healthz and /metrics are added when ops endpoints are
// enabled.
func buildRouter(cfg *config.Config, metrics *metric.Registry, log logger.Logger) *httpserver.Router {
	hs := handler.New(log)

	routes := []httpserver.Route{
		{Path: "/hello", Method: http.MethodGet, Handler: hs.Hello},
	}
	if cfg.Server.OpsEndpoints {
		routes = append(routes,
			httpserver.Route{Path: "/healthz", Method: http.MethodGet, Handler: hs.Health},
			httpserver.Route{Path: "/metrics", Method: http.MethodGet, Handler: hs.Passthrough(metrics.Handler())},
		)
	}

	return httpserver.NewRouter(hs, log, routes...)
}

// startConfigWatcher reports configuration file changes. The running
// snapshot is immutable, so a change is logged as requiring a restart
// rather than applied.
func startConfigWatcher(path string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(path); err != nil {
		return nil, err
	}

	watcher.OnChange(func(changed string) {
		log.Warn("configuration file changed on disk; restart to apply",
			"file", changed,
		)
	})
	watcher.StartAsync()
	return watcher, nil
}
