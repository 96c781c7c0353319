package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-config-keeper/internal/config"
	"github.com/MKhiriev/go-config-keeper/internal/coordination"
	"github.com/MKhiriev/go-config-keeper/internal/environ"
	"github.com/MKhiriev/go-config-keeper/internal/handler"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/resolver"
	"github.com/MKhiriev/go-config-keeper/internal/server"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("configd")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	params, err := config.LoadParams(cfg.ManifestPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading parameter manifest")
	}

	// Process configuration wins over driver options bundled in the
	// manifest file.
	driver, err := config.MergeDriver(cfg.Resolver.DriverConfig(), params.Driver)
	if err != nil {
		log.Fatal().Err(err).Msg("error merging driver options")
	}

	client, err := newCoordinationClient(cfg.Coordination)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating coordination client")
	}

	// Watches registered during Initialize live until this context is
	// cancelled at shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res := resolver.New(client, environ.OS(), log)
	if err := res.Initialize(ctx, params.EnvParams, driver); err != nil {
		log.Fatal().Err(err).Msg("error resolving parameter manifest")
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = ":8080"
	}

	h := handler.NewHandler(res.Store(), version(cfg.App), log)
	srv, err := server.NewServer(h, cfg.Server, log,
		func() { cancel() },
		func() { res.Close() },
		func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("error closing coordination client")
			}
		},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func newCoordinationClient(cfg config.Coordination) (coordination.Client, error) {
	switch cfg.Backend {
	case "", "etcd":
		return coordination.NewEtcdClient(coordination.EtcdConfig{
			Endpoints:      cfg.Endpoints,
			DialTimeout:    cfg.DialTimeout,
			RequestTimeout: cfg.RequestTimeout,
		})
	case "http":
		return coordination.NewHTTPClient(coordination.HTTPConfig{
			BaseURL: cfg.BaseURL,
			Timeout: cfg.RequestTimeout,
		}), nil
	case "memory":
		return coordination.NewMemory(nil), nil
	default:
		return nil, fmt.Errorf("unknown coordination backend %q", cfg.Backend)
	}
}

func version(app config.App) string {
	if app.Version != "" {
		return app.Version
	}
	if buildVersion != "" {
		return buildVersion
	}

	return "N/A"
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
