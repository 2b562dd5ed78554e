package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/diwise/entity-accessor/internal/pkg/application/inspector"
	"github.com/diwise/entity-accessor/internal/pkg/infrastructure/router"
	"github.com/diwise/entity-accessor/internal/pkg/presentation/api"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/go-chi/chi/v5"
)

const serviceName string = "entity-inspector"

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, flags[logFormat])
	defer cleanup()

	cfg, err := newConfig(ctx, flags)
	if err != nil {
		logger.Error("failed to load configuration", "err", err.Error())
		os.Exit(1)
	}

	r, err := initialize(ctx, flags, cfg)
	if err != nil {
		logger.Error("failed to initialize service", "err", err.Error())
		os.Exit(1)
	}

	if cfg.notifier != nil {
		defer cfg.notifier.Stop()
	}

	logger.Info("starting to listen for connections", "port", flags[servicePort])

	err = http.ListenAndServe(flags[listenAddress]+":"+flags[servicePort], r)
	if err != nil {
		logger.Error("failed to listen for connections", "err", err.Error())
		os.Exit(1)
	}
}

func initialize(ctx context.Context, flags FlagMap, cfg *AppConfig) (*chi.Mux, error) {
	defer cfg.schemaConfig.Close()
	defer cfg.opaConfig.Close()

	schemas, err := inspector.LoadConfiguration(cfg.schemaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema configuration: %w", err)
	}

	app, err := inspector.New(ctx, schemas)
	if err != nil {
		return nil, err
	}

	onsuccess := func(context.Context, *inspector.Result) {}

	if cfg.notifier != nil {
		err = cfg.notifier.Start()
		if err != nil {
			return nil, fmt.Errorf("failed to start notifier: %w", err)
		}
		onsuccess = cfg.notifier.InspectionCompleted
	}

	r := router.New(serviceName)

	err = api.RegisterHandlers(ctx, r, cfg.opaConfig, app, onsuccess)
	if err != nil {
		return nil, err
	}

	return r, nil
}
