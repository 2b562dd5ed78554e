package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/diwise/entity-accessor/internal/pkg/application/notifications"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
)

type FlagType int
type FlagMap map[FlagType]string

const (
	listenAddress FlagType = iota
	servicePort

	schemaConfigPath
	opaPolicyPath
	notificationEndpoint

	logFormat
)

type AppConfig struct {
	schemaConfig io.ReadCloser
	opaConfig    io.ReadCloser
	notifier     notifications.Notifier
}

func defaultFlags() FlagMap {
	return FlagMap{
		listenAddress: "", // listen on all ipv4 and ipv6 interfaces
		servicePort:   "8080",

		schemaConfigPath: "/opt/diwise/config/schemas.yaml",
		opaPolicyPath:    "/opt/diwise/config/authz.rego",

		notificationEndpoint: "", // notifications disabled by default

		logFormat: "json",
	}
}

func parseExternalConfig(ctx context.Context, flags FlagMap) (context.Context, FlagMap) {

	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])
	flags[schemaConfigPath] = envOrDef(ctx, "SCHEMA_CONFIG_PATH", flags[schemaConfigPath])
	flags[opaPolicyPath] = envOrDef(ctx, "POLICIES_PATH", flags[opaPolicyPath])
	flags[notificationEndpoint] = envOrDef(ctx, "NOTIFICATION_ENDPOINT", flags[notificationEndpoint])
	flags[logFormat] = envOrDef(ctx, "LOG_FORMAT", flags[logFormat])

	apply := func(f FlagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("schemas", "the schema configuration file", apply(schemaConfigPath))
	flag.Func("policies", "an authorization policy file", apply(opaPolicyPath))
	flag.Func("notify", "an endpoint that should be notified about completed inspections", apply(notificationEndpoint))
	flag.Func("port", "the port to listen for incoming requests on", apply(servicePort))
	flag.Parse()

	return ctx, flags
}

func newConfig(ctx context.Context, flags FlagMap) (*AppConfig, error) {
	schemaConfig, err := os.Open(flags[schemaConfigPath])
	if err != nil {
		return nil, fmt.Errorf("failed to open schema configuration: %w", err)
	}

	opaConfig, err := os.Open(flags[opaPolicyPath])
	if err != nil {
		schemaConfig.Close()
		return nil, fmt.Errorf("failed to open authorization policies: %w", err)
	}

	cfg := &AppConfig{
		schemaConfig: schemaConfig,
		opaConfig:    opaConfig,
	}

	if flags[notificationEndpoint] != "" {
		cfg.notifier, err = notifications.NewNotifier(ctx, flags[notificationEndpoint])
		if err != nil {
			schemaConfig.Close()
			opaConfig.Close()
			return nil, err
		}
	}

	return cfg, nil
}
