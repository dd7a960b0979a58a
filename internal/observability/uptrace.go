package observability

import (
	"context"

	"github.com/riskibarqy/nfl-trends-api/internal/config"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

func noopShutdown(context.Context) error { return nil }

// InitUptrace installs the global OpenTelemetry providers. With logs enabled
// every application log line is also mirrored as an OTel log record.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		logging.SetMirror(nil)
		logger.Info("uptrace disabled", "enabled", cfg.UptraceEnabled, "dsn_set", cfg.UptraceDSN != "")
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(uptraceOptions(cfg)...)
	if cfg.UptraceLogsEnabled {
		logging.SetMirror(newUptraceLogMirror(cfg.ServiceVersion))
	} else {
		logging.SetMirror(nil)
	}
	logger.Info("uptrace enabled", "environment", cfg.AppEnv, "logs_enabled", cfg.UptraceLogsEnabled)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}, nil
}

func uptraceOptions(cfg config.Config) []uptrace.Option {
	return []uptrace.Option{
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(
			attribute.String("storage.driver", cfg.StorageDriver),
			attribute.Bool("cache.enabled", cfg.CacheEnabled),
		),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	}
}
