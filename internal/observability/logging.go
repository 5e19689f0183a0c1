// Package observability builds the simulator's zap loggers.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/tdnd/internal/config"
)

// RootName names the logger returned by NewLogger.
const RootName = "tdnd"

// NewLogger creates the root logger from cfg. Console output is the zap
// development preset without stack traces below Error; json output is the
// production preset. Output defaults to stderr.
//
// Precondition: cfg.Level is one of "debug", "info", "warn", "error";
// cfg.Format is "json" or "console".
// Postcondition: Returns a logger named RootName or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	zapCfg, err := presetFor(cfg.Format)
	if err != nil {
		return nil, err
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{outputPath(cfg.Output)}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named(RootName), nil
}

// ForScenario returns a child of base named "scenario" that tags every entry
// with the scenario name.
//
// Precondition: base must be non-nil.
func ForScenario(base *zap.Logger, scenario string) *zap.Logger {
	return base.Named("scenario").With(zap.String("scenario", scenario))
}

func presetFor(format string) (zap.Config, error) {
	switch format {
	case "json":
		return zap.NewProductionConfig(), nil
	case "console":
		c := zap.NewDevelopmentConfig()
		c.DisableStacktrace = true
		return c, nil
	default:
		return zap.Config{}, fmt.Errorf("unknown log format %q", format)
	}
}

func outputPath(out string) string {
	if out == "" {
		return "stderr"
	}
	return out
}
