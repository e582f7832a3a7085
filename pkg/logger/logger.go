package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/noah-isme/university-registry/pkg/config"
)

const serviceName = "university-registry"

// New builds the registry logger. Output goes to stderr so stdout stays free for the menu and reports.
func New(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := baseConfig(cfg.Env)
	zapCfg.Encoding = encodingFor(cfg.Log.Format)
	zapCfg.Level = zap.NewAtomicLevelAt(levelFor(cfg.Log.Level, zapCfg.Level.Level()))
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.InitialFields = map[string]interface{}{
		"service": serviceName,
		"env":     cfg.Env,
	}

	return zapCfg.Build()
}

func baseConfig(env string) zap.Config {
	if env == config.EnvProduction {
		return zap.NewProductionConfig()
	}
	return zap.NewDevelopmentConfig()
}

func encodingFor(format string) string {
	if format == "console" {
		return "console"
	}
	return "json"
}

// levelFor parses a configured level. Empty keeps the environment default; garbage falls back to info.
func levelFor(raw string, fallback zapcore.Level) zapcore.Level {
	if raw == "" {
		return fallback
	}
	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// ForCommand scopes a logger to a single console command.
func ForCommand(l *zap.Logger, command, commandID string) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return l.With(zap.String("command", command), zap.String("command_id", commandID))
}
