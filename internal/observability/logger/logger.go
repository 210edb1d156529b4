package logger

import (
	"github.com/kerbside/kerbside/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// New builds the process logger: JSON in production, console elsewhere.
func New(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

var Module = fx.Module("logger",
	fx.Provide(New),
	fx.Invoke(func(log *zap.Logger) {
		zap.ReplaceGlobals(log)
	}),
)
