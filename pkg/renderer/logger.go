package renderer

import (
	"go.uber.org/zap"

	"github.com/ghalston/pathtrace-core/pkg/core"
)

// ZapLogger adapts a *zap.SugaredLogger to core.Logger, replacing the
// teacher's stdout fmt.Printf implementation with structured logging.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds a production zap logger (JSON encoding, info level)
// wrapped as a core.Logger.
func NewZapLogger() (core.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: logger.Sugar()}, nil
}

// NewZapLoggerFrom wraps an already-constructed zap logger, for callers
// that want custom encoder/level configuration.
func NewZapLoggerFrom(logger *zap.Logger) core.Logger {
	return &ZapLogger{sugar: logger.Sugar()}
}

// Printf implements core.Logger by routing through zap's printf-style sink.
func (z *ZapLogger) Printf(format string, args ...interface{}) {
	z.sugar.Infof(format, args...)
}
