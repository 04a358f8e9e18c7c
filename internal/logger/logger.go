// Package logger exposes a process-wide zap sugared logger.
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the shared logger once. Production environments get the
// JSON encoder, everything else the console encoder. Later calls are
// no-ops.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if strings.EqualFold(strings.TrimSpace(env), "production") {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the shared logger, initializing a development one on
// first use if Init was never called.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries. Meant to be deferred from main.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
