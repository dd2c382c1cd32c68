package lazyseqcli

import (
	"time"

	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/logging"
)

type Config struct {
	LogLevel logging.Level `env:"LAZYSEQ_LOG_LEVEL" default:"info" enum:"debug,info,warn,error,fatal,"`
	// Metrics enables generator instrumentation,
	// the collected metrics are written to stderr after the command finished.
	Metrics bool `env:"LAZYSEQ_METRICS" default:"false"`
	// PageLatency is the simulated round trip of the in-memory page source.
	PageLatency time.Duration `env:"LAZYSEQ_PAGE_LATENCY" default:"0s"`
}

func LoadConfig() (Config, error) {
	var c Config
	if err := env.Load(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
