package main

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/iov-one/trinity/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config is read from the environment. Command line flags take
// precedence over it.
type Config struct {
	Home        string `env:"TRINITY_HOME" envDefault:"${HOME}/.trinity" envExpand:"true"`
	Bind        string `env:"TRINITY_BIND" envDefault:"tcp://localhost:26658"`
	MetricsAddr string `env:"TRINITY_METRICS" envDefault:"localhost:9090"`
	Debug       bool   `env:"TRINITY_DEBUG"`
	LogLevel    string `env:"TRINITY_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig parses the environment variables into a Config.
func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return c, nil
}

// Logger returns a tendermint logger writing to stdout that drops
// entries below the configured level.
func (c Config) Logger() (log.Logger, error) {
	allowed, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout))
	return log.NewFilter(logger, allowed).With("module", "trinity"), nil
}
