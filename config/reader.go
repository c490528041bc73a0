package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/naio/logging"
)

// Read reads a config from the given file. Environment variables such as ${NAIO_SEED} are
// substituted before parsing.
func Read(
	ctx context.Context,
	filePath string,
	logger logging.Logger,
) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(ctx, filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(
	ctx context.Context,
	originalPath string,
	r io.Reader,
	logger logging.Logger,
) (*Config, error) {
	cfg := Config{
		ConfigFilePath: originalPath,
	}
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "failed to validate Config")
	}
	logger.CDebugw(ctx, "read config", "path", originalPath, "agent", cfg.Agent.Model)
	return &cfg, nil
}

// Default returns the config used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.ApplyDefaults()
	return &cfg
}
