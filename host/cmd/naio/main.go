// Package main runs an agent against simulated sensors until the configured duration elapses
// or the process is interrupted.
package main

import (
	"context"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/naio/config"
	"go.viam.com/naio/host"
	"go.viam.com/naio/logging"
)

// Arguments for the command.
type Arguments struct {
	ConfigFile string `flag:"config,usage=agent host config file"`
	Agent      string `flag:"agent,usage=agent model to run, overrides the config"`
	Duration   string `flag:"duration,usage=how long to run, e.g. 30s; negative runs until interrupted"`
	Seed       string `flag:"seed,usage=simulated sensor seed, overrides the config"`
	Debug      bool   `flag:"debug,usage=enable debug logging"`
}

var stdout io.Writer = host.NewSyncWriter(os.Stdout)

var logger = logging.NewWriterLogger("naio", logging.INFO, stdout)

func main() {
	logging.ReplaceGlobal(logger)
	utils.ContextualMain(mainWithArgs, logger)
}

func mainWithArgs(ctx context.Context, args []string, logger logging.Logger) (err error) {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	cfg := config.Default()
	if argsParsed.ConfigFile != "" {
		cfg, err = config.Read(ctx, argsParsed.ConfigFile, logger)
		if err != nil {
			return err
		}
	}
	if err := applyArguments(cfg, argsParsed); err != nil {
		return err
	}
	if cfg.Debug {
		logger.SetLevel(logging.DEBUG)
	}
	if cfg.LogFile != "" {
		appender, logFile := logging.NewFileAppender(cfg.LogFile)
		logger.AddAppender(appender)
		defer func() {
			err = multierr.Combine(err, logFile.Close())
		}()
	}

	rt, err := host.NewFromConfig(ctx, cfg, stdout, nil, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, logger.Sync())
	}()

	logger.Infow("running agent", "model", cfg.Agent.Model, "duration", time.Duration(cfg.RunDuration).String())
	return rt.Run(ctx, time.Duration(cfg.RunDuration))
}

func applyArguments(cfg *config.Config, args Arguments) error {
	if args.Agent != "" {
		cfg.Agent.Model = args.Agent
		cfg.Agent.Attributes = nil
	}
	if args.Duration != "" {
		d, err := time.ParseDuration(args.Duration)
		if err != nil {
			return err
		}
		cfg.RunDuration = config.Duration(d)
	}
	if args.Seed != "" {
		seed, err := strconv.ParseUint(args.Seed, 10, 64)
		if err != nil {
			return errors.Wrap(err, "invalid seed")
		}
		cfg.Sensors.Seed = seed
	}
	if args.Debug {
		cfg.Debug = true
	}
	return cfg.Validate()
}
