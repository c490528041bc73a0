package host

import (
	"context"
	"io"
	"time"

	"github.com/benbjohnson/clock"

	"go.viam.com/naio/config"
	"go.viam.com/naio/ia"
	"go.viam.com/naio/logging"
	"go.viam.com/naio/robot"
	"go.viam.com/naio/sim"
)

// NewFromConfig builds the configured agent writing to out and a runtime that feeds it from
// the simulated sensors. The clock may be nil to use the wall clock.
func NewFromConfig(ctx context.Context, cfg *config.Config, out io.Writer, clk clock.Clock, logger logging.Logger) (*Runtime, error) {
	if err := logging.UpdateLoggerLevels(cfg.LogConfig, logger); err != nil {
		return nil, err
	}

	callbacks, err := ia.NewAgent(ctx, cfg.Agent.Model, cfg.Agent.Attributes, out, logger.Sublogger("ia"))
	if err != nil {
		return nil, err
	}

	source := sim.NewRandomSource(sim.Config{
		Seed:      cfg.Sensors.Seed,
		LidarSize: cfg.Sensors.LidarSize,
		Origin:    cfg.Sensors.Origin,
	})
	return New(robot.NewState(), callbacks, Options{
		ClockPeriod:  time.Duration(cfg.ClockPeriod),
		PacketPeriod: time.Duration(cfg.PacketPeriod),
		Source:       source,
		PickKind:     source.RandomKind,
		Clock:        clk,
	}, logger.Sublogger("host"))
}
