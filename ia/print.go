package ia

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.viam.com/naio/logging"
	"go.viam.com/naio/robot"
)

// PrintModel is the model name of the agent that reports every event as a line of text.
const PrintModel = "print"

// DefaultPrefix starts every line written by the print agent.
const DefaultPrefix = "[IA]"

// PrintConfig holds the print agent attributes.
type PrintConfig struct {
	Prefix string `json:"prefix"`
}

func init() {
	RegisterAgent(PrintModel, Registration{
		Constructor: func(ctx context.Context, attrs Attributes, out io.Writer, logger logging.Logger) (*Callbacks, error) {
			var conf PrintConfig
			if err := DecodeAttributes(attrs, &conf); err != nil {
				return nil, err
			}
			return NewPrintAgent(conf, out, logger)
		},
	})
}

type printAgent struct {
	prefix string
	out    io.Writer
	logger logging.Logger
}

// NewPrintAgent returns the handler table of an agent that writes exactly one line per event:
//
//	[IA] started
//	[IA] clock
//	[IA] Acc packet: 1.0 2.0 3.0
//	[IA] Gyro packet: 0.1 0.2 0.3
//	[IA] Gps packet: 48.8 2.3 35.0 7
//	[IA] Lidar packet: [0, 12, 40]
//
// A sensor that has not reported yet is printed as "unavailable".
func NewPrintAgent(conf PrintConfig, out io.Writer, logger logging.Logger) (*Callbacks, error) {
	if logger == nil {
		logger = logging.Global()
	}
	prefix := conf.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	pa := &printAgent{prefix: prefix, out: out, logger: logger}

	callbacks := NewCallbacks(logger)
	for event, handler := range map[Event]Handler{
		Start:       pa.onStart,
		Clock:       pa.onClock,
		AccPacket:   pa.onAccPacket,
		GyroPacket:  pa.onGyroPacket,
		GPSPacket:   pa.onGPSPacket,
		LidarPacket: pa.onLidarPacket,
	} {
		if err := callbacks.Register(event, handler); err != nil {
			return nil, err
		}
	}
	return callbacks, nil
}

func (pa *printAgent) println(parts ...string) {
	line := pa.prefix + " " + strings.Join(parts, "")
	if _, err := fmt.Fprintln(pa.out, line); err != nil {
		pa.logger.Warnw("cannot write agent output", "error", err)
	}
}

func (pa *printAgent) unavailable(name string, err error) {
	pa.logger.Debugw("sensor data unavailable", "packet", name, "error", err)
	pa.println(name, ": unavailable")
}

func (pa *printAgent) onStart(ctx context.Context, r robot.Snapshot) {
	pa.println("started")
}

func (pa *printAgent) onClock(ctx context.Context, r robot.Snapshot) {
	pa.println("clock")
}

func (pa *printAgent) onAccPacket(ctx context.Context, r robot.Snapshot) {
	const name = "Acc packet"
	acc, err := r.Accelerometer()
	if err != nil {
		pa.unavailable(name, err)
		return
	}
	pa.println(name, ": ", formatFloats(acc.X, acc.Y, acc.Z))
}

func (pa *printAgent) onGyroPacket(ctx context.Context, r robot.Snapshot) {
	const name = "Gyro packet"
	gyro, err := r.Gyroscope()
	if err != nil {
		pa.unavailable(name, err)
		return
	}
	pa.println(name, ": ", formatFloats(gyro.X, gyro.Y, gyro.Z))
}

func (pa *printAgent) onGPSPacket(ctx context.Context, r robot.Snapshot) {
	const name = "Gps packet"
	gps, err := r.GPS()
	if err != nil {
		pa.unavailable(name, err)
		return
	}
	pa.println(name, ": ", formatFloats(gps.Lat, gps.Lon, gps.Alt), " ", fmt.Sprint(gps.NumberOfSat))
}

func (pa *printAgent) onLidarPacket(ctx context.Context, r robot.Snapshot) {
	const name = "Lidar packet"
	scan, err := r.Lidar()
	if err != nil {
		pa.unavailable(name, err)
		return
	}
	pa.println(name, ": ", formatScan(scan))
}
