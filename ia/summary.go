package ia

import (
	"context"
	"fmt"
	"io"
	"sync"

	geo "github.com/kellydunn/golang-geo"
	"github.com/montanaflynn/stats"

	"go.viam.com/naio/logging"
	"go.viam.com/naio/robot"
)

// SummaryModel is the model name of the agent that reports derived values instead of raw
// samples: vector magnitudes, distance travelled since the first GPS fix and lidar range
// statistics.
const SummaryModel = "summary"

// summaryPlaces is the number of decimals summary values are rounded to.
const summaryPlaces = 3

func init() {
	RegisterAgent(SummaryModel, Registration{
		Constructor: func(ctx context.Context, attrs Attributes, out io.Writer, logger logging.Logger) (*Callbacks, error) {
			var conf PrintConfig
			if err := DecodeAttributes(attrs, &conf); err != nil {
				return nil, err
			}
			return NewSummaryAgent(conf, out, logger)
		},
	})
}

type summaryAgent struct {
	*printAgent

	mu       sync.Mutex
	firstFix *geo.Point
}

// NewSummaryAgent returns the handler table of an agent that writes one line per event:
//
//	[IA] started
//	[IA] clock
//	[IA] Acc magnitude: 5.0
//	[IA] Gyro magnitude: 0.5
//	[IA] Gps distance: 0.0 km, 7 satellites
//	[IA] Lidar summary: min 0.0 median 12.0 max 40.0
//
// Distances are great circle distances from the first fix the agent saw.
func NewSummaryAgent(conf PrintConfig, out io.Writer, logger logging.Logger) (*Callbacks, error) {
	if logger == nil {
		logger = logging.Global()
	}
	prefix := conf.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	sa := &summaryAgent{printAgent: &printAgent{prefix: prefix, out: out, logger: logger}}

	callbacks := NewCallbacks(logger)
	for event, handler := range map[Event]Handler{
		Start:       sa.onStart,
		Clock:       sa.onClock,
		AccPacket:   sa.onAccPacket,
		GyroPacket:  sa.onGyroPacket,
		GPSPacket:   sa.onGPSPacket,
		LidarPacket: sa.onLidarPacket,
	} {
		if err := callbacks.Register(event, handler); err != nil {
			return nil, err
		}
	}
	return callbacks, nil
}

func round(v float64) float64 {
	rounded, err := stats.Round(v, summaryPlaces)
	if err != nil {
		return v
	}
	return rounded
}

func (sa *summaryAgent) onAccPacket(ctx context.Context, r robot.Snapshot) {
	const name = "Acc magnitude"
	acc, err := r.Accelerometer()
	if err != nil {
		sa.unavailable(name, err)
		return
	}
	sa.println(name, ": ", formatFloat(round(acc.Vector().Norm())))
}

func (sa *summaryAgent) onGyroPacket(ctx context.Context, r robot.Snapshot) {
	const name = "Gyro magnitude"
	gyro, err := r.Gyroscope()
	if err != nil {
		sa.unavailable(name, err)
		return
	}
	sa.println(name, ": ", formatFloat(round(gyro.Vector().Norm())))
}

func (sa *summaryAgent) onGPSPacket(ctx context.Context, r robot.Snapshot) {
	const name = "Gps distance"
	gps, err := r.GPS()
	if err != nil {
		sa.unavailable(name, err)
		return
	}

	sa.mu.Lock()
	if sa.firstFix == nil {
		sa.firstFix = gps.Point()
	}
	km := sa.firstFix.GreatCircleDistance(gps.Point())
	sa.mu.Unlock()

	sa.println(name, ": ", formatFloat(round(km)), " km, ", fmt.Sprint(gps.NumberOfSat), " satellites")
}

func (sa *summaryAgent) onLidarPacket(ctx context.Context, r robot.Snapshot) {
	const name = "Lidar summary"
	scan, err := r.Lidar()
	if err != nil {
		sa.unavailable(name, err)
		return
	}
	if len(scan) == 0 {
		sa.println(name, ": empty")
		return
	}

	ranges := make(stats.Float64Data, len(scan))
	for i, reading := range scan {
		ranges[i] = float64(reading)
	}
	// Non-empty input never fails.
	lowest, _ := ranges.Min()
	median, _ := ranges.Median()
	highest, _ := ranges.Max()
	sa.println(name, ": min ", formatFloat(lowest), " median ", formatFloat(median), " max ", formatFloat(highest))
}
