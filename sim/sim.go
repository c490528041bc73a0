// Package sim generates plausible sensor packets for running the host without hardware.
package sim

import (
	"math/rand/v2"
	"sync"

	"github.com/golang/geo/r3"
	geo "github.com/kellydunn/golang-geo"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"go.viam.com/naio/sensor"
)

// A Source produces sensor samples on demand.
type Source interface {
	// Next returns a new sample of the given kind: a sensor.AccelerometerSample,
	// sensor.GyroscopeSample, sensor.GPSSample or sensor.LidarScan.
	Next(kind sensor.Kind) (interface{}, error)
}

const (
	gravity = 9.80665
	// maxLidarRange is the farthest range a simulated scan reports, in millimeters.
	maxLidarRange = 8000
	// walkStepKm is the mean distance covered between two GPS fixes.
	walkStepKm = 0.002
)

// Config tunes a RandomSource.
type Config struct {
	Seed      uint64
	LidarSize int
	// Origin is where the simulated GPS walk starts.
	Origin sensor.GPSSample
}

// RandomSource is a Source of noisy samples around a robot idling on flat ground and slowly
// wandering from its origin.
type RandomSource struct {
	mu sync.Mutex

	rng       *rand.Rand
	noise     distuv.Normal
	ranges    distuv.Uniform
	bearing   distuv.Uniform
	lidarSize int

	position *geo.Point
	fix      sensor.GPSSample
}

// NewRandomSource returns a RandomSource seeded with cfg.Seed. Equal configs produce equal
// sample sequences.
func NewRandomSource(cfg Config) *RandomSource {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	lidarSize := cfg.LidarSize
	if lidarSize <= 0 {
		lidarSize = sensor.DefaultLidarSize
	}
	fix := cfg.Origin
	if fix.NumberOfSat == 0 {
		fix.NumberOfSat = 8
	}
	return &RandomSource{
		rng:       rng,
		noise:     distuv.Normal{Mu: 0, Sigma: 0.05, Src: rng},
		ranges:    distuv.Uniform{Min: 0, Max: maxLidarRange, Src: rng},
		bearing:   distuv.Uniform{Min: 0, Max: 360, Src: rng},
		lidarSize: lidarSize,
		position:  fix.Point(),
		fix:       fix,
	}
}

// RandomKind picks a sensor kind uniformly.
func (rs *RandomSource) RandomKind() sensor.Kind {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	kinds := sensor.AllKinds()
	return kinds[rs.rng.IntN(len(kinds))]
}

// Next implements Source.
func (rs *RandomSource) Next(kind sensor.Kind) (interface{}, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	switch kind {
	case sensor.Accelerometer:
		return sensor.AccelerometerFromVector(rs.noisy(r3.Vector{Z: gravity})), nil
	case sensor.Gyroscope:
		return sensor.GyroscopeFromVector(rs.noisy(r3.Vector{})), nil
	case sensor.GPS:
		return rs.nextFix(), nil
	case sensor.Lidar:
		scan := sensor.NewLidarScan(rs.lidarSize)
		for i := range scan {
			scan[i] = uint16(rs.ranges.Rand())
		}
		return scan, nil
	default:
		return nil, errors.Errorf("cannot simulate sensor kind %v", kind)
	}
}

func (rs *RandomSource) noisy(v r3.Vector) r3.Vector {
	return v.Add(r3.Vector{X: rs.noise.Rand(), Y: rs.noise.Rand(), Z: rs.noise.Rand()})
}

func (rs *RandomSource) nextFix() sensor.GPSSample {
	step := walkStepKm * (1 + rs.noise.Rand())
	rs.position = rs.position.PointAtDistanceAndBearing(step, rs.bearing.Rand())
	rs.fix.Time++
	rs.fix.Lat = rs.position.Lat()
	rs.fix.Lon = rs.position.Lng()
	rs.fix.Alt += rs.noise.Rand()
	return rs.fix
}
