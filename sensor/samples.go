package sensor

import (
	"github.com/golang/geo/r3"
	geo "github.com/kellydunn/golang-geo"
)

// AccelerometerSample holds a single accelerometer sample. Units are defined by the host.
type AccelerometerSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vector returns the sample as an r3.Vector.
func (a AccelerometerSample) Vector() r3.Vector {
	return r3.Vector{X: a.X, Y: a.Y, Z: a.Z}
}

// AccelerometerFromVector builds an accelerometer sample from a vector.
func AccelerometerFromVector(v r3.Vector) AccelerometerSample {
	return AccelerometerSample{X: v.X, Y: v.Y, Z: v.Z}
}

// GyroscopeSample holds a single gyroscope sample. Units are defined by the host.
type GyroscopeSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vector returns the sample as an r3.Vector.
func (g GyroscopeSample) Vector() r3.Vector {
	return r3.Vector{X: g.X, Y: g.Y, Z: g.Z}
}

// GyroscopeFromVector builds a gyroscope sample from a vector.
func GyroscopeFromVector(v r3.Vector) GyroscopeSample {
	return GyroscopeSample{X: v.X, Y: v.Y, Z: v.Z}
}

// GPSSample is a single GPS fix.
type GPSSample struct {
	// Time is the fix time as reported by the receiver.
	Time float64 `json:"time"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Alt  float64 `json:"alt"`
	// Unit is the receiver specific altitude unit code.
	Unit        uint8 `json:"unit"`
	NumberOfSat uint8 `json:"number_of_sat"`
}

// Point returns the latitude and longitude of the fix.
func (g GPSSample) Point() *geo.Point {
	return geo.NewPoint(g.Lat, g.Lon)
}

// DefaultLidarSize is the number of ranges in a scan when the host does not say otherwise.
const DefaultLidarSize = 271

// LidarScan is a raw lidar scan. Its layout is defined by the host; it is passed through
// untouched.
type LidarScan []uint16

// NewLidarScan returns a zeroed scan of n ranges.
func NewLidarScan(n int) LidarScan {
	return make(LidarScan, n)
}

// Clone returns a copy of the scan that does not share memory with s.
func (s LidarScan) Clone() LidarScan {
	if s == nil {
		return nil
	}
	return append(LidarScan(nil), s...)
}
