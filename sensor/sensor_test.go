package sensor

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestKind(t *testing.T) {
	test.That(t, AllKinds(), test.ShouldResemble, []Kind{Accelerometer, Gyroscope, GPS, Lidar})
	for _, kind := range AllKinds() {
		test.That(t, kind.Valid(), test.ShouldBeTrue)
		parsed, err := KindFromString(kind.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, kind)
	}

	test.That(t, Kind(42).Valid(), test.ShouldBeFalse)
	test.That(t, Kind(42).String(), test.ShouldEqual, "unknown")
	_, err := KindFromString("sonar")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestVectors(t *testing.T) {
	acc := AccelerometerFromVector(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, acc, test.ShouldResemble, AccelerometerSample{X: 1, Y: 2, Z: 3})
	test.That(t, acc.Vector().Norm2(), test.ShouldAlmostEqual, 14)

	gyro := GyroscopeFromVector(r3.Vector{Z: -0.5})
	test.That(t, gyro.Vector(), test.ShouldResemble, r3.Vector{Z: -0.5})
}

func TestGPSPoint(t *testing.T) {
	fix := GPSSample{Lat: 48.8, Lon: 2.3, Alt: 35, NumberOfSat: 7}
	p := fix.Point()
	test.That(t, p.Lat(), test.ShouldAlmostEqual, 48.8)
	test.That(t, p.Lng(), test.ShouldAlmostEqual, 2.3)
}

func TestLidarScan(t *testing.T) {
	scan := NewLidarScan(DefaultLidarSize)
	test.That(t, scan, test.ShouldHaveLength, 271)

	scan[0] = 12
	clone := scan.Clone()
	clone[0] = 99
	test.That(t, scan[0], test.ShouldEqual, uint16(12))

	var empty LidarScan
	test.That(t, empty.Clone(), test.ShouldBeNil)
}

func TestUnavailableError(t *testing.T) {
	err := NewUnavailableError(GPS)
	test.That(t, err.Error(), test.ShouldEqual, "gps data unavailable")
	test.That(t, IsUnavailable(err), test.ShouldBeTrue)
	test.That(t, IsUnavailable(errors.Wrap(err, "reading robot")), test.ShouldBeTrue)
	test.That(t, IsUnavailable(errors.New("other")), test.ShouldBeFalse)
	test.That(t, IsUnavailable(nil), test.ShouldBeFalse)
}
