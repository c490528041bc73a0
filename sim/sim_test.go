package sim

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/naio/sensor"
)

func TestNextKinds(t *testing.T) {
	source := NewRandomSource(Config{Seed: 1, LidarSize: 16})

	acc, err := source.Next(sensor.Accelerometer)
	test.That(t, err, test.ShouldBeNil)
	accSample, ok := acc.(sensor.AccelerometerSample)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, accSample.Z, test.ShouldAlmostEqual, gravity, 1)

	gyro, err := source.Next(sensor.Gyroscope)
	test.That(t, err, test.ShouldBeNil)
	gyroSample, ok := gyro.(sensor.GyroscopeSample)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, gyroSample.Vector().Norm(), test.ShouldBeLessThan, 1)

	scan, err := source.Next(sensor.Lidar)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scan, test.ShouldHaveLength, 16)
	for _, r := range scan.(sensor.LidarScan) {
		test.That(t, r, test.ShouldBeLessThanOrEqualTo, uint16(maxLidarRange))
	}

	_, err = source.Next(sensor.Kind(12))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestGPSWalk(t *testing.T) {
	origin := sensor.GPSSample{Lat: 48.8, Lon: 2.3, Alt: 35, NumberOfSat: 7}
	source := NewRandomSource(Config{Seed: 7, Origin: origin})

	previous := origin
	for i := 0; i < 10; i++ {
		next, err := source.Next(sensor.GPS)
		test.That(t, err, test.ShouldBeNil)
		fix := next.(sensor.GPSSample)
		test.That(t, fix.Time, test.ShouldEqual, previous.Time+1)
		test.That(t, fix.NumberOfSat, test.ShouldEqual, uint8(7))
		// Each step is a few meters at most.
		test.That(t, previous.Point().GreatCircleDistance(fix.Point()), test.ShouldBeLessThan, 0.05)
		previous = fix
	}
	test.That(t, origin.Point().GreatCircleDistance(previous.Point()), test.ShouldBeGreaterThan, 0)
}

func TestDeterministic(t *testing.T) {
	a := NewRandomSource(Config{Seed: 42})
	b := NewRandomSource(Config{Seed: 42})
	for i := 0; i < 20; i++ {
		kindA, kindB := a.RandomKind(), b.RandomKind()
		test.That(t, kindA, test.ShouldEqual, kindB)
		sampleA, err := a.Next(kindA)
		test.That(t, err, test.ShouldBeNil)
		sampleB, err := b.Next(kindB)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, sampleA, test.ShouldResemble, sampleB)
	}
}

func TestDefaults(t *testing.T) {
	source := NewRandomSource(Config{})
	scan, err := source.Next(sensor.Lidar)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scan, test.ShouldHaveLength, sensor.DefaultLidarSize)

	fix, err := source.Next(sensor.GPS)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fix.(sensor.GPSSample).NumberOfSat, test.ShouldEqual, uint8(8))
}
