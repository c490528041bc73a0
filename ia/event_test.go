package ia

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/naio/sensor"
)

func TestEventNames(t *testing.T) {
	names := make([]string, 0, len(AllEvents()))
	for _, event := range AllEvents() {
		test.That(t, event.Valid(), test.ShouldBeTrue)
		names = append(names, event.String())

		parsed, err := EventFromString(event.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, event)
	}
	test.That(t, names, test.ShouldResemble,
		[]string{"main", "onClock", "onAccPacket", "onGyroPacket", "onGpsPacket", "onLidarPacket"})

	test.That(t, Event(-1).Valid(), test.ShouldBeFalse)
	test.That(t, Event(6).String(), test.ShouldEqual, "unknown")
	_, err := EventFromString("onSonarPacket")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestEventForKind(t *testing.T) {
	expected := map[sensor.Kind]Event{
		sensor.Accelerometer: AccPacket,
		sensor.Gyroscope:     GyroPacket,
		sensor.GPS:           GPSPacket,
		sensor.Lidar:         LidarPacket,
	}
	for kind, event := range expected {
		got, err := EventForKind(kind)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, got, test.ShouldEqual, event)
	}
	_, err := EventForKind(sensor.Kind(9))
	test.That(t, err, test.ShouldNotBeNil)
}
