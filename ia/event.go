package ia

import (
	"github.com/pkg/errors"

	"go.viam.com/naio/sensor"
)

// Event is something the host notifies the agent about. Each event has exactly one handler.
type Event int

// The events an agent must handle, in dispatch priority order after Start.
const (
	Start Event = iota
	Clock
	AccPacket
	GyroPacket
	GPSPacket
	LidarPacket
)

// The fixed callback names the host looks handlers up by.
var eventNames = [...]string{
	Start:       "main",
	Clock:       "onClock",
	AccPacket:   "onAccPacket",
	GyroPacket:  "onGyroPacket",
	GPSPacket:   "onGpsPacket",
	LidarPacket: "onLidarPacket",
}

func (e Event) String() string {
	if !e.Valid() {
		return "unknown"
	}
	return eventNames[e]
}

// Valid returns whether e is a known event.
func (e Event) Valid() bool {
	return e >= Start && e <= LidarPacket
}

// AllEvents returns every event in dispatch priority order.
func AllEvents() []Event {
	return []Event{Start, Clock, AccPacket, GyroPacket, GPSPacket, LidarPacket}
}

// EventFromString returns the event registered under a callback name such as "onGpsPacket".
func EventFromString(name string) (Event, error) {
	for e, eventName := range eventNames {
		if eventName == name {
			return Event(e), nil
		}
	}
	return 0, errors.Errorf("unknown callback %q", name)
}

// EventForKind returns the packet event raised when a sample of the given kind arrives.
func EventForKind(kind sensor.Kind) (Event, error) {
	switch kind {
	case sensor.Accelerometer:
		return AccPacket, nil
	case sensor.Gyroscope:
		return GyroPacket, nil
	case sensor.GPS:
		return GPSPacket, nil
	case sensor.Lidar:
		return LidarPacket, nil
	default:
		return 0, errors.Errorf("no packet event for sensor kind %v", kind)
	}
}
