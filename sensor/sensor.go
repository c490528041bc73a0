// Package sensor defines the typed samples a robot reports: accelerometer, gyroscope, GPS and
// lidar packets.
package sensor

import (
	"github.com/pkg/errors"
)

// Kind specifies the kind of sensor a packet came from.
type Kind int

// The known sensor kinds.
const (
	Accelerometer Kind = iota
	Gyroscope
	GPS
	Lidar
)

var kindNames = map[Kind]string{
	Accelerometer: "accelerometer",
	Gyroscope:     "gyroscope",
	GPS:           "gps",
	Lidar:         "lidar",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid returns whether k is one of the known sensor kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// AllKinds returns every known sensor kind in packet priority order.
func AllKinds() []Kind {
	return []Kind{Accelerometer, Gyroscope, GPS, Lidar}
}

// KindFromString parses a sensor kind from its name.
func KindFromString(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, errors.Errorf("unknown sensor kind %q", name)
}
