// Package robot holds the host owned robot state: the most recent sample of every sensor.
// Agents only ever see it through the read-only Snapshot interface.
package robot

import (
	"sync"

	"go.viam.com/naio/sensor"
)

// A Snapshot is a read-only view of the latest sensor samples. Every accessor returns a
// sensor.UnavailableError until the host delivered the first packet of that kind.
type Snapshot interface {
	Accelerometer() (sensor.AccelerometerSample, error)
	Gyroscope() (sensor.GyroscopeSample, error)
	GPS() (sensor.GPSSample, error)
	Lidar() (sensor.LidarScan, error)
}

// State is the robot state written by the host. It is safe for concurrent use; each accessor
// reads one sample atomically. Use Freeze for a consistent view across sensors.
type State struct {
	mu        sync.RWMutex
	acc       sensor.AccelerometerSample
	gyro      sensor.GyroscopeSample
	gps       sensor.GPSSample
	lidar     sensor.LidarScan
	populated map[sensor.Kind]bool
}

// NewState returns an empty state. No sensor is populated.
func NewState() *State {
	return &State{populated: map[sensor.Kind]bool{}}
}

// SetAccelerometer stores the latest accelerometer sample.
func (s *State) SetAccelerometer(acc sensor.AccelerometerSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acc = acc
	s.populated[sensor.Accelerometer] = true
}

// SetGyroscope stores the latest gyroscope sample.
func (s *State) SetGyroscope(gyro sensor.GyroscopeSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gyro = gyro
	s.populated[sensor.Gyroscope] = true
}

// SetGPS stores the latest GPS fix.
func (s *State) SetGPS(gps sensor.GPSSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gps = gps
	s.populated[sensor.GPS] = true
}

// SetLidar stores a copy of the latest lidar scan.
func (s *State) SetLidar(scan sensor.LidarScan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lidar = scan.Clone()
	s.populated[sensor.Lidar] = true
}

// Populated returns whether a packet of the given kind was delivered.
func (s *State) Populated(kind sensor.Kind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.populated[kind]
}

// Accelerometer returns the latest accelerometer sample.
func (s *State) Accelerometer() (sensor.AccelerometerSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.populated[sensor.Accelerometer] {
		return sensor.AccelerometerSample{}, sensor.NewUnavailableError(sensor.Accelerometer)
	}
	return s.acc, nil
}

// Gyroscope returns the latest gyroscope sample.
func (s *State) Gyroscope() (sensor.GyroscopeSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.populated[sensor.Gyroscope] {
		return sensor.GyroscopeSample{}, sensor.NewUnavailableError(sensor.Gyroscope)
	}
	return s.gyro, nil
}

// GPS returns the latest GPS fix.
func (s *State) GPS() (sensor.GPSSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.populated[sensor.GPS] {
		return sensor.GPSSample{}, sensor.NewUnavailableError(sensor.GPS)
	}
	return s.gps, nil
}

// Lidar returns a copy of the latest lidar scan.
func (s *State) Lidar() (sensor.LidarScan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.populated[sensor.Lidar] {
		return nil, sensor.NewUnavailableError(sensor.Lidar)
	}
	return s.lidar.Clone(), nil
}

// Freeze returns an immutable copy of every sample, taken under a single lock.
func (s *State) Freeze() *Frozen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	populated := make(map[sensor.Kind]bool, len(s.populated))
	for kind, ok := range s.populated {
		populated[kind] = ok
	}
	return &Frozen{
		acc:       s.acc,
		gyro:      s.gyro,
		gps:       s.gps,
		lidar:     s.lidar.Clone(),
		populated: populated,
	}
}

// Frozen is a Snapshot that never changes.
type Frozen struct {
	acc       sensor.AccelerometerSample
	gyro      sensor.GyroscopeSample
	gps       sensor.GPSSample
	lidar     sensor.LidarScan
	populated map[sensor.Kind]bool
}

// Accelerometer returns the frozen accelerometer sample.
func (f *Frozen) Accelerometer() (sensor.AccelerometerSample, error) {
	if !f.populated[sensor.Accelerometer] {
		return sensor.AccelerometerSample{}, sensor.NewUnavailableError(sensor.Accelerometer)
	}
	return f.acc, nil
}

// Gyroscope returns the frozen gyroscope sample.
func (f *Frozen) Gyroscope() (sensor.GyroscopeSample, error) {
	if !f.populated[sensor.Gyroscope] {
		return sensor.GyroscopeSample{}, sensor.NewUnavailableError(sensor.Gyroscope)
	}
	return f.gyro, nil
}

// GPS returns the frozen GPS fix.
func (f *Frozen) GPS() (sensor.GPSSample, error) {
	if !f.populated[sensor.GPS] {
		return sensor.GPSSample{}, sensor.NewUnavailableError(sensor.GPS)
	}
	return f.gps, nil
}

// Lidar returns a copy of the frozen lidar scan.
func (f *Frozen) Lidar() (sensor.LidarScan, error) {
	if !f.populated[sensor.Lidar] {
		return nil, sensor.NewUnavailableError(sensor.Lidar)
	}
	return f.lidar.Clone(), nil
}
