package ia

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/naio/logging"
	"go.viam.com/naio/robot"
	"go.viam.com/naio/sensor"
)

func newTestPrintAgent(t *testing.T) (*Callbacks, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	callbacks, err := NewPrintAgent(PrintConfig{}, out, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, callbacks.Validate(), test.ShouldBeNil)
	return callbacks, out
}

func lines(out *bytes.Buffer) []string {
	trimmed := strings.TrimSuffix(out.String(), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func populatedState() *robot.State {
	state := robot.NewState()
	state.SetAccelerometer(sensor.AccelerometerSample{X: 1.0, Y: 2.0, Z: 3.0})
	state.SetGyroscope(sensor.GyroscopeSample{X: 0.1, Y: -0.2, Z: 0.3})
	state.SetGPS(sensor.GPSSample{Lat: 48.8, Lon: 2.3, Alt: 35, NumberOfSat: 7})
	state.SetLidar(sensor.LidarScan{0, 12, 40})
	return state
}

func TestPrintAgentLines(t *testing.T) {
	ctx := context.Background()
	state := populatedState()

	for _, tc := range []struct {
		event    Event
		expected string
	}{
		{Start, "[IA] started"},
		{Clock, "[IA] clock"},
		{AccPacket, "[IA] Acc packet: 1.0 2.0 3.0"},
		{GyroPacket, "[IA] Gyro packet: 0.1 -0.2 0.3"},
		{GPSPacket, "[IA] Gps packet: 48.8 2.3 35.0 7"},
		{LidarPacket, "[IA] Lidar packet: [0, 12, 40]"},
	} {
		t.Run(tc.event.String(), func(t *testing.T) {
			callbacks, out := newTestPrintAgent(t)
			test.That(t, callbacks.Invoke(ctx, tc.event, state), test.ShouldBeTrue)
			test.That(t, lines(out), test.ShouldResemble, []string{tc.expected})
		})
	}
}

// countingSnapshot records whether any sensor was read.
type countingSnapshot struct {
	robot.Snapshot
	reads int
}

func (cs *countingSnapshot) Accelerometer() (sensor.AccelerometerSample, error) {
	cs.reads++
	return cs.Snapshot.Accelerometer()
}

func (cs *countingSnapshot) Gyroscope() (sensor.GyroscopeSample, error) {
	cs.reads++
	return cs.Snapshot.Gyroscope()
}

func (cs *countingSnapshot) GPS() (sensor.GPSSample, error) {
	cs.reads++
	return cs.Snapshot.GPS()
}

func (cs *countingSnapshot) Lidar() (sensor.LidarScan, error) {
	cs.reads++
	return cs.Snapshot.Lidar()
}

func TestPrintAgentStartReadsNothing(t *testing.T) {
	callbacks, out := newTestPrintAgent(t)
	snapshot := &countingSnapshot{Snapshot: populatedState()}

	test.That(t, callbacks.Invoke(context.Background(), Start, snapshot), test.ShouldBeTrue)
	test.That(t, lines(out), test.ShouldResemble, []string{"[IA] started"})
	test.That(t, snapshot.reads, test.ShouldEqual, 0)
}

func TestPrintAgentUnpopulated(t *testing.T) {
	callbacks, out := newTestPrintAgent(t)
	state := robot.NewState()

	for _, event := range AllEvents() {
		test.That(t, callbacks.Invoke(context.Background(), event, state), test.ShouldBeTrue)
	}
	test.That(t, lines(out), test.ShouldResemble, []string{
		"[IA] started",
		"[IA] clock",
		"[IA] Acc packet: unavailable",
		"[IA] Gyro packet: unavailable",
		"[IA] Gps packet: unavailable",
		"[IA] Lidar packet: unavailable",
	})
}

func TestPrintAgentIdempotent(t *testing.T) {
	callbacks, out := newTestPrintAgent(t)
	state := populatedState()

	for i := 0; i < 3; i++ {
		for _, event := range AllEvents() {
			callbacks.Invoke(context.Background(), event, state)
		}
	}
	all := lines(out)
	test.That(t, all, test.ShouldHaveLength, 18)
	test.That(t, all[6:12], test.ShouldResemble, all[:6])
	test.That(t, all[12:], test.ShouldResemble, all[:6])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("stdout closed")
}

func TestPrintAgentWriteFailure(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	callbacks, err := NewPrintAgent(PrintConfig{}, failingWriter{}, logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, callbacks.Invoke(context.Background(), Clock, robot.NewState()), test.ShouldBeTrue)
	test.That(t, logs.FilterMessage("cannot write agent output").Len(), test.ShouldEqual, 1)
}

func TestPrintAgentFromRegistry(t *testing.T) {
	out := &bytes.Buffer{}
	logger := logging.NewTestLogger(t)

	callbacks, err := NewAgent(context.Background(), PrintModel, Attributes{"prefix": "[bot]"}, out, logger)
	test.That(t, err, test.ShouldBeNil)
	callbacks.Invoke(context.Background(), Start, nil)
	test.That(t, lines(out), test.ShouldResemble, []string{"[bot] started"})

	_, err = NewAgent(context.Background(), PrintModel, Attributes{"volume": 11}, out, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "volume")
}
