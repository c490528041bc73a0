package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/naio/ia"
	"go.viam.com/naio/logging"
	"go.viam.com/naio/sensor"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	test.That(t, cfg.Agent.Model, test.ShouldEqual, ia.PrintModel)
	test.That(t, time.Duration(cfg.ClockPeriod), test.ShouldEqual, time.Second)
	test.That(t, time.Duration(cfg.PacketPeriod), test.ShouldEqual, 2*time.Second)
	test.That(t, time.Duration(cfg.RunDuration), test.ShouldEqual, 10*time.Second)
	test.That(t, cfg.Sensors.LidarSize, test.ShouldEqual, sensor.DefaultLidarSize)
	test.That(t, cfg.Validate(), test.ShouldBeNil)
}

func TestFromReader(t *testing.T) {
	logger := logging.NewTestLogger(t)
	cfg, err := FromReader(context.Background(), "inline", strings.NewReader(`{
		"agent": {"model": "print", "attributes": {"prefix": "[bot]"}},
		"clock_period": "250ms",
		"run_duration": "-1s",
		"sensors": {"seed": 3, "origin": {"lat": 48.8, "lon": 2.3, "alt": 35, "number_of_sat": 7}},
		"log": [{"pattern": "naio.host.*", "level": "debug"}],
		"log_file": "/tmp/naio.log"
	}`), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, "inline")
	test.That(t, cfg.Agent.Attributes["prefix"], test.ShouldEqual, "[bot]")
	test.That(t, time.Duration(cfg.ClockPeriod), test.ShouldEqual, 250*time.Millisecond)
	test.That(t, time.Duration(cfg.PacketPeriod), test.ShouldEqual, DefaultPacketPeriod)
	test.That(t, time.Duration(cfg.RunDuration), test.ShouldEqual, -time.Second)
	test.That(t, cfg.Sensors.Seed, test.ShouldEqual, uint64(3))
	test.That(t, cfg.Sensors.Origin.NumberOfSat, test.ShouldEqual, uint8(7))
	test.That(t, cfg.LogFile, test.ShouldEqual, "/tmp/naio.log")
	test.That(t, cfg.LogConfig, test.ShouldResemble, []logging.LoggerPatternConfig{{Pattern: "naio.host.*", Level: "debug"}})
}

func TestFromReaderErrors(t *testing.T) {
	logger := logging.NewTestLogger(t)
	for _, tc := range []struct {
		name, body, errContains string
	}{
		{"bad json", `{`, "decode"},
		{"unknown field", `{"motors": 4}`, "motors"},
		{"numeric duration", `{"clock_period": 5}`, "durations are strings"},
		{"bad duration", `{"clock_period": "soon"}`, "soon"},
		{"negative period", `{"packet_period": "-2s"}`, "packet_period"},
		{"unknown agent", `{"agent": {"model": "telepathy"}}`, "telepathy"},
		{"bad latitude", `{"sensors": {"origin": {"lat": 123}}}`, "sensors.origin.lat"},
		{"bad lidar size", `{"sensors": {"lidar_size": -4}}`, "lidar_size"},
		{"bad pattern", `{"log": [{"pattern": "naio..host", "level": "info"}]}`, "naio..host"},
		{"bad level", `{"log": [{"pattern": "naio", "level": "shout"}]}`, "shout"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromReader(context.Background(), "", strings.NewReader(tc.body), logger)
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errContains)
		})
	}
}

func TestRead(t *testing.T) {
	t.Setenv("NAIO_TEST_SEED", "99")
	path := filepath.Join(t.TempDir(), "naio.json")
	err := os.WriteFile(path, []byte(`{"sensors": {"seed": ${NAIO_TEST_SEED}}}`), 0o600)
	test.That(t, err, test.ShouldBeNil)

	cfg, err := Read(context.Background(), path, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, path)
	test.That(t, cfg.Sensors.Seed, test.ShouldEqual, uint64(99))

	_, err = Read(context.Background(), filepath.Join(t.TempDir(), "missing.json"), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDurationJSON(t *testing.T) {
	out, err := json.Marshal(Duration(1500 * time.Millisecond))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `"1.5s"`)

	var d Duration
	test.That(t, json.Unmarshal(out, &d), test.ShouldBeNil)
	test.That(t, time.Duration(d), test.ShouldEqual, 1500*time.Millisecond)
}

func TestReadExampleConfig(t *testing.T) {
	t.Setenv("NAIO_SEED", "42")
	cfg, err := Read(context.Background(), filepath.Join("..", "etc", "configs", "naio.json"), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Agent.Model, test.ShouldEqual, ia.PrintModel)
	test.That(t, cfg.Sensors.Seed, test.ShouldEqual, uint64(42))
	test.That(t, cfg.Sensors.LidarSize, test.ShouldEqual, sensor.DefaultLidarSize)
}
