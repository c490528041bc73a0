// Package config defines the structures to configure the agent host: which agent to run, how
// often events fire and how the simulated sensors behave.
package config

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"go.viam.com/naio/ia"
	"go.viam.com/naio/logging"
	"go.viam.com/naio/sensor"
)

// Defaults used for every unset field.
const (
	DefaultClockPeriod  = time.Second
	DefaultPacketPeriod = 2 * time.Second
	DefaultRunDuration  = 10 * time.Second
)

// Config describes a host run.
type Config struct {
	ConfigFilePath string `json:"-"`

	Agent Agent `json:"agent"`

	// ClockPeriod is the time between two clock events.
	ClockPeriod Duration `json:"clock_period,omitempty"`
	// PacketPeriod is the time between two simulated sensor packets.
	PacketPeriod Duration `json:"packet_period,omitempty"`
	// RunDuration bounds a run. A negative duration runs until interrupted.
	RunDuration Duration `json:"run_duration,omitempty"`

	Sensors Sensors `json:"sensors"`

	LogConfig []logging.LoggerPatternConfig `json:"log,omitempty"`
	// LogFile, when set, also writes host logs to a size rotated file.
	LogFile string `json:"log_file,omitempty"`
	Debug   bool   `json:"debug,omitempty"`
}

// Agent selects the agent model and its attributes.
type Agent struct {
	Model      string        `json:"model"`
	Attributes ia.Attributes `json:"attributes,omitempty"`
}

// Sensors configures the simulated packet source.
type Sensors struct {
	Seed      uint64           `json:"seed,omitempty"`
	LidarSize int              `json:"lidar_size,omitempty"`
	Origin    sensor.GPSSample `json:"origin"`
}

// Duration is a time.Duration that reads and writes as a string such as "1.5s".
type Duration time.Duration

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON reads a duration string.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.Wrap(err, "durations are strings such as \"1s\"")
	}
	parsed, err := time.ParseDuration(str)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// ApplyDefaults fills in every unset field.
func (c *Config) ApplyDefaults() {
	if c.Agent.Model == "" {
		c.Agent.Model = ia.PrintModel
	}
	if c.ClockPeriod == 0 {
		c.ClockPeriod = Duration(DefaultClockPeriod)
	}
	if c.PacketPeriod == 0 {
		c.PacketPeriod = Duration(DefaultPacketPeriod)
	}
	if c.RunDuration == 0 {
		c.RunDuration = Duration(DefaultRunDuration)
	}
	if c.Sensors.LidarSize == 0 {
		c.Sensors.LidarSize = sensor.DefaultLidarSize
	}
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate() error {
	if c.ClockPeriod < 0 {
		return goutils.NewConfigValidationError("clock_period", errors.New("must not be negative"))
	}
	if c.PacketPeriod < 0 {
		return goutils.NewConfigValidationError("packet_period", errors.New("must not be negative"))
	}
	if c.Sensors.LidarSize < 0 {
		return goutils.NewConfigValidationError("sensors.lidar_size", errors.New("must not be negative"))
	}
	if lat := c.Sensors.Origin.Lat; lat < -90 || lat > 90 {
		return goutils.NewConfigValidationError("sensors.origin.lat", errors.Errorf("%v out of range", lat))
	}
	if lon := c.Sensors.Origin.Lon; lon < -180 || lon > 180 {
		return goutils.NewConfigValidationError("sensors.origin.lon", errors.Errorf("%v out of range", lon))
	}
	if c.Agent.Model != "" {
		if _, ok := ia.LookupAgent(c.Agent.Model); !ok {
			return goutils.NewConfigValidationError("agent.model",
				errors.Errorf("unknown model %q, registered models: %v", c.Agent.Model, ia.RegisteredAgents()))
		}
	}
	for i, lpc := range c.LogConfig {
		if !logging.ValidatePattern(lpc.Pattern) {
			return goutils.NewConfigValidationError("log", errors.Errorf("invalid pattern %q at index %d", lpc.Pattern, i))
		}
		if _, err := logging.LevelFromString(lpc.Level); err != nil {
			return goutils.NewConfigValidationError("log", err)
		}
	}
	return nil
}
