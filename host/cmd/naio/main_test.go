package main

import (
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/naio/config"
	"go.viam.com/naio/ia"
)

func TestApplyArguments(t *testing.T) {
	cfg := config.Default()
	cfg.Agent.Attributes = ia.Attributes{"prefix": "[x]"}
	err := applyArguments(cfg, Arguments{Agent: ia.PrintModel, Duration: "-1s", Seed: "5", Debug: true})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Agent.Model, test.ShouldEqual, ia.PrintModel)
	test.That(t, cfg.Agent.Attributes, test.ShouldBeNil)
	test.That(t, time.Duration(cfg.RunDuration), test.ShouldEqual, -time.Second)
	test.That(t, cfg.Sensors.Seed, test.ShouldEqual, uint64(5))
	test.That(t, cfg.Debug, test.ShouldBeTrue)

	cfg = config.Default()
	test.That(t, applyArguments(cfg, Arguments{}), test.ShouldBeNil)
	test.That(t, time.Duration(cfg.RunDuration), test.ShouldEqual, config.DefaultRunDuration)

	test.That(t, applyArguments(config.Default(), Arguments{Duration: "soon"}), test.ShouldNotBeNil)
	test.That(t, applyArguments(config.Default(), Arguments{Agent: "telepathy"}), test.ShouldNotBeNil)
	test.That(t, applyArguments(config.Default(), Arguments{Seed: "-3"}), test.ShouldNotBeNil)
}
