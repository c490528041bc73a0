// Package host drives an agent: it owns the robot state, produces clock and sensor packet
// events and delivers them to the agent's handlers one at a time.
package host

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"go.viam.com/naio/ia"
	"go.viam.com/naio/logging"
	"go.viam.com/naio/robot"
	"go.viam.com/naio/sensor"
	"go.viam.com/naio/sim"
	"go.viam.com/naio/utils"
)

// Options configures a Runtime. Zero values pick the defaults noted on each field.
type Options struct {
	// ClockPeriod is the time between two clock events. Zero disables clock events.
	ClockPeriod time.Duration
	// PacketPeriod is the time between two packets pulled from Source. Zero, or a nil Source,
	// disables the packet worker; packets then only arrive through Deliver.
	PacketPeriod time.Duration
	Source       sim.Source
	// PickKind chooses the kind of the next packet pulled from Source. Defaults to cycling
	// through all kinds.
	PickKind func() sensor.Kind
	// Clock defaults to the wall clock.
	Clock clock.Clock
}

// Runtime delivers events to an agent. Handlers never overlap: a single dispatcher invokes
// them in order clock, accelerometer, gyroscope, GPS, lidar. Pending events of one kind
// coalesce, so a handler always sees the latest sample.
type Runtime struct {
	id        string
	state     *robot.State
	callbacks *ia.Callbacks
	opts      Options
	logger    logging.Logger

	mu      sync.Mutex
	pending map[ia.Event]bool
	started bool
	stopped bool
	workers utils.StoppableWorkers

	wake chan struct{}
}

// New returns a runtime delivering events to callbacks, which must handle every event.
func New(state *robot.State, callbacks *ia.Callbacks, opts Options, logger logging.Logger) (*Runtime, error) {
	if state == nil {
		return nil, errors.New("robot state is required")
	}
	if callbacks == nil {
		return nil, errors.New("agent callbacks are required")
	}
	if err := callbacks.Validate(); err != nil {
		return nil, err
	}
	if opts.ClockPeriod < 0 || opts.PacketPeriod < 0 {
		return nil, errors.Errorf("periods must not be negative, got clock %v packet %v", opts.ClockPeriod, opts.PacketPeriod)
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.PickKind == nil {
		opts.PickKind = cycleKinds()
	}
	return &Runtime{
		id:        uuid.NewString(),
		state:     state,
		callbacks: callbacks,
		opts:      opts,
		logger:    logger,
		pending:   map[ia.Event]bool{},
		wake:      make(chan struct{}, 1),
	}, nil
}

func cycleKinds() func() sensor.Kind {
	var mu sync.Mutex
	next := 0
	kinds := sensor.AllKinds()
	return func() sensor.Kind {
		mu.Lock()
		defer mu.Unlock()
		kind := kinds[next%len(kinds)]
		next++
		return kind
	}
}

// ID identifies this run in logs.
func (r *Runtime) ID() string {
	return r.id
}

// State returns the robot state the runtime writes packets to.
func (r *Runtime) State() *robot.State {
	return r.state
}

// Start invokes the agent's main handler, then starts the clock, packet and dispatch workers.
// Start returns once main has returned.
func (r *Runtime) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return errors.New("runtime already stopped")
	}
	if r.started {
		return errors.New("runtime already started")
	}
	r.started = true

	r.logger.CInfow(ctx, "starting agent", "run_id", r.id, "events", r.callbacks.Events())
	r.callbacks.Invoke(ctx, ia.Start, r.state.Freeze())

	// Tickers are created before any worker runs so a mock clock never misses the first tick.
	r.workers = utils.NewStoppableWorkers(r.dispatchLoop)
	if r.opts.ClockPeriod > 0 {
		ticker := r.opts.Clock.Ticker(r.opts.ClockPeriod)
		r.markLocked(ia.Clock)
		r.workers.AddWorkers(func(ctx context.Context) { r.clockLoop(ctx, ticker) })
	}
	if r.opts.PacketPeriod > 0 && r.opts.Source != nil {
		ticker := r.opts.Clock.Ticker(r.opts.PacketPeriod)
		r.workers.AddWorkers(func(ctx context.Context) { r.packetLoop(ctx, ticker) })
	}
	return nil
}

// Stop stops all workers and waits for them, including a handler that is running. It is safe
// to call more than once.
func (r *Runtime) Stop() {
	r.mu.Lock()
	if r.stopped || !r.started {
		r.stopped = true
		r.mu.Unlock()
		return
	}
	r.stopped = true
	workers := r.workers
	r.mu.Unlock()

	r.logger.Infow("stopping agent", "run_id", r.id)
	workers.Stop()
}

// Run starts the runtime, waits for `duration` or for ctx to be done, then stops. A negative
// duration waits for ctx only.
func (r *Runtime) Run(ctx context.Context, duration time.Duration) error {
	if err := r.Start(ctx); err != nil {
		return err
	}
	defer r.Stop()

	var timeout <-chan time.Time
	if duration >= 0 {
		timer := r.opts.Clock.Timer(duration)
		defer timer.Stop()
		timeout = timer.C
	}
	select {
	case <-ctx.Done():
		r.logger.Info("interrupted, stopping gracefully")
	case <-timeout:
	}
	return nil
}

// Deliver stores a packet in the robot state and schedules the matching packet event. value
// must be the sample type of kind, e.g. sensor.GPSSample for sensor.GPS.
func (r *Runtime) Deliver(kind sensor.Kind, value interface{}) error {
	switch kind {
	case sensor.Accelerometer:
		acc, ok := value.(sensor.AccelerometerSample)
		if !ok {
			return utils.NewUnexpectedTypeError(acc, value)
		}
		r.state.SetAccelerometer(acc)
	case sensor.Gyroscope:
		gyro, ok := value.(sensor.GyroscopeSample)
		if !ok {
			return utils.NewUnexpectedTypeError(gyro, value)
		}
		r.state.SetGyroscope(gyro)
	case sensor.GPS:
		gps, ok := value.(sensor.GPSSample)
		if !ok {
			return utils.NewUnexpectedTypeError(gps, value)
		}
		r.state.SetGPS(gps)
	case sensor.Lidar:
		scan, ok := value.(sensor.LidarScan)
		if !ok {
			return utils.NewUnexpectedTypeError(scan, value)
		}
		r.state.SetLidar(scan)
	default:
		return errors.Errorf("cannot deliver packet of unknown sensor kind %v", kind)
	}

	event, err := ia.EventForKind(kind)
	if err != nil {
		return err
	}
	r.mark(event)
	return nil
}

// Tick schedules a clock event now.
func (r *Runtime) Tick() {
	r.mark(ia.Clock)
}

func (r *Runtime) mark(event ia.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markLocked(event)
}

func (r *Runtime) markLocked(event ia.Event) {
	r.pending[event] = true
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// nextPending pops the highest priority pending event.
func (r *Runtime) nextPending() (ia.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, event := range dispatchOrder {
		if r.pending[event] {
			delete(r.pending, event)
			return event, true
		}
	}
	return 0, false
}

var dispatchOrder = []ia.Event{ia.Clock, ia.AccPacket, ia.GyroPacket, ia.GPSPacket, ia.LidarPacket}

func (r *Runtime) dispatchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.wake:
		}

		for {
			if ctx.Err() != nil {
				return
			}
			event, ok := r.nextPending()
			if !ok {
				break
			}
			r.logger.CDebugw(ctx, "dispatching", "event", event.String())
			r.callbacks.Invoke(ctx, event, r.state.Freeze())
		}
	}
}

func (r *Runtime) clockLoop(ctx context.Context, ticker *clock.Ticker) {
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mark(ia.Clock)
		}
	}
}

func (r *Runtime) packetLoop(ctx context.Context, ticker *clock.Ticker) {
	defer ticker.Stop()
	r.pullPacket(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.pullPacket(ctx)
		}
	}
}

func (r *Runtime) pullPacket(ctx context.Context) {
	kind := r.opts.PickKind()
	value, err := r.opts.Source.Next(kind)
	if err != nil {
		r.logger.CWarnw(ctx, "cannot read packet", "kind", kind.String(), "error", err)
		return
	}
	if err := r.Deliver(kind, value); err != nil {
		r.logger.CWarnw(ctx, "cannot deliver packet", "kind", kind.String(), "error", err)
	}
}
