// Package utils contains small concurrency and error helpers shared by the host packages.
package utils

import (
	"context"
	"sync"

	goutils "go.viam.com/utils"
)

// StoppableWorkers is a collection of goroutines that can be stopped at a later time.
type StoppableWorkers interface {
	AddWorkers(...func(context.Context))
	Stop()
	Context() context.Context
}

// stoppableWorkersImpl is the implementation of StoppableWorkers. Copying a sync.WaitGroup is a
// vet error, so callers only ever hold it through the interface.
type stoppableWorkersImpl struct {
	mu                      sync.Mutex
	cancelCtx               context.Context
	cancelFunc              func()
	activeBackgroundWorkers sync.WaitGroup
}

// NewStoppableWorkers runs the functions in separate goroutines. They can be stopped later.
func NewStoppableWorkers(funcs ...func(context.Context)) StoppableWorkers {
	return NewStoppableWorkersWithContext(context.Background(), funcs...)
}

// NewStoppableWorkersWithContext is like NewStoppableWorkers but the workers also stop when
// `ctx` is done.
func NewStoppableWorkersWithContext(ctx context.Context, funcs ...func(context.Context)) StoppableWorkers {
	cancelCtx, cancelFunc := context.WithCancel(ctx)
	workers := &stoppableWorkersImpl{cancelCtx: cancelCtx, cancelFunc: cancelFunc}
	workers.AddWorkers(funcs...)
	return workers
}

// AddWorkers starts up additional goroutines for each function passed in. If you call this after
// calling Stop(), it will return immediately without starting any new goroutines.
func (sw *stoppableWorkersImpl) AddWorkers(funcs ...func(context.Context)) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.cancelCtx.Err() != nil { // We've already stopped everything.
		return
	}

	sw.activeBackgroundWorkers.Add(len(funcs))
	for _, f := range funcs {
		f := f
		goutils.PanicCapturingGo(func() {
			defer sw.activeBackgroundWorkers.Done()
			f(sw.cancelCtx)
		})
	}
}

// Stop shuts down all the goroutines we started up.
func (sw *stoppableWorkersImpl) Stop() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.cancelFunc()
	sw.activeBackgroundWorkers.Wait()
}

// Context gets the context the workers are checking on.
func (sw *stoppableWorkersImpl) Context() context.Context {
	return sw.cancelCtx
}
