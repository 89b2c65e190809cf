package poll

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Item is an opaque unit of work produced by a Lister.
type Item int64

// Status is the readiness marker checked at the top of every iteration.
type Status string

const StatusActivated Status = "activated"

// State is the poller lifecycle state.
type State int32

const (
	StateIterating State = iota
	StateIdle
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIterating:
		return "iterating"
	case StateIdle:
		return "idle"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Lister returns the items to process in the current iteration, in order.
type Lister interface {
	ListItems(ctx context.Context) ([]Item, error)
}

// Processor handles a single item and returns a message describing the result.
type Processor interface {
	Process(ctx context.Context, item Item) (string, error)
}

type ListerFunc func(ctx context.Context) ([]Item, error)

func (f ListerFunc) ListItems(ctx context.Context) ([]Item, error) {
	return f(ctx)
}

type ProcessorFunc func(ctx context.Context, item Item) (string, error)

func (f ProcessorFunc) Process(ctx context.Context, item Item) (string, error) {
	return f(ctx, item)
}

// Logger is the logging capability the poller writes to.
// *logger.CanonicalLogger satisfies it.
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
}

// SleepFunc suspends for d. It returns a non-nil error only when the wait
// was aborted by ctx.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Poller runs the polling loop
type Poller interface {
	// Run iterates until the stop signal is observed (returns nil), ctx is
	// cancelled during the wait (returns ctx.Err()), or the lister or
	// processor fails (returns that error).
	Run(ctx context.Context) error
	// Stop raises the stop signal. The iteration in progress, if any, runs
	// to completion and no further iteration starts.
	Stop() error
	// SetStatus replaces the readiness marker used from the next iteration on
	SetStatus(status Status)
	// SetFlag replaces the activation flag used from the next iteration on
	SetFlag(flag bool)
	// State reports where the loop currently is
	State() State
}
