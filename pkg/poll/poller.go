package poll

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Alwanly/item-poller/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// poller implements the Poller interface
type poller struct {
	logger    Logger
	lister    Lister
	processor Processor
	interval  time.Duration
	sleep     SleepFunc
	runID     string

	mu     sync.Mutex
	status Status
	flag   bool

	state    atomic.Int32
	stopCh   chan struct{}
	stopOnce sync.Once
}

// Option customizes a poller at construction
type Option func(*poller)

// WithSleepFunc replaces the interval wait. The stop signal is still checked
// at the top of every iteration.
func WithSleepFunc(fn SleepFunc) Option {
	return func(p *poller) {
		if fn != nil {
			p.sleep = fn
		}
	}
}

// WithRunID pins the run id attached to log lines instead of generating one per Run.
func WithRunID(id string) Option {
	return func(p *poller) {
		p.runID = id
	}
}

// WithStatus overrides the initial status normally taken from CheckStatus.
func WithStatus(status Status) Option {
	return func(p *poller) {
		p.status = status
	}
}

// NewPoller creates a new Poller instance. A nil lister or processor falls
// back to StaticLister and DummyProcessor.
func NewPoller(cfg Config, lister Lister, processor Processor, log Logger, opts ...Option) Poller {
	if lister == nil {
		lister = StaticLister{}
	}
	if processor == nil {
		processor = DummyProcessor{}
	}
	if log == nil {
		log = logger.New(nil)
	}

	p := &poller{
		logger:    log,
		lister:    lister,
		processor: processor,
		interval:  cfg.Interval,
		status:    CheckStatus(),
		flag:      cfg.Flag,
		stopCh:    make(chan struct{}),
	}
	p.sleep = p.wait
	for _, opt := range opts {
		opt(p)
	}
	p.state.Store(int32(StateIterating))
	return p
}

// Run performs the polling loop
func (p *poller) Run(ctx context.Context) error {
	runID := p.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = logger.WithRunID(ctx, runID)

	status, flag := p.snapshot()
	p.logger.Debug("started polling",
		zap.String(logger.FieldRunID, runID),
		zap.Duration(logger.FieldInterval, p.interval),
		zap.String(logger.FieldStatus, string(status)),
		zap.Bool(logger.FieldFlag, flag),
	)

	for iteration := uint64(1); ; iteration++ {
		if p.stopped() {
			p.state.Store(int32(StateStopped))
			p.logger.Debug("stopping poller", zap.String(logger.FieldRunID, runID))
			return nil
		}

		p.state.Store(int32(StateIterating))
		base := []zap.Field{
			zap.String(logger.FieldRunID, runID),
			zap.Uint64(logger.FieldIteration, iteration),
		}
		if err := p.iterate(ctx, base); err != nil {
			return err
		}

		p.state.Store(int32(StateIdle))
		if err := p.sleep(ctx, p.interval); err != nil {
			return err
		}
	}
}

// iterate runs one pass of the loop body. Everything it does completes
// before the caller suspends.
func (p *poller) iterate(ctx context.Context, base []zap.Field) error {
	status, flag := p.snapshot()
	if status != StatusActivated || !flag {
		return nil
	}

	items, err := p.lister.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListItems, err)
	}

	if len(items) == 0 {
		p.logger.Info(" no items in list. ", base...)
		return nil
	}

	p.logger.Info(" item list "+joinItems(items), withFields(base, zap.Int(logger.FieldItemCount, len(items)))...)
	for _, item := range items {
		msg, err := p.processor.Process(ctx, item)
		if err != nil {
			return &ProcessError{Item: item, Err: err}
		}
		p.logger.Info(
			fmt.Sprintf("calling dummy_func(%d) return message: %s", item, msg),
			withFields(base, zap.Int64(logger.FieldItem, int64(item)))...,
		)
	}
	return nil
}

// wait is the default SleepFunc. The stop signal ends the wait early without error.
func (p *poller) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopCh:
		return nil
	case <-timer.C:
		return nil
	}
}

// Stop gracefully stops the poller
func (p *poller) Stop() error {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})
	return nil
}

func (p *poller) stopped() bool {
	select {
	case <-p.stopCh:
		return true
	default:
		return false
	}
}

func (p *poller) SetStatus(status Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
}

func (p *poller) SetFlag(flag bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flag = flag
}

func (p *poller) snapshot() (Status, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status, p.flag
}

func (p *poller) State() State {
	return State(p.state.Load())
}

func joinItems(items []Item) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = strconv.FormatInt(int64(item), 10)
	}
	return strings.Join(parts, ",")
}

func withFields(base []zap.Field, extra ...zap.Field) []zap.Field {
	out := make([]zap.Field, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
