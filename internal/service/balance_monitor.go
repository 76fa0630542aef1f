package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hance08/qwallet/internal/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultBalanceInterval is the period of the periodic balance poll.
const DefaultBalanceInterval = 60 * time.Second

type BalanceSource interface {
	Balance(ctx context.Context, address string) (decimal.Decimal, error)
}

type BalanceStatus int

const (
	BalanceIdle BalanceStatus = iota
	BalanceLoading
	BalanceLoaded
	BalanceFailed
)

func (s BalanceStatus) String() string {
	switch s {
	case BalanceLoading:
		return "loading"
	case BalanceLoaded:
		return "loaded"
	case BalanceFailed:
		return "failed"
	default:
		return "idle"
	}
}

// BalanceState keeps the last known balance even while a refresh is loading
// or after it failed.
type BalanceState struct {
	Address   string
	Status    BalanceStatus
	Balance   decimal.Decimal
	Err       error
	UpdatedAt time.Time
}

type BalanceObserver func(BalanceState)

// BalanceMonitor polls the balance of the current address on a fixed
// interval and on demand. Only one periodic loop runs at a time.
type BalanceMonitor struct {
	source   BalanceSource
	interval time.Duration
	logger   *zap.Logger
	metrics  *metrics.Collector
	now      func() time.Time

	mu         sync.Mutex
	state      BalanceState
	generation uint64
	applied    uint64
	floor      uint64
	observers  []BalanceObserver
	closed     bool

	loopCtx  context.Context
	cancel   context.CancelFunc
	loopDone chan struct{}
	fetches  sync.WaitGroup
}

func NewBalanceMonitor(source BalanceSource, interval time.Duration, logger *zap.Logger, m *metrics.Collector) *BalanceMonitor {
	if interval <= 0 {
		interval = DefaultBalanceInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BalanceMonitor{
		source:   source,
		interval: interval,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// SetAddress restarts polling for address with an immediate fetch. An empty
// address stops polling.
func (bm *BalanceMonitor) SetAddress(address string) <-chan struct{} {
	bm.stopLoop()

	bm.mu.Lock()
	if bm.closed {
		bm.mu.Unlock()
		return closedChan()
	}
	bm.floor = bm.generation
	bm.state = BalanceState{Address: address}
	if address == "" {
		bm.mu.Unlock()
		return closedChan()
	}

	ctx, cancel := context.WithCancel(context.Background())
	bm.loopCtx = ctx
	bm.cancel = cancel
	bm.loopDone = make(chan struct{})
	first := make(chan struct{})
	go bm.loop(ctx, address, bm.loopDone, first)
	bm.mu.Unlock()

	return first
}

func (bm *BalanceMonitor) loop(ctx context.Context, address string, done, first chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(bm.interval)
	defer ticker.Stop()

	bm.fetch(ctx, address, bm.begin(), "address")
	close(first)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bm.fetch(ctx, address, bm.begin(), "timer")
		}
	}
}

// RefreshNow fetches the balance out of band. The periodic schedule keeps its
// phase.
func (bm *BalanceMonitor) RefreshNow() <-chan struct{} {
	bm.mu.Lock()
	address := bm.state.Address
	ctx := bm.loopCtx
	if bm.closed || address == "" || ctx == nil {
		bm.mu.Unlock()
		return closedChan()
	}
	gen := bm.beginLocked()
	bm.fetches.Add(1)
	bm.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer bm.fetches.Done()
		defer close(done)
		bm.fetch(ctx, address, gen, "manual")
	}()
	return done
}

func (bm *BalanceMonitor) RequestRefresh() <-chan struct{} {
	return bm.RefreshNow()
}

// begin numbers a new fetch. The generation is taken before any address change
// can move the floor past it.
func (bm *BalanceMonitor) begin() uint64 {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.beginLocked()
}

func (bm *BalanceMonitor) beginLocked() uint64 {
	bm.generation++
	bm.state.Status = BalanceLoading
	return bm.generation
}

func (bm *BalanceMonitor) fetch(ctx context.Context, address string, gen uint64, trigger string) {
	balance, err := bm.source.Balance(ctx, address)
	bm.metrics.ObserveBalancePoll(trigger, err)

	bm.mu.Lock()
	if bm.closed || gen <= bm.floor || gen < bm.applied {
		bm.mu.Unlock()
		bm.logger.Debug("discarding stale balance", zap.Uint64("generation", gen))
		return
	}
	bm.applied = gen
	if err != nil {
		bm.state.Status = BalanceFailed
		bm.state.Err = err
	} else {
		bm.state.Status = BalanceLoaded
		bm.state.Balance = balance
		bm.state.Err = nil
	}
	bm.state.UpdatedAt = bm.now()
	state := bm.state
	observers := slices.Clone(bm.observers)
	bm.mu.Unlock()

	if err != nil {
		bm.logger.Warn("balance refresh failed",
			zap.String("trigger", trigger),
			zap.Error(err))
	}
	for _, fn := range observers {
		fn(state)
	}
}

func (bm *BalanceMonitor) State() BalanceState {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.state
}

func (bm *BalanceMonitor) Subscribe(fn BalanceObserver) {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	bm.observers = append(bm.observers, fn)
}

// Stop ends polling and waits for every outstanding fetch.
func (bm *BalanceMonitor) Stop() {
	bm.mu.Lock()
	bm.closed = true
	bm.observers = nil
	bm.mu.Unlock()

	bm.stopLoop()
	bm.fetches.Wait()
}

func (bm *BalanceMonitor) stopLoop() {
	bm.mu.Lock()
	cancel, done := bm.cancel, bm.loopDone
	bm.cancel, bm.loopDone, bm.loopCtx = nil, nil, nil
	bm.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
