package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hance08/qwallet/internal/metrics"
	"github.com/hance08/qwallet/internal/model"
	"go.uber.org/zap"
)

// CategoryState is the last applied result for one category. A failed refresh
// keeps the previous transactions and records Err.
type CategoryState struct {
	Transactions model.TransactionSet
	Err          error
	Loaded       bool
	Generation   uint64
	UpdatedAt    time.Time
}

type CategoryObserver func(category model.Category, state CategoryState)

// Aggregator keeps the merged history of every category for one address.
// Each refresh is tagged with a generation; a category only applies a result
// whose generation is at least the one it last applied, so a slow earlier
// refresh never overwrites a newer one.
type Aggregator struct {
	merger  CategoryMerger
	logger  *zap.Logger
	metrics *metrics.Collector
	now     func() time.Time

	mu         sync.Mutex
	address    string
	generation uint64
	floor      uint64
	applied    map[model.Category]uint64
	states     map[model.Category]CategoryState
	pending    int
	closed     bool
	observers  []CategoryObserver

	lifetime context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
}

func NewAggregator(merger CategoryMerger, logger *zap.Logger, m *metrics.Collector) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Aggregator{
		merger:   merger,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
		applied:  make(map[model.Category]uint64),
		states:   make(map[model.Category]CategoryState),
		lifetime: ctx,
		cancel:   cancel,
	}
}

// SetAddress switches the aggregated address and starts a full refresh.
// In-flight results for the previous address are discarded when they land.
func (a *Aggregator) SetAddress(address string) <-chan struct{} {
	a.mu.Lock()
	if a.closed || address == a.address {
		a.mu.Unlock()
		return closedChan()
	}
	a.address = address
	a.floor = a.generation
	a.applied = make(map[model.Category]uint64)
	a.states = make(map[model.Category]CategoryState)
	a.mu.Unlock()

	return a.Refresh(context.Background())
}

func (a *Aggregator) Address() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.address
}

// Refresh merges all categories concurrently. The returned channel is closed
// once every category has finished and its result has been applied or
// discarded. Without an address it does nothing.
func (a *Aggregator) Refresh(ctx context.Context) <-chan struct{} {
	a.mu.Lock()
	if a.closed || a.address == "" {
		a.mu.Unlock()
		return closedChan()
	}
	a.generation++
	gen := a.generation
	address := a.address
	a.pending += len(model.Categories)
	a.inflight.Add(len(model.Categories))
	a.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(a.lifetime, cancel)

	a.logger.Debug("refreshing history",
		zap.String("address", address),
		zap.Uint64("generation", gen))

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(len(model.Categories))
	for _, category := range model.Categories {
		go func() {
			defer a.inflight.Done()
			defer wg.Done()
			set, err := a.merger.Merge(ctx, category, address)
			a.apply(gen, category, set, err)
		}()
	}
	go func() {
		wg.Wait()
		stop()
		cancel()
		close(done)
	}()

	return done
}

// RequestRefresh starts a refresh detached from any caller context.
func (a *Aggregator) RequestRefresh() <-chan struct{} {
	return a.Refresh(context.Background())
}

func (a *Aggregator) apply(gen uint64, category model.Category, set model.TransactionSet, err error) {
	a.mu.Lock()
	a.pending--
	if a.closed || gen <= a.floor || gen < a.applied[category] {
		a.mu.Unlock()
		a.metrics.ObserveMerge(string(category), "stale")
		a.logger.Debug("discarding stale history result",
			zap.String("category", string(category)),
			zap.Uint64("generation", gen))
		return
	}

	a.applied[category] = gen
	state := a.states[category]
	state.Generation = gen
	state.UpdatedAt = a.now()
	if err != nil {
		state.Err = err
	} else {
		state.Transactions = set
		state.Err = nil
		state.Loaded = true
	}
	a.states[category] = state
	observers := slices.Clone(a.observers)
	a.mu.Unlock()

	if err != nil {
		a.metrics.ObserveMerge(string(category), "error")
		a.logger.Warn("history refresh failed",
			zap.String("category", string(category)),
			zap.Error(err))
	} else {
		a.metrics.ObserveMerge(string(category), "ok")
	}

	for _, fn := range observers {
		fn(category, state)
	}
}

// Refreshing reports whether any category merge is still outstanding.
func (a *Aggregator) Refreshing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending > 0
}

func (a *Aggregator) State(category model.Category) CategoryState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.states[category]
}

func (a *Aggregator) Snapshot() map[model.Category]CategoryState {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[model.Category]CategoryState, len(a.states))
	for c, s := range a.states {
		out[c] = s
	}
	return out
}

// Subscribe registers fn to be called after each applied category result.
func (a *Aggregator) Subscribe(fn CategoryObserver) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, fn)
}

// Close cancels outstanding merges, waits for them and drops all state.
func (a *Aggregator) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()

	a.cancel()
	a.inflight.Wait()

	a.mu.Lock()
	a.address = ""
	a.states = make(map[model.Category]CategoryState)
	a.applied = make(map[model.Category]uint64)
	a.observers = nil
	a.mu.Unlock()
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
