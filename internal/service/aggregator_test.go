package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hance08/qwallet/internal/metrics"
	"github.com/hance08/qwallet/internal/model"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type refreshTag struct{}

func tagged(tag string) context.Context {
	return context.WithValue(context.Background(), refreshTag{}, tag)
}

// gatedMerger blocks each refresh on the gate named by its context tag and
// answers with a single transaction signed with that tag.
func gatedMerger(gates map[string]chan struct{}) mergeFunc {
	return func(ctx context.Context, c model.Category, _ string) (model.TransactionSet, error) {
		tag, _ := ctx.Value(refreshTag{}).(string)
		if gate, ok := gates[tag]; ok {
			select {
			case <-gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return model.TransactionSet{tx(tag+"-"+string(c), 1)}, nil
	}
}

func TestAggregator_LaterRefreshWins(t *testing.T) {
	gates := map[string]chan struct{}{"A": make(chan struct{}), "B": make(chan struct{})}
	agg := NewAggregator(gatedMerger(gates), nil, nil)
	defer agg.Close()

	waitFor(t, agg.SetAddress("Qaddr"))

	doneA := agg.Refresh(tagged("A"))
	doneB := agg.Refresh(tagged("B"))
	assert.True(t, agg.Refreshing())

	close(gates["B"])
	waitFor(t, doneB)
	assert.True(t, agg.Refreshing(), "refresh A is still outstanding")

	close(gates["A"])
	waitFor(t, doneA)
	assert.False(t, agg.Refreshing())

	for _, c := range model.Categories {
		state := agg.State(c)
		require.Len(t, state.Transactions, 1, c)
		assert.Equal(t, "B-"+string(c), state.Transactions[0].Signature)
	}
}

func TestAggregator_InOrderCompletionApplied(t *testing.T) {
	gates := map[string]chan struct{}{"A": make(chan struct{}), "B": make(chan struct{})}
	agg := NewAggregator(gatedMerger(gates), nil, nil)
	defer agg.Close()

	waitFor(t, agg.SetAddress("Qaddr"))
	doneA := agg.Refresh(tagged("A"))
	doneB := agg.Refresh(tagged("B"))

	close(gates["A"])
	waitFor(t, doneA)
	assert.Equal(t, "A-Payment", agg.State(model.CategoryPayment).Transactions[0].Signature)

	close(gates["B"])
	waitFor(t, doneB)
	assert.Equal(t, "B-Payment", agg.State(model.CategoryPayment).Transactions[0].Signature)
}

func TestAggregator_FailureIsIsolated(t *testing.T) {
	var failGroup atomic.Bool
	agg := NewAggregator(mergeFunc(func(_ context.Context, c model.Category, _ string) (model.TransactionSet, error) {
		if c == model.CategoryGroup && failGroup.Load() {
			return nil, errBoom
		}
		return model.TransactionSet{tx(string(c), 1)}, nil
	}), nil, nil)
	defer agg.Close()

	waitFor(t, agg.SetAddress("Qaddr"))
	failGroup.Store(true)
	waitFor(t, agg.Refresh(context.Background()))

	group := agg.State(model.CategoryGroup)
	assert.ErrorIs(t, group.Err, errBoom)
	assert.True(t, group.Loaded)
	require.Len(t, group.Transactions, 1, "previous data is kept")

	for _, c := range model.Categories {
		if c == model.CategoryGroup {
			continue
		}
		state := agg.State(c)
		assert.NoError(t, state.Err, c)
		assert.Len(t, state.Transactions, 1, c)
	}
}

func TestAggregator_FirstLoadFailure(t *testing.T) {
	agg := NewAggregator(mergeFunc(func(context.Context, model.Category, string) (model.TransactionSet, error) {
		return nil, errBoom
	}), nil, nil)
	defer agg.Close()

	waitFor(t, agg.SetAddress("Qaddr"))

	state := agg.State(model.CategoryPayment)
	assert.False(t, state.Loaded)
	assert.Empty(t, state.Transactions)
	assert.ErrorIs(t, state.Err, errBoom)
}

func TestAggregator_AddressChangeDiscardsOldResults(t *testing.T) {
	gates := map[string]chan struct{}{"old": make(chan struct{})}
	agg := NewAggregator(mergeFunc(func(ctx context.Context, c model.Category, addr string) (model.TransactionSet, error) {
		if tag, _ := ctx.Value(refreshTag{}).(string); tag == "old" {
			<-gates["old"]
		}
		return model.TransactionSet{tx(addr, 1)}, nil
	}), nil, nil)
	defer agg.Close()

	waitFor(t, agg.SetAddress("Qfirst"))
	oldDone := agg.Refresh(tagged("old"))

	waitFor(t, agg.SetAddress("Qsecond"))
	close(gates["old"])
	waitFor(t, oldDone)

	assert.Equal(t, "Qsecond", agg.Address())
	assert.Equal(t, "Qsecond", agg.State(model.CategoryAT).Transactions[0].Signature)
}

func TestAggregator_NoAddressIsNoop(t *testing.T) {
	var calls atomic.Int32
	agg := NewAggregator(mergeFunc(func(context.Context, model.Category, string) (model.TransactionSet, error) {
		calls.Add(1)
		return nil, nil
	}), nil, nil)
	defer agg.Close()

	waitFor(t, agg.Refresh(context.Background()))
	assert.Zero(t, calls.Load())
	assert.False(t, agg.Refreshing())
	assert.Empty(t, agg.Snapshot())
}

func TestAggregator_SubscribeAndMetrics(t *testing.T) {
	m := metrics.NewCollector()
	agg := NewAggregator(mergeFunc(func(context.Context, model.Category, string) (model.TransactionSet, error) {
		return model.TransactionSet{tx("x", 1)}, nil
	}), nil, m)
	defer agg.Close()

	var mu sync.Mutex
	seen := map[model.Category]bool{}
	agg.Subscribe(func(c model.Category, s CategoryState) {
		mu.Lock()
		defer mu.Unlock()
		seen[c] = s.Loaded
	})

	waitFor(t, agg.SetAddress("Qaddr"))

	mu.Lock()
	assert.Len(t, seen, len(model.Categories))
	mu.Unlock()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Merges.WithLabelValues("Payment", "ok")))
}

func TestAggregator_CloseCancelsInFlight(t *testing.T) {
	agg := NewAggregator(mergeFunc(func(ctx context.Context, _ model.Category, _ string) (model.TransactionSet, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), nil, nil)

	done := agg.SetAddress("Qaddr")
	agg.Close()
	waitFor(t, done)

	assert.Empty(t, agg.Snapshot())
	waitFor(t, agg.Refresh(context.Background()))
	assert.False(t, agg.Refreshing())
}
