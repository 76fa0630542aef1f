package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceMonitor_ImmediateFetchOnAddress(t *testing.T) {
	ledger := &fakeLedger{balance: decimal.RequireFromString("12.5")}
	bm := NewBalanceMonitor(ledger, time.Hour, nil, nil)
	defer bm.Stop()

	assert.Equal(t, BalanceIdle, bm.State().Status)

	waitFor(t, bm.SetAddress("Qaddr"))

	state := bm.State()
	assert.Equal(t, BalanceLoaded, state.Status)
	assert.True(t, state.Balance.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "Qaddr", state.Address)
	assert.Equal(t, int32(1), ledger.balanceCalls.Load())
}

func TestBalanceMonitor_PollsOnInterval(t *testing.T) {
	ledger := &fakeLedger{balance: decimal.NewFromInt(1)}
	bm := NewBalanceMonitor(ledger, 10*time.Millisecond, nil, nil)
	defer bm.Stop()

	bm.SetAddress("Qaddr")

	assert.Eventually(t, func() bool {
		return ledger.balanceCalls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestBalanceMonitor_RefreshNow(t *testing.T) {
	ledger := &fakeLedger{balance: decimal.NewFromInt(1)}
	bm := NewBalanceMonitor(ledger, time.Hour, nil, nil)
	defer bm.Stop()

	waitFor(t, bm.SetAddress("Qaddr"))
	waitFor(t, bm.RefreshNow())

	assert.Equal(t, int32(2), ledger.balanceCalls.Load())
}

func TestBalanceMonitor_FailureKeepsLastBalance(t *testing.T) {
	ledger := &fakeLedger{balance: decimal.NewFromInt(7)}
	bm := NewBalanceMonitor(ledger, time.Hour, nil, nil)
	defer bm.Stop()

	waitFor(t, bm.SetAddress("Qaddr"))

	ledger.mu.Lock()
	ledger.balanceErr = errBoom
	ledger.mu.Unlock()
	waitFor(t, bm.RefreshNow())

	state := bm.State()
	assert.Equal(t, BalanceFailed, state.Status)
	assert.ErrorIs(t, state.Err, errBoom)
	assert.True(t, state.Balance.Equal(decimal.NewFromInt(7)))
}

func TestBalanceMonitor_EmptyAddressStopsPolling(t *testing.T) {
	ledger := &fakeLedger{balance: decimal.NewFromInt(1)}
	bm := NewBalanceMonitor(ledger, 10*time.Millisecond, nil, nil)
	defer bm.Stop()

	waitFor(t, bm.SetAddress("Qaddr"))
	waitFor(t, bm.SetAddress(""))

	calls := ledger.balanceCalls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, ledger.balanceCalls.Load())
	assert.Equal(t, BalanceIdle, bm.State().Status)

	waitFor(t, bm.RefreshNow())
	assert.Equal(t, calls, ledger.balanceCalls.Load())
}

func TestBalanceMonitor_StopIsFinal(t *testing.T) {
	ledger := &fakeLedger{balance: decimal.NewFromInt(1)}
	bm := NewBalanceMonitor(ledger, 10*time.Millisecond, nil, nil)

	waitFor(t, bm.SetAddress("Qaddr"))
	bm.Stop()

	calls := ledger.balanceCalls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, ledger.balanceCalls.Load())

	waitFor(t, bm.SetAddress("Qother"))
	assert.Equal(t, calls, ledger.balanceCalls.Load())
}

func TestBalanceMonitor_Subscribe(t *testing.T) {
	ledger := &fakeLedger{balance: decimal.NewFromInt(3)}
	bm := NewBalanceMonitor(ledger, time.Hour, nil, nil)
	defer bm.Stop()

	got := make(chan BalanceState, 4)
	bm.Subscribe(func(s BalanceState) { got <- s })

	waitFor(t, bm.SetAddress("Qaddr"))

	select {
	case s := <-got:
		require.Equal(t, BalanceLoaded, s.Status)
		assert.True(t, s.Balance.Equal(decimal.NewFromInt(3)))
	default:
		t.Fatal("observer was not called")
	}
}

// addressSource answers per address. Calls for a gated address after the
// first block until the gate closes or ctx ends.
type addressSource struct {
	balances map[string]decimal.Decimal
	gated    string
	gate     chan struct{}
	calls    atomic.Int32
}

func (s *addressSource) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	if address == s.gated && s.calls.Add(1) > 1 {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return decimal.Zero, ctx.Err()
		}
	}
	return s.balances[address], nil
}

func TestBalanceMonitor_ManualFetchForOldAddressIsDiscarded(t *testing.T) {
	src := &addressSource{
		balances: map[string]decimal.Decimal{
			"Qold": decimal.NewFromInt(1),
			"Qnew": decimal.NewFromInt(2),
		},
		gated: "Qold",
		gate:  make(chan struct{}),
	}
	bm := NewBalanceMonitor(src, time.Hour, nil, nil)
	defer bm.Stop()

	waitFor(t, bm.SetAddress("Qold"))
	manual := bm.RefreshNow()
	require.Eventually(t, func() bool { return src.calls.Load() == 2 }, time.Second, time.Millisecond)

	waitFor(t, bm.SetAddress("Qnew"))
	waitFor(t, manual)

	state := bm.State()
	assert.Equal(t, "Qnew", state.Address)
	assert.Equal(t, BalanceLoaded, state.Status)
	assert.NoError(t, state.Err)
	assert.True(t, state.Balance.Equal(decimal.NewFromInt(2)))
}
