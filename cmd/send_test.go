package cmd

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hance08/qwallet/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSigner struct {
	err error
}

func (s stubSigner) SendCoin(context.Context, string, string, decimal.Decimal) (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(`{}`), nil
}

type countingRefresher struct {
	calls atomic.Int32
}

func (r *countingRefresher) RequestRefresh() <-chan struct{} {
	r.calls.Add(1)
	ch := make(chan struct{})
	close(ch)
	return ch
}

func newTestWorkflow(t *testing.T, signErr error) (*service.SendWorkflow, *countingRefresher, *countingRefresher) {
	t.Helper()
	balance, history := &countingRefresher{}, &countingRefresher{}
	wf := service.NewSendWorkflow(service.SendConfig{
		Coin:        "QORT",
		Fee:         decimal.RequireFromString("0.011"),
		SettleDelay: 20 * time.Millisecond,
	}, stubSigner{err: signErr}, []service.Refresher{balance, history})

	require.NoError(t, wf.SetAmount(decimal.NewFromInt(1)))
	require.NoError(t, wf.SetRecipient("Qrecipient"))
	return wf, balance, history
}

func TestSubmitAndSettle(t *testing.T) {
	t.Run("rejected payment still refreshes before teardown", func(t *testing.T) {
		wf, balance, history := newTestWorkflow(t, assert.AnError)

		waited := false
		settled, err := submitAndSettle(context.Background(), wf, func() { waited = true })
		wf.Shutdown()

		assert.True(t, settled)
		assert.True(t, waited)
		assert.ErrorIs(t, err, service.ErrSubmissionFailed)
		assert.Equal(t, int32(1), balance.calls.Load())
		assert.Equal(t, int32(1), history.calls.Load())
	})

	t.Run("accepted payment", func(t *testing.T) {
		wf, balance, history := newTestWorkflow(t, nil)

		settled, err := submitAndSettle(context.Background(), wf, nil)
		wf.Shutdown()

		require.NoError(t, err)
		assert.True(t, settled)
		assert.Equal(t, int32(1), balance.calls.Load())
		assert.Equal(t, int32(1), history.calls.Load())
	})

	t.Run("blocked draft never waits", func(t *testing.T) {
		wf, balance, _ := newTestWorkflow(t, nil)
		require.NoError(t, wf.SetAmount(decimal.Zero))
		t.Cleanup(wf.Shutdown)

		settled, err := submitAndSettle(context.Background(), wf, func() { t.Fatal("unexpected wait") })
		assert.False(t, settled)
		assert.ErrorIs(t, err, service.ErrValidationBlocked)
		assert.Zero(t, balance.calls.Load())
	})

	t.Run("cancelled while settling", func(t *testing.T) {
		wf, _, _ := newTestWorkflow(t, nil)
		t.Cleanup(wf.Shutdown)

		ctx, cancel := context.WithCancel(context.Background())
		settled, err := submitAndSettle(ctx, wf, cancel)
		assert.False(t, settled)
		assert.NoError(t, err)
	})
}
