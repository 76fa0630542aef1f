package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hance08/qwallet/internal/model"
	"github.com/shopspring/decimal"
)

var errBoom = errors.New("boom")

type mergeFunc func(ctx context.Context, category model.Category, address string) (model.TransactionSet, error)

func (f mergeFunc) Merge(ctx context.Context, category model.Category, address string) (model.TransactionSet, error) {
	return f(ctx, category, address)
}

type fakeLedger struct {
	mu         sync.Mutex
	confirmed  map[model.Category][]model.Transaction
	pending    map[model.Category][]model.Transaction
	pendingErr error

	balance      decimal.Decimal
	balanceErr   error
	balanceCalls atomic.Int32

	names    []string
	namesErr error

	addresses map[string]bool
	regNames  map[string]bool
	height    int64
}

func (f *fakeLedger) SearchConfirmed(_ context.Context, c model.Category, _ string) ([]model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmed[c], nil
}

func (f *fakeLedger) SearchPending(_ context.Context, c model.Category, _ string) ([]model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pendingErr != nil {
		return nil, f.pendingErr
	}
	return f.pending[c], nil
}

func (f *fakeLedger) Balance(_ context.Context, _ string) (decimal.Decimal, error) {
	f.balanceCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balance, f.balanceErr
}

func (f *fakeLedger) AddressExists(_ context.Context, v string) (bool, error) {
	return f.addresses[v], nil
}

func (f *fakeLedger) NameExists(_ context.Context, v string) (bool, error) {
	return f.regNames[v], nil
}

func (f *fakeLedger) AccountNames(_ context.Context, _ string) ([]string, error) {
	return f.names, f.namesErr
}

func (f *fakeLedger) ChainHeight(_ context.Context) (int64, error) {
	return f.height, nil
}

type fakeAgent struct {
	account    model.Account
	accountErr error
	public     bool
	publicErr  error

	sendErr error
	sends   atomic.Int32
	block   chan struct{}
}

func (f *fakeAgent) SendCoin(ctx context.Context, _ string, _ string, _ decimal.Decimal) (json.RawMessage, error) {
	f.sends.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return json.RawMessage(`{"signature":"sig"}`), nil
}

func (f *fakeAgent) UserAccount(_ context.Context) (model.Account, error) {
	return f.account, f.accountErr
}

func (f *fakeAgent) IsUsingPublicNode(_ context.Context) (bool, error) {
	return f.public, f.publicErr
}

type countingRefresher struct {
	calls atomic.Int32
}

func (r *countingRefresher) RequestRefresh() <-chan struct{} {
	r.calls.Add(1)
	return closedChan()
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []SendReceipt
	errs      []error
}

func (n *recordingNotifier) NotifySuccess(r SendReceipt) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, r)
}

func (n *recordingNotifier) NotifyError(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errs = append(n.errs, err)
}

func (n *recordingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.successes), len(n.errs)
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting")
	}
}

func tx(sig string, ts int64) model.Transaction {
	return model.Transaction{Type: "PAYMENT", Signature: sig, Timestamp: ts}
}

func height(h int64) *int64 {
	return &h
}
