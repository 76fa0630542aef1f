package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hance08/qwallet/internal/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultSettleDelay is how long to wait after a submission before refreshing
// balance and history, giving the node time to index the new transaction.
const DefaultSettleDelay = 3 * time.Second

type SendState int

const (
	SendComposing SendState = iota
	SendValidating
	SendReadyToSend
	SendBlocked
	SendSubmitting
	SendSucceeded
	SendFailed
)

func (s SendState) String() string {
	switch s {
	case SendValidating:
		return "validating"
	case SendReadyToSend:
		return "ready"
	case SendBlocked:
		return "blocked"
	case SendSubmitting:
		return "submitting"
	case SendSucceeded:
		return "succeeded"
	case SendFailed:
		return "failed"
	default:
		return "composing"
	}
}

// Signer asks the signing agent to build, sign and broadcast a payment.
type Signer interface {
	SendCoin(ctx context.Context, coin, recipient string, amount decimal.Decimal) (json.RawMessage, error)
}

type RecipientResolver interface {
	AddressExists(ctx context.Context, value string) (bool, error)
	NameExists(ctx context.Context, value string) (bool, error)
}

// Refresher starts a refresh and returns a channel closed once its result
// has been applied or discarded.
type Refresher interface {
	RequestRefresh() <-chan struct{}
}

type Notifier interface {
	NotifySuccess(receipt SendReceipt)
	NotifyError(err error)
}

type SendReceipt struct {
	Coin      string
	Recipient string
	Amount    decimal.Decimal
	Fee       decimal.Decimal
	Result    json.RawMessage
}

type SendConfig struct {
	Coin            string
	Fee             decimal.Decimal
	SettleDelay     time.Duration
	VerifyRecipient bool
}

// SendWorkflow drives one outgoing payment from composition to submission.
// At most one submission is in flight, and each submission is followed by
// exactly one balance refresh and one history refresh once the settle delay
// has passed.
type SendWorkflow struct {
	cfg        SendConfig
	signer     Signer
	resolver   RecipientResolver
	refreshers []Refresher
	notifier   Notifier
	logger     *zap.Logger
	metrics    *metrics.Collector

	mu       sync.Mutex
	state    SendState
	draft    SendDraft
	reason   error
	settled  chan struct{}
	closed   bool
	stop     chan struct{}
	settling sync.WaitGroup
}

type SendOption func(*SendWorkflow)

func WithRecipientResolver(r RecipientResolver) SendOption {
	return func(w *SendWorkflow) { w.resolver = r }
}

func WithNotifier(n Notifier) SendOption {
	return func(w *SendWorkflow) { w.notifier = n }
}

func WithSendLogger(l *zap.Logger) SendOption {
	return func(w *SendWorkflow) { w.logger = l }
}

func WithSendMetrics(m *metrics.Collector) SendOption {
	return func(w *SendWorkflow) { w.metrics = m }
}

// NewSendWorkflow wires a workflow whose submissions refresh each of
// refreshers after cfg.SettleDelay.
func NewSendWorkflow(cfg SendConfig, signer Signer, refreshers []Refresher, opts ...SendOption) *SendWorkflow {
	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = 0
	}
	w := &SendWorkflow{
		cfg:        cfg,
		signer:     signer,
		refreshers: refreshers,
		logger:     zap.NewNop(),
		stop:       make(chan struct{}),
		settled:    closedChan(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *SendWorkflow) Fee() decimal.Decimal {
	return w.cfg.Fee
}

// Open starts a fresh draft.
func (w *SendWorkflow) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(); err != nil {
		return err
	}
	w.draft = SendDraft{}
	w.state = SendComposing
	w.reason = nil
	return nil
}

// Close discards the draft. It fails while a submission is in flight.
func (w *SendWorkflow) Close() error {
	return w.Open()
}

func (w *SendWorkflow) SetAmount(amount decimal.Decimal) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(); err != nil {
		return err
	}
	w.draft.Amount = amount
	w.revalidate()
	return nil
}

func (w *SendWorkflow) SetRecipient(recipient string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(); err != nil {
		return err
	}
	w.draft.Recipient = strings.TrimSpace(recipient)
	w.revalidate()
	return nil
}

// SendMax sets the amount to balance minus fee, or zero when the balance
// does not cover the fee.
func (w *SendWorkflow) SendMax(balance decimal.Decimal) (decimal.Decimal, error) {
	amount := MaxSendable(balance, w.cfg.Fee)
	if err := w.SetAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func (w *SendWorkflow) editable() error {
	if w.closed {
		return ErrSessionClosed
	}
	if w.state == SendSubmitting || w.state == SendValidating {
		return ErrSubmissionInProgress
	}
	return nil
}

func (w *SendWorkflow) revalidate() {
	w.reason = w.draft.Validate()
	if w.reason != nil {
		w.state = SendBlocked
		return
	}
	w.state = SendReadyToSend
}

func (w *SendWorkflow) State() SendState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *SendWorkflow) Draft() SendDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Reason is the validation error keeping the draft blocked, if any.
func (w *SendWorkflow) Reason() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reason
}

// Settled is closed once the post-submission refresh of the most recent
// submission has landed, or the workflow was shut down first.
func (w *SendWorkflow) Settled() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.settled
}

// Submit sends the draft through the signer exactly once. The draft is
// cleared whatever the outcome.
func (w *SendWorkflow) Submit(ctx context.Context) (SendReceipt, error) {
	w.mu.Lock()
	switch {
	case w.closed:
		w.mu.Unlock()
		return SendReceipt{}, ErrSessionClosed
	case w.state == SendSubmitting || w.state == SendValidating:
		w.mu.Unlock()
		return SendReceipt{}, ErrSubmissionInProgress
	case w.state != SendReadyToSend:
		reason := w.reason
		if reason == nil {
			reason = w.draft.Validate()
		}
		w.mu.Unlock()
		if reason == nil {
			reason = ErrValidationBlocked
		}
		return SendReceipt{}, reason
	}
	draft := w.draft

	if w.cfg.VerifyRecipient && w.resolver != nil {
		w.state = SendValidating
		w.mu.Unlock()

		known, err := w.recipientKnown(ctx, draft.Recipient)

		w.mu.Lock()
		if w.closed {
			w.mu.Unlock()
			return SendReceipt{}, ErrSessionClosed
		}
		if err != nil || !known {
			if err != nil {
				w.reason = fmt.Errorf("%w: %w", ErrRecipientUnknown, err)
			} else {
				w.reason = fmt.Errorf("%w: '%s'", ErrRecipientUnknown, draft.Recipient)
			}
			w.state = SendBlocked
			reason := w.reason
			w.mu.Unlock()
			return SendReceipt{}, reason
		}
	}
	w.state = SendSubmitting
	w.mu.Unlock()

	w.logger.Info("submitting payment",
		zap.String("coin", w.cfg.Coin),
		zap.String("recipient", draft.Recipient),
		zap.String("amount", draft.Amount.String()))

	result, err := w.signer.SendCoin(ctx, w.cfg.Coin, draft.Recipient, draft.Amount)
	w.metrics.ObserveSubmission(err)

	receipt := SendReceipt{
		Coin:      w.cfg.Coin,
		Recipient: draft.Recipient,
		Amount:    draft.Amount,
		Fee:       w.cfg.Fee,
		Result:    result,
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	settled := make(chan struct{})
	w.mu.Lock()
	w.draft = SendDraft{}
	w.reason = nil
	if err != nil {
		w.state = SendFailed
	} else {
		w.state = SendSucceeded
	}
	w.settled = settled
	if w.closed {
		close(settled)
	} else {
		w.settling.Add(1)
		go w.settle(settled)
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("payment failed", zap.Error(err))
		if w.notifier != nil {
			w.notifier.NotifyError(err)
		}
		return receipt, err
	}
	if w.notifier != nil {
		w.notifier.NotifySuccess(receipt)
	}
	return receipt, nil
}

func (w *SendWorkflow) recipientKnown(ctx context.Context, recipient string) (bool, error) {
	ok, err := w.resolver.AddressExists(ctx, recipient)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}
	return w.resolver.NameExists(ctx, recipient)
}

func (w *SendWorkflow) settle(settled chan struct{}) {
	defer w.settling.Done()
	defer close(settled)

	timer := time.NewTimer(w.cfg.SettleDelay)
	defer timer.Stop()

	select {
	case <-w.stop:
		return
	case <-timer.C:
	}

	done := make([]<-chan struct{}, 0, len(w.refreshers))
	for _, r := range w.refreshers {
		done = append(done, r.RequestRefresh())
	}
	for _, ch := range done {
		select {
		case <-w.stop:
			return
		case <-ch:
		}
	}

	w.mu.Lock()
	if w.state == SendSucceeded || w.state == SendFailed {
		w.state = SendComposing
	}
	w.mu.Unlock()
}

// Shutdown abandons any pending settle wait and rejects further use.
func (w *SendWorkflow) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.stop)
	w.mu.Unlock()

	w.settling.Wait()
}
