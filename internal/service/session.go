package service

import (
	"sync"

	"github.com/hance08/qwallet/internal/model"
	"go.uber.org/zap"
)

// Session owns every per-account component. Teardown stops them all and
// waits for their goroutines, so nothing outlives sign-out.
type Session struct {
	Account model.Account
	Balance *BalanceMonitor
	History *Aggregator
	Send    *SendWorkflow

	logger   *zap.Logger
	teardown sync.Once
}

// NewSession builds the components for account without starting them.
func (s *Service) NewSession(account model.Account, notifier Notifier) *Session {
	logger := s.Logger.With(zap.String("address", account.Address))

	balance := NewBalanceMonitor(s.ledger, s.Config.Monitor.Interval, logger.Named("balance"), s.Metrics)
	history := NewAggregator(NewMerger(s.ledger), logger.Named("history"), s.Metrics)

	opts := []SendOption{
		WithSendLogger(logger.Named("send")),
		WithSendMetrics(s.Metrics),
	}
	if notifier != nil {
		opts = append(opts, WithNotifier(notifier))
	}
	if s.Config.Send.VerifyRecipient {
		opts = append(opts, WithRecipientResolver(s.ledger))
	}
	send := NewSendWorkflow(SendConfig{
		Coin:            s.Config.Wallet.Coin,
		Fee:             s.Config.FeeAmount(),
		SettleDelay:     s.Config.Send.SettleDelay,
		VerifyRecipient: s.Config.Send.VerifyRecipient,
	}, s.agent, []Refresher{balance, history}, opts...)

	return &Session{
		Account: account,
		Balance: balance,
		History: history,
		Send:    send,
		logger:  logger,
	}
}

// Start begins balance polling and the first history refresh. The returned
// channel is closed once both initial loads have finished.
func (ss *Session) Start() <-chan struct{} {
	balanceReady := ss.Balance.SetAddress(ss.Account.Address)
	historyReady := ss.History.SetAddress(ss.Account.Address)

	ready := make(chan struct{})
	go func() {
		<-balanceReady
		<-historyReady
		close(ready)
	}()
	return ready
}

// RefreshAll triggers an out-of-band balance and history refresh.
func (ss *Session) RefreshAll() {
	ss.Balance.RequestRefresh()
	ss.History.RequestRefresh()
}

func (ss *Session) Teardown() {
	ss.teardown.Do(func() {
		ss.Send.Shutdown()
		ss.Balance.Stop()
		ss.History.Close()
		ss.logger.Debug("session closed")
	})
}
