package service

import (
	"context"

	"github.com/hance08/qwallet/internal/config"
	"github.com/hance08/qwallet/internal/metrics"
	"github.com/hance08/qwallet/internal/model"
	"github.com/hance08/qwallet/internal/store"
	"go.uber.org/zap"
)

// Ledger is the read side of the node.
type Ledger interface {
	TransactionSource
	BalanceSource
	RecipientResolver
	AccountNames(ctx context.Context, address string) ([]string, error)
	ChainHeight(ctx context.Context) (int64, error)
}

// Agent is the signing side: it knows the user's account and signs payments.
type Agent interface {
	Signer
	UserAccount(ctx context.Context) (model.Account, error)
	IsUsingPublicNode(ctx context.Context) (bool, error)
}

type Service struct {
	Contacts *ContactService
	Node     *NodeService
	Config   *config.Config
	Metrics  *metrics.Collector
	Logger   *zap.Logger

	ledger Ledger
	agent  Agent
}

func NewService(repo store.Repository, ledger Ledger, agent Agent, cfg *config.Config, logger *zap.Logger, m *metrics.Collector) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Contacts: NewContactService(repo),
		Node:     NewNodeService(ledger, agent),
		Config:   cfg,
		Metrics:  m,
		Logger:   logger,
		ledger:   ledger,
		agent:    agent,
	}
}
