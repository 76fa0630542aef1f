package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/qwallet/internal/model"
	"go.uber.org/zap"
)

// SignIn asks the agent for the user's account and attaches its first
// registered name. A failed name lookup degrades to NoRegisteredName.
func (s *Service) SignIn(ctx context.Context) (model.Account, error) {
	account, err := s.agent.UserAccount(ctx)
	if err != nil {
		return model.Account{}, fmt.Errorf("%w: %w", ErrNoAccount, err)
	}
	if account.Address == "" {
		return model.Account{}, ErrNoAccount
	}

	account.Name = s.lookupName(ctx, account.Address)
	return account, nil
}

func (s *Service) lookupName(ctx context.Context, address string) string {
	names, err := s.ledger.AccountNames(ctx, address)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.Logger.Warn("name lookup failed", zap.String("address", address), zap.Error(err))
		}
		return model.NoRegisteredName
	}
	if len(names) == 0 || names[0] == "" {
		return model.NoRegisteredName
	}
	return names[0]
}
