package cmd

import (
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/ui/views"
	"github.com/spf13/cobra"
)

type balanceRunner struct {
	svc *service.Service
	cmd *cobra.Command
}

func NewBalanceCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the current balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &balanceRunner{
				svc: svc,
				cmd: cmd,
			}
			return runner.Run()
		},
	}
}

func (r *balanceRunner) Run() error {
	session, err := openSession(r.cmd.Context(), r.svc, nil)
	if err != nil {
		return err
	}
	defer session.Teardown()

	<-session.Balance.SetAddress(session.Account.Address)

	state := session.Balance.State()
	if err := views.RenderBalance(session.Account, state, r.svc.Config.Wallet.Coin); err != nil {
		return err
	}
	if state.Status == service.BalanceFailed {
		return state.Err
	}
	return nil
}
