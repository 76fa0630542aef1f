package cmd

import (
	"context"

	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/ui/views"
	"github.com/pterm/pterm"
)

// terminalNotifier reports send outcomes on the terminal.
type terminalNotifier struct{}

func (terminalNotifier) NotifySuccess(receipt service.SendReceipt) {
	views.RenderSendResult(receipt)
}

func (terminalNotifier) NotifyError(err error) {
	pterm.Error.Printf("Payment failed: %v\n", err)
}

// openSession signs in through the agent and builds the per-account session.
// The caller starts it and must tear it down.
func openSession(ctx context.Context, svc *service.Service, notifier service.Notifier) (*service.Session, error) {
	spinner, _ := pterm.DefaultSpinner.Start("Connecting to signing agent...")

	account, err := svc.SignIn(ctx)
	if err != nil {
		spinner.Fail("Sign-in failed")
		return nil, err
	}

	spinner.Success("Signed in as " + account.DisplayName())
	return svc.NewSession(account, notifier), nil
}
