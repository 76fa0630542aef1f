package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hance08/qwallet/internal/model"
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/ui"
	"github.com/hance08/qwallet/internal/ui/prompts"
	"github.com/hance08/qwallet/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type sendFlags struct {
	To     string
	Amount string
	Max    bool
	Yes    bool
}

type sendRunner struct {
	svc   *service.Service
	flags *sendFlags
	cmd   *cobra.Command
}

func NewSendCmd(svc *service.Service) *cobra.Command {
	flags := &sendFlags{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send coins to an address, registered name or contact",
		Long: `Send coins through the signing agent. The network fee is added on top of the amount.

	Missing values are asked for interactively.

	Examples:
	# Interactive
	qwallet send

	# Pay a saved contact
	qwallet send --to alice --amount 1.5

	# Empty the wallet, minus the fee, without confirmation
	qwallet send --to QdSnUy6sUiEnaN87dWmE92g1uQjrvPgrWG --max --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &sendRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.To, "to", "t", "", "Recipient address, registered name or contact name")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Amount to send")
	cmd.Flags().BoolVar(&flags.Max, "max", false, "Send the whole balance minus the fee")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.MarkFlagsMutuallyExclusive("amount", "max")

	return cmd
}

func (r *sendRunner) Run() error {
	ctx := r.cmd.Context()
	coin := r.svc.Config.Wallet.Coin

	session, err := openSession(ctx, r.svc, terminalNotifier{})
	if err != nil {
		return err
	}
	defer session.Teardown()

	session.History.SetAddress(session.Account.Address)

	spinner, _ := pterm.DefaultSpinner.Start("Loading balance...")
	<-session.Balance.SetAddress(session.Account.Address)
	balance := session.Balance.State()
	if balance.Status == service.BalanceFailed {
		spinner.Fail("Balance unavailable")
		return balance.Err
	}
	spinner.Success("Balance: " + balance.Balance.String() + " " + coin)

	send := session.Send
	if err := send.Open(); err != nil {
		return err
	}

	recipient, label, err := r.recipient()
	if err != nil {
		return err
	}
	if err := send.SetRecipient(recipient); err != nil {
		return err
	}

	if err := r.amount(send, balance); err != nil {
		return err
	}

	if send.State() == service.SendBlocked {
		return send.Reason()
	}

	draft := send.Draft()
	if err := views.RenderSendSummary(views.SendSummaryItem{
		Coin:         coin,
		Recipient:    draft.Recipient,
		ContactLabel: label,
		Amount:       draft.Amount,
		Fee:          send.Fee(),
		Balance:      balance.Balance,
	}); err != nil {
		return err
	}

	if !r.flags.Yes {
		confirmed, err := ui.Confirm("Send this payment?", false)
		if err != nil {
			return err
		}
		if !confirmed {
			_ = send.Close()
			pterm.Info.Println("Payment cancelled")
			return nil
		}
	}

	// The notifier prints the outcome before the wait starts.
	spinner = nil
	settled, submitErr := submitAndSettle(ctx, send, func() {
		spinner, _ = pterm.DefaultSpinner.Start("Waiting for the node to index the payment...")
	})
	if !settled {
		if spinner != nil {
			spinner.Warning("Stopped before refresh")
		}
		return submitErr
	}
	spinner.Stop()

	ui.PrintSeparator()
	if err := views.RenderBalance(session.Account, session.Balance.State(), coin); err != nil {
		return err
	}
	if err := r.renderPayments(ctx, session); err != nil {
		return err
	}
	return submitErr
}

// submitAndSettle submits the draft and, whether the payment went through or
// was rejected, waits for the post-submission refresh. settled is false when
// the submission never reached the signer or ctx ended first.
func submitAndSettle(ctx context.Context, send *service.SendWorkflow, submitted func()) (settled bool, err error) {
	_, err = send.Submit(ctx)
	if err != nil && !errors.Is(err, service.ErrSubmissionFailed) {
		return false, err
	}
	if submitted != nil {
		submitted()
	}

	select {
	case <-send.Settled():
		return true, err
	case <-ctx.Done():
		return false, err
	}
}

func (r *sendRunner) renderPayments(ctx context.Context, session *service.Session) error {
	state := session.History.State(model.CategoryPayment)

	chainHeight, err := r.svc.Node.ChainHeight(ctx)
	if err != nil {
		chainHeight = 0
	}
	items := views.BuildTransactionItems(state.Transactions, session.Account.Address, chainHeight, r.svc.Contacts.LabelFor)

	view := views.NewTransactionListView(string(model.CategoryPayment))
	view.Loaded = state.Loaded
	view.Err = state.Err
	return view.Render(service.Paginate(items, 0, r.svc.Config.Display.PageSize))
}

// recipient returns the address to pay and, when it came from the address
// book, the contact name.
func (r *sendRunner) recipient() (string, string, error) {
	raw := strings.TrimSpace(r.flags.To)
	if raw == "" {
		contacts, err := r.svc.Contacts.GetAllContacts()
		if err != nil {
			return "", "", err
		}
		raw, err = prompts.PromptRecipient(contacts)
		if err != nil {
			return "", "", err
		}
	}

	resolved, err := r.svc.Contacts.ResolveRecipient(raw)
	if err != nil {
		return "", "", err
	}
	return resolved, r.svc.Contacts.LabelFor(resolved), nil
}

func (r *sendRunner) amount(send *service.SendWorkflow, balance service.BalanceState) error {
	switch {
	case r.flags.Max:
		amount, err := send.SendMax(balance.Balance)
		if err != nil {
			return err
		}
		if !amount.IsPositive() {
			return fmt.Errorf("%w: balance does not cover the fee of %s", service.ErrValidationBlocked, send.Fee())
		}
		return nil

	case r.flags.Amount != "":
		amount, err := service.ParseAmount(r.flags.Amount)
		if err != nil {
			return err
		}
		return send.SetAmount(amount)
	}

	amount, err := prompts.PromptSendAmount(service.MaxSendable(balance.Balance, send.Fee()), r.svc.Config.Wallet.Coin)
	if err != nil {
		return err
	}
	return send.SetAmount(amount)
}
