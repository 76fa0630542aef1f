package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type accountFlags struct {
	qr   bool
	copy bool
}

type accountRunner struct {
	svc   *service.Service
	flags *accountFlags
	cmd   *cobra.Command
}

func NewAccountCmd(svc *service.Service) *cobra.Command {
	flags := &accountFlags{}

	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show the signed-in account",
		Long: `Ask the signing agent for the current account and show its address and registered name.
Use --qr to draw the receive address as a QR code and --copy to put it on the clipboard.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &accountRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run()
		},
	}

	cmd.Flags().BoolVar(&flags.qr, "qr", false, "Show the address as a QR code")
	cmd.Flags().BoolVar(&flags.copy, "copy", false, "Copy the address to the clipboard")

	return cmd
}

func (r *accountRunner) Run() error {
	account, err := r.svc.SignIn(r.cmd.Context())
	if err != nil {
		return err
	}
	if err := views.RenderAccount(account); err != nil {
		return err
	}

	if r.flags.qr {
		if err := views.RenderReceiveQR(account.Address); err != nil {
			return err
		}
	}
	if r.flags.copy {
		if err := clipboard.WriteAll(account.Address); err != nil {
			return fmt.Errorf("copy address: %w", err)
		}
		pterm.Success.Println("Address copied to clipboard")
	}
	return nil
}
