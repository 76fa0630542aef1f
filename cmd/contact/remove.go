package contact

import (
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type removeRunner struct {
	svc  *service.Service
	yes  bool
	name string
}

func NewRemoveCmd(svc *service.Service) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a contact",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &removeRunner{
				svc:  svc,
				yes:  yes,
				name: args[0],
			}
			return runner.Run()
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (r *removeRunner) Run() error {
	c, err := r.svc.Contacts.GetContactByName(r.name)
	if err != nil {
		return err
	}

	if !r.yes {
		pterm.Warning.Printf("About to remove contact '%s' (%s)\n", c.Name, c.Address)
		confirmed, err := ui.Confirm("Remove this contact?", false)
		if err != nil {
			return err
		}
		if !confirmed {
			pterm.Info.Println("Removal cancelled")
			return nil
		}
	}

	if err := r.svc.Contacts.RemoveContact(c.Name); err != nil {
		return err
	}

	pterm.Success.Printf("Contact '%s' removed\n", c.Name)
	ui.PrintSeparator()
	return nil
}
