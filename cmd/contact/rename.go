package contact

import (
	"github.com/hance08/qwallet/internal/service"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewRenameCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := svc.Contacts.RenameContact(args[0], args[1])
			if err != nil {
				return err
			}
			pterm.Success.Printf("Contact '%s' renamed to '%s'\n", args[0], c.Name)
			return nil
		},
	}
}
