package contact

import (
	"github.com/hance08/qwallet/internal/service"
	"github.com/spf13/cobra"
)

func NewContactCmd(svc *service.Service) *cobra.Command {
	contactCmd := &cobra.Command{
		Use:     "contact",
		Aliases: []string{"contacts"},
		Short:   "Manage the local address book",
		Long:    `Add, list, rename and remove saved recipients. A contact name can be used anywhere a recipient is expected.`,
	}

	contactCmd.AddCommand(NewAddCmd(svc))
	contactCmd.AddCommand(NewListCmd(svc))
	contactCmd.AddCommand(NewRemoveCmd(svc))
	contactCmd.AddCommand(NewNoteCmd(svc))
	contactCmd.AddCommand(NewRenameCmd(svc))

	return contactCmd
}
