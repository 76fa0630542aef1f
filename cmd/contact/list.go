package contact

import (
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewListCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			contacts, err := svc.Contacts.GetAllContacts()
			if err != nil {
				return err
			}
			return views.NewContactListView().Render(contacts)
		},
	}
}
