package contact

import (
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewNoteCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "note <name> [note]",
		Short: "Change the note saved with a contact",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := svc.Contacts.GetContactByName(args[0])
			if err != nil {
				return err
			}

			var note string
			if len(args) == 2 {
				note = args[1]
			} else {
				note, err = prompts.PromptNote("Note for " + c.Name + ":")
				if err != nil {
					return err
				}
			}

			if err := svc.Contacts.UpdateNote(c.Name, note); err != nil {
				return err
			}
			pterm.Success.Printf("Note updated for '%s'\n", c.Name)
			return nil
		},
	}
}
