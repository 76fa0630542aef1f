package contact

import (
	"errors"
	"fmt"

	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/store"
	"github.com/hance08/qwallet/internal/ui"
	"github.com/hance08/qwallet/internal/ui/prompts"
	"github.com/hance08/qwallet/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type addFlags struct {
	Name    string
	Address string
	Note    string
}

type addRunner struct {
	svc   *service.Service
	flags *addFlags
}

func NewAddCmd(svc *service.Service) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a recipient to the address book",
		Long: `Save an address or registered name under a short contact name.

	Run without flags for the interactive form.

	Example: qwallet contact add -n alice -a QdSnUy6sUiEnaN87dWmE92g1uQjrvPgrWG`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &addRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Contact name")
	cmd.Flags().StringVarP(&flags.Address, "address", "a", "", "Address or registered name")
	cmd.Flags().StringVar(&flags.Note, "note", "", "Optional note")

	return cmd
}

func (r *addRunner) Run() error {
	in := prompts.ContactInput{
		Name:    r.flags.Name,
		Address: r.flags.Address,
		Note:    r.flags.Note,
	}

	if in.Name == "" || in.Address == "" {
		v := validation.NewContactValidator(r.svc.Contacts)
		var err error
		in, err = prompts.PromptNewContact(v, in)
		if err != nil {
			return err
		}
	}

	c, err := r.svc.Contacts.AddContact(in.Name, in.Address, in.Note)
	if err != nil {
		if errors.Is(err, store.ErrContactExists) {
			return fmt.Errorf("contact '%s' already exists", in.Name)
		}
		return err
	}

	pterm.Success.Printf("Contact '%s' saved (%s)\n", c.Name, c.Address)
	ui.PrintSeparator()
	return nil
}
