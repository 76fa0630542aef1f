package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/qwallet/internal/validation"
)

type ContactInput struct {
	Name    string
	Address string
	Note    string
}

// PromptNewContact asks for every contact field in one form. Preset values
// are used as defaults.
func PromptNewContact(v *validation.ContactValidator, preset ContactInput) (ContactInput, error) {
	in := preset

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Contact name:").
				Value(&in.Name).
				Validate(func(s string) error { return v.ValidateNewContactName(s) }),
			huh.NewInput().
				Title("Address or registered name:").
				Value(&in.Address).
				Validate(func(s string) error { return validation.ValidateRecipient(s) }),
			huh.NewInput().
				Title("Note:").
				Description("Optional").
				CharLimit(200).
				Value(&in.Note),
		),
	)

	if err := form.Run(); err != nil {
		return ContactInput{}, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Note = strings.TrimSpace(in.Note)
	return in, nil
}
