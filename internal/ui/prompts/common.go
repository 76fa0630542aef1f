package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
)

// PromptNote asks for an optional free-text note.
func PromptNote(message string) (string, error) {
	var note string

	err := huh.NewInput().
		Title(message).
		Description("Optional, press enter to skip").
		CharLimit(200).
		Value(&note).
		Run()

	return strings.TrimSpace(note), err
}

func PromptAmount(message string, helpText string, validator func(string) error) (string, error) {
	var amount string

	input := huh.NewInput().
		Title(message).
		Description(helpText).
		Value(&amount)

	if validator != nil {
		input.Validate(validator)
	}

	err := input.Run()
	return amount, err
}

// PromptSelect offers options and returns the chosen one. The cursor starts on
// defaultOption, matched case-insensitively.
func PromptSelect(message string, options []string, defaultOption string) (string, error) {
	selected := ""
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		if selected == "" && strings.EqualFold(o, defaultOption) {
			selected = o
		}
		opts = append(opts, huh.NewOption(o, o))
	}

	err := huh.NewSelect[string]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Run()
	return selected, err
}
