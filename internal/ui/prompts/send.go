package prompts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/qwallet/internal/store"
	"github.com/hance08/qwallet/internal/utils"
	"github.com/hance08/qwallet/internal/validation"
	"github.com/shopspring/decimal"
)

const manualEntry = "\x00manual"

// PromptRecipient offers the address book and a manual entry option.
func PromptRecipient(contacts []*store.Contact) (string, error) {
	if len(contacts) == 0 {
		return promptManualRecipient()
	}

	options := make([]huh.Option[string], 0, len(contacts)+1)
	for _, c := range contacts {
		label := fmt.Sprintf("%s (%s)", c.Name, utils.ShortenAddress(c.Address, 8))
		options = append(options, huh.NewOption(label, c.Address))
	}
	options = append(options, huh.NewOption("Enter manually...", manualEntry))

	var selected string
	err := huh.NewSelect[string]().
		Title("Send to:").
		Options(options...).
		Value(&selected).
		Height(10).
		Run()
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}

	if selected == manualEntry {
		return promptManualRecipient()
	}
	return selected, nil
}

func promptManualRecipient() (string, error) {
	var recipient string
	err := huh.NewInput().
		Title("Recipient address or registered name:").
		Value(&recipient).
		Validate(func(s string) error { return validation.ValidateRecipient(s) }).
		Run()
	return strings.TrimSpace(recipient), err
}

// PromptSendAmount asks for the amount. Typing "max" sends everything but
// the fee.
func PromptSendAmount(maxSendable decimal.Decimal, coin string) (decimal.Decimal, error) {
	help := fmt.Sprintf("Type 'max' to send %s", utils.FormatCoin(maxSendable, coin))

	raw, err := PromptAmount("Amount:", help, func(s string) error {
		if strings.EqualFold(strings.TrimSpace(s), "max") {
			if !maxSendable.IsPositive() {
				return fmt.Errorf("balance does not cover the fee")
			}
			return nil
		}
		return validation.ValidateAmount(s)
	})
	if err != nil {
		return decimal.Zero, err
	}

	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "max") {
		return maxSendable, nil
	}
	return decimal.NewFromString(raw)
}
