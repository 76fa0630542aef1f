package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// SendDraft is the amount and recipient being composed. Recipient is either an
// address or a registered name.
type SendDraft struct {
	Amount    decimal.Decimal
	Recipient string `validate:"min=3,max=34"`
}

// Validate reports why the draft cannot be sent, wrapping ErrValidationBlocked.
func (d SendDraft) Validate() error {
	if !d.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", ErrValidationBlocked)
	}
	if err := validate.Struct(d); err != nil {
		return recipientError(err)
	}
	return nil
}

func (d SendDraft) IsValid() bool {
	return d.Validate() == nil
}

// ValidateRecipient checks the recipient length in characters.
func ValidateRecipient(recipient string) error {
	if err := validate.Var(recipient, "min=3,max=34"); err != nil {
		return recipientError(err)
	}
	return nil
}

func recipientError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
		return fmt.Errorf("%w: recipient must be at most 34 characters", ErrValidationBlocked)
	}
	return fmt.Errorf("%w: recipient must be at least 3 characters", ErrValidationBlocked)
}

// ParseAmount parses user input into a non-negative amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrValidationBlocked)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount '%s'", ErrValidationBlocked, s)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount cannot be negative", ErrValidationBlocked)
	}
	return amount, nil
}

// MaxSendable is balance minus fee, never below zero.
func MaxSendable(balance, fee decimal.Decimal) decimal.Decimal {
	amount := balance.Sub(fee)
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
