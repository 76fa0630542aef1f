package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hance08/qwallet/internal/constants"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// ContactStore defines the lookups the validator needs.
// This prevents circular dependency with the service package
type ContactStore interface {
	ContactExists(name string) (bool, error)
}

type ContactValidator struct {
	store ContactStore
}

func NewContactValidator(store ContactStore) *ContactValidator {
	return &ContactValidator{store: store}
}

// ValidateContactName validates a contact name (without checking existence)
func ValidateContactName(val any) error {
	name, ok := val.(string)
	if !ok {
		return fmt.Errorf("contact name must be a string")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("contact name can't be empty")
	}
	if constants.ReservedContactNames[strings.ToLower(name)] {
		return fmt.Errorf("'%s' is a reserved name", name)
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("contact name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

// ValidateNewContactName also rejects names that are already saved
func (v *ContactValidator) ValidateNewContactName(val any) error {
	if err := ValidateContactName(val); err != nil {
		return err
	}

	name := strings.TrimSpace(val.(string))
	exists, err := v.store.ContactExists(name)
	if err != nil {
		return fmt.Errorf("failed to check contact: %w", err)
	}
	if exists {
		return fmt.Errorf("contact '%s' already exists", name)
	}
	return nil
}

// ValidateRecipient accepts an address or a registered name
func ValidateRecipient(val any) error {
	recipient, ok := val.(string)
	if !ok {
		return fmt.Errorf("recipient must be a string")
	}

	recipient = strings.TrimSpace(recipient)
	rule := fmt.Sprintf("min=%d,max=%d", constants.MinRecipientLen, constants.MaxRecipientLen)
	if err := validate.Var(recipient, rule); err != nil {
		return fmt.Errorf("recipient must be %d-%d characters", constants.MinRecipientLen, constants.MaxRecipientLen)
	}
	return nil
}

// ValidateAmount validates a positive amount with at most eight decimals
func ValidateAmount(val any) error {
	input, ok := val.(string)
	if !ok {
		return fmt.Errorf("amount must be a string")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("amount can't be empty")
	}

	amount, err := decimal.NewFromString(input)
	if err != nil {
		return fmt.Errorf("invalid number format")
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be greater than 0")
	}
	if !amount.Equal(amount.Round(constants.AmountDecimals)) {
		return fmt.Errorf("amount supports at most %d decimals", constants.AmountDecimals)
	}
	return nil
}
