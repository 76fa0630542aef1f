package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeContacts map[string]bool

func (f fakeContacts) ContactExists(name string) (bool, error) {
	if name == "broken" {
		return false, errors.New("db down")
	}
	return f[name], nil
}

func TestValidateContactName(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr string
	}{
		{name: "valid", input: "alice"},
		{name: "empty", input: "  ", wantErr: "can't be empty"},
		{name: "reserved", input: "Self", wantErr: "reserved"},
		{name: "too long", input: strings.Repeat("a", 101), wantErr: "too long"},
		{name: "not a string", input: 42, wantErr: "must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContactName(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestContactValidator_ValidateNewContactName(t *testing.T) {
	v := NewContactValidator(fakeContacts{"bob": true})

	assert.NoError(t, v.ValidateNewContactName("alice"))
	assert.ErrorContains(t, v.ValidateNewContactName("bob"), "already exists")
	assert.ErrorContains(t, v.ValidateNewContactName("broken"), "failed to check contact")
}

func TestValidateRecipient(t *testing.T) {
	assert.NoError(t, ValidateRecipient("abc"))
	assert.NoError(t, ValidateRecipient(strings.Repeat("Q", 34)))
	assert.Error(t, ValidateRecipient("ab"))
	assert.Error(t, ValidateRecipient(strings.Repeat("Q", 35)))
	assert.Error(t, ValidateRecipient(nil))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount("9.989"))
	assert.NoError(t, ValidateAmount("0.00000001"))
	assert.ErrorContains(t, ValidateAmount(""), "can't be empty")
	assert.ErrorContains(t, ValidateAmount("abc"), "invalid number")
	assert.ErrorContains(t, ValidateAmount("0"), "greater than 0")
	assert.ErrorContains(t, ValidateAmount("-1"), "greater than 0")
	assert.ErrorContains(t, ValidateAmount("0.000000001"), "at most 8 decimals")
}
