package errhandler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/qwallet/internal/ledger"
	"github.com/hance08/qwallet/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(terminal.InterruptErr))
	assert.True(t, IsCancelled(fmt.Errorf("input cancelled: %w", huh.ErrUserAborted)))
	assert.True(t, IsCancelled(context.Canceled))
	assert.False(t, IsCancelled(errors.New("boom")))
}

func TestHandleError(t *testing.T) {
	assert.Equal(t, 0, HandleError(nil))
	assert.Equal(t, 0, HandleError(huh.ErrUserAborted))
	assert.Equal(t, 1, HandleError(errors.New("boom")))
}

func TestHintFor(t *testing.T) {
	assert.Contains(t, hintFor(fmt.Errorf("x: %w", ledger.ErrQueryFailed)), "node is reachable")
	assert.Contains(t, hintFor(service.ErrNoAccount), "signing agent")
	assert.Equal(t, "Nothing was sent", hintFor(service.ErrValidationBlocked))
	assert.Empty(t, hintFor(errors.New("other")))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Failed to load", capitalize("failed to load"))
	assert.Equal(t, "", capitalize("  "))
}
