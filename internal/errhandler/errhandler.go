package errhandler

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/qwallet/internal/agent"
	"github.com/hance08/qwallet/internal/ledger"
	"github.com/hance08/qwallet/internal/service"
	"github.com/pterm/pterm"
)

// IsCancelled reports whether err comes from the user aborting a prompt or
// interrupting the program.
func IsCancelled(err error) bool {
	return errors.Is(err, terminal.InterruptErr) ||
		errors.Is(err, huh.ErrUserAborted) ||
		errors.Is(err, context.Canceled)
}

// HandleError prints err for the terminal and returns the process exit code.
func HandleError(err error) int {
	if err == nil {
		return 0
	}
	if IsCancelled(err) {
		pterm.Warning.Println("Operation Cancelled")
		return 0
	}

	pterm.Error.Println(capitalize(err.Error()))
	if hint := hintFor(err); hint != "" {
		pterm.Info.Println(hint)
	}
	return 1
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, service.ErrNoAccount), errors.Is(err, agent.ErrUnavailable):
		return "Make sure the signing agent is running and the wallet is unlocked"
	case errors.Is(err, ledger.ErrQueryFailed):
		return "Check that the node is reachable (qwallet info shows the configured URL)"
	case errors.Is(err, service.ErrValidationBlocked), errors.Is(err, service.ErrRecipientUnknown):
		return "Nothing was sent"
	}
	return ""
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
