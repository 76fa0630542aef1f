package ui

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	l1Style = pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)
	l2Style = pterm.NewStyle(pterm.FgCyan, pterm.Bold)
)

// PrintL1Title prints a highlighted banner, used once per screen.
func PrintL1Title(format string, a ...any) {
	l1Style.Println(fmt.Sprintf(" %s   ", fmt.Sprintf(format, a...)))
}

func PrintL2Title(format string, a ...any) {
	l2Style.Println(fmt.Sprintf("# %s   ", fmt.Sprintf(format, a...)))
}

// PrintSeparator draws a dim rule between command sections.
func PrintSeparator() {
	pterm.Println(pterm.Gray("────────────────────────────────────────"))
}
