package views

import (
	"github.com/hance08/qwallet/internal/model"
	"github.com/hance08/qwallet/internal/ui"
	"github.com/pterm/pterm"
)

func RenderAccount(account model.Account) error {
	name := account.Name
	if name == model.NoRegisteredName {
		name = pterm.Gray(name)
	}

	tableData := pterm.TableData{
		{"Name", name},
		{"Address", account.Address},
		{"Public Key", account.PublicKey},
	}

	ui.PrintL2Title("Signed-in Account")
	return pterm.DefaultTable.WithData(tableData).Render()
}
