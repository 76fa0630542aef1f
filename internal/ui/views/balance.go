package views

import (
	"github.com/hance08/qwallet/internal/model"
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/ui"
	"github.com/hance08/qwallet/internal/utils"
	"github.com/pterm/pterm"
)

func RenderBalance(account model.Account, state service.BalanceState, coin string) error {
	ui.PrintL1Title("%s Wallet", coin)

	status := pterm.Green("Up to date")
	switch state.Status {
	case service.BalanceFailed:
		status = pterm.Red("Refresh failed: " + state.Err.Error())
	case service.BalanceLoading, service.BalanceIdle:
		status = pterm.Yellow("Loading")
	}

	balance := "-"
	if state.Status == service.BalanceLoaded || !state.UpdatedAt.IsZero() {
		balance = utils.FormatCoin(state.Balance, coin)
	}

	tableData := pterm.TableData{
		{"Account", account.DisplayName()},
		{"Address", account.Address},
		{"Balance", pterm.Bold.Sprint(balance)},
		{"Status", status},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
