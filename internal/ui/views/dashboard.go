package views

import (
	"fmt"
	"strings"

	"github.com/hance08/qwallet/internal/model"
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/utils"
	"github.com/pterm/pterm"
)

// DashboardItem is a point-in-time copy of a session for the watch screen.
type DashboardItem struct {
	Account    model.Account
	Coin       string
	Balance    service.BalanceState
	Categories map[model.Category]service.CategoryState
	Refreshing bool
	Latest     []TransactionListItem
}

// RenderDashboard returns the watch screen as a string so it can be fed to a
// live area.
func RenderDashboard(d DashboardItem) (string, error) {
	var b strings.Builder

	balance := "-"
	if !d.Balance.UpdatedAt.IsZero() {
		balance = utils.FormatCoin(d.Balance.Balance, d.Coin)
	}
	header := fmt.Sprintf("%s  %s  %s", d.Account.DisplayName(), pterm.Gray(d.Account.Address), pterm.Bold.Sprint(balance))
	if d.Balance.Status == service.BalanceFailed {
		header += "  " + pterm.Red("balance refresh failed")
	}
	if d.Refreshing {
		header += "  " + pterm.Yellow("refreshing...")
	}
	b.WriteString(header + "\n\n")

	counts := pterm.TableData{{"Category", "Transactions", "Pending", "Status"}}
	for _, c := range model.Categories {
		state := d.Categories[c]
		status := pterm.Green("ok")
		switch {
		case state.Err != nil:
			status = pterm.Red("error")
		case !state.Loaded:
			status = pterm.Gray("loading")
		}
		pending := 0
		for _, t := range state.Transactions {
			if t.IsPending() {
				pending++
			}
		}
		counts = append(counts, []string{
			string(c),
			fmt.Sprintf("%d", len(state.Transactions)),
			fmt.Sprintf("%d", pending),
			status,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(counts).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(table + "\n")

	if len(d.Latest) > 0 {
		latest := pterm.TableData{{"Time", "Counterparty", "Amount", "Status"}}
		for _, item := range d.Latest {
			latest = append(latest, []string{
				item.Time,
				utils.ShortenAddress(item.Counterparty, 8),
				item.Amount,
				tierLabel(item.Tier, item.Confirmations),
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(latest).Srender()
		if err != nil {
			return "", err
		}
		b.WriteString("\n" + table + "\n")
	}

	b.WriteString(pterm.Gray("\n[r] refresh  [q] quit"))
	return b.String(), nil
}
