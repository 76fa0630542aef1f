package views

import (
	"fmt"

	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/utils"
	"github.com/pterm/pterm"
)

type TransactionListView struct {
	Category string
	Loaded   bool
	Err      error
}

func NewTransactionListView(category string) *TransactionListView {
	return &TransactionListView{Category: category}
}

// Render prints one page of history. Padding rows keep the table height
// constant on the last page.
func (v *TransactionListView) Render(page service.Page[TransactionListItem]) error {
	if v.Err != nil {
		pterm.Warning.Printf("%s history could not be refreshed: %v\n", v.Category, v.Err)
	}
	if !v.Loaded {
		pterm.Info.Printf("%s history has not loaded yet\n", v.Category)
		return nil
	}
	if page.Total == 0 {
		pterm.Warning.Printf("No %s transactions found\n", v.Category)
		return nil
	}

	pterm.DefaultSection.Printf("%s history", v.Category)

	tableData := pterm.TableData{
		{"Time", "Type", "Counterparty", "Detail", "Amount", "Status", "Signature"},
	}

	for _, item := range page.Items {
		amount := item.Amount
		switch {
		case amount == "":
		case item.Outgoing:
			amount = pterm.Red(amount)
		default:
			amount = pterm.Green(amount)
		}

		tableData = append(tableData, []string{
			item.Time,
			item.Type,
			utils.ShortenAddress(item.Counterparty, 8),
			item.Detail,
			amount,
			tierLabel(item.Tier, item.Confirmations),
			utils.ShortenAddress(item.Signature, 6),
		})
	}

	// At most one window of blank rows.
	for range min(page.Padding, page.Size) {
		tableData = append(tableData, []string{"", "", "", "", "", "", ""})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	if page.Size == service.ShowAll {
		pterm.Info.Printf("Total: %d transactions\n", page.Total)
	} else {
		pterm.Info.Printf("Page %d of %d (%d transactions)\n", page.Index+1, page.TotalPages(), page.Total)
	}
	return nil
}

func tierLabel(tier service.ConfirmationTier, confirmations int64) string {
	if tier == service.TierConfirmed {
		return pterm.Green(fmt.Sprintf("%s (%d)", tier, confirmations))
	}
	return pterm.Yellow(tier.String())
}
