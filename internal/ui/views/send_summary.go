package views

import (
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/utils"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

type SendSummaryItem struct {
	Coin         string
	Recipient    string
	ContactLabel string
	Amount       decimal.Decimal
	Fee          decimal.Decimal
	Balance      decimal.Decimal
}

func RenderSendSummary(item SendSummaryItem) error {
	pterm.DefaultSection.Println("Payment Summary")

	recipient := item.Recipient
	if item.ContactLabel != "" {
		recipient = item.ContactLabel + " (" + item.Recipient + ")"
	}

	total := item.Amount.Add(item.Fee)
	remaining := item.Balance.Sub(total)

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"Recipient", recipient},
		{"Amount", utils.FormatCoin(item.Amount, item.Coin)},
		{"Fee", utils.FormatCoin(item.Fee, item.Coin)},
		{"Total", pterm.Bold.Sprint(utils.FormatCoin(total, item.Coin))},
		{"Balance After", utils.FormatCoin(remaining, item.Coin)},
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	if remaining.IsNegative() {
		pterm.Warning.Println("Amount plus fee exceeds the current balance")
	}
	return nil
}

func RenderSendResult(receipt service.SendReceipt) {
	pterm.Success.Printf("Sent %s to %s\n", utils.FormatCoin(receipt.Amount, receipt.Coin), receipt.Recipient)
	if len(receipt.Result) > 0 {
		pterm.Info.Printf("Node response: %s\n", string(receipt.Result))
	}
}
