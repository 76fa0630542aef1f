package views

import (
	"fmt"
	"strings"

	"github.com/hance08/qwallet/internal/model"
	"github.com/hance08/qwallet/internal/service"
	"github.com/hance08/qwallet/internal/utils"
	"github.com/shopspring/decimal"
)

// TransactionListItem is one rendered history row.
type TransactionListItem struct {
	Time          string
	Type          string
	Counterparty  string
	Detail        string
	Amount        string
	Outgoing      bool
	Tier          service.ConfirmationTier
	Confirmations int64
	Signature     string
}

// Labeler maps an address to a saved contact name, or "" when there is none.
type Labeler func(address string) string

func BuildTransactionItems(txs []model.Transaction, owner string, chainHeight int64, label Labeler) []TransactionListItem {
	items := make([]TransactionListItem, 0, len(txs))
	for _, t := range txs {
		counterparty, detail, amount, outgoing := describe(t, owner)
		if label != nil && counterparty != "" {
			if name := label(counterparty); name != "" {
				counterparty = name
			}
		}
		items = append(items, TransactionListItem{
			Time:          utils.FormatTimestamp(t.Timestamp),
			Type:          t.Type,
			Counterparty:  counterparty,
			Detail:        detail,
			Amount:        amount,
			Outgoing:      outgoing,
			Tier:          service.Classify(chainHeight, t.BlockHeight),
			Confirmations: service.Confirmations(chainHeight, t.BlockHeight),
			Signature:     t.Signature,
		})
	}
	return items
}

func describe(t model.Transaction, owner string) (counterparty, detail, amount string, outgoing bool) {
	outgoing = t.CreatorAddress == owner

	switch p := t.Payload.(type) {
	case model.PaymentPayload:
		counterparty = p.Recipient
		if !outgoing {
			counterparty = t.CreatorAddress
		}
		amount = signed(p.Amount, outgoing)
	case model.ArbitraryPayload:
		counterparty = p.Name
		detail = strings.TrimSpace(p.Method + " " + p.Identifier)
	case model.ATPayload:
		counterparty = firstNonEmpty(p.ATAddress, p.Recipient)
		detail = firstNonEmpty(p.Name, p.Description)
		if !p.Amount.IsZero() {
			amount = signed(p.Amount, outgoing)
		}
	case model.GroupPayload:
		counterparty = firstNonEmpty(p.Member, p.Invitee, p.Offender, p.Admin)
		detail = p.GroupName
		if detail == "" && p.GroupID != 0 {
			detail = fmt.Sprintf("group #%d", p.GroupID)
		}
	case model.NamePayload:
		counterparty = p.Seller
		detail = p.Name
		if p.NewName != "" {
			detail = p.Name + " -> " + p.NewName
		}
		if !p.Amount.IsZero() {
			amount = signed(p.Amount, outgoing)
		}
	case model.AssetPayload:
		counterparty = p.Recipient
		detail = firstNonEmpty(p.AssetName, fmt.Sprintf("asset #%d", p.AssetID))
		switch {
		case !p.Amount.IsZero():
			amount = signed(p.Amount, outgoing)
		case !p.Quantity.IsZero():
			amount = utils.FormatAmount(p.Quantity)
		}
	case model.PollPayload:
		detail = p.PollName
	case model.RewardSharePayload:
		counterparty = p.Recipient
		detail = utils.FormatAmount(p.SharePercent) + "%"
	default:
		if !outgoing {
			counterparty = t.CreatorAddress
		}
	}
	return counterparty, detail, amount, outgoing
}

func signed(d decimal.Decimal, outgoing bool) string {
	if outgoing {
		return "-" + utils.FormatAmount(d)
	}
	return "+" + utils.FormatAmount(d)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
