package utils

import (
	"time"

	"github.com/hance08/qwallet/internal/constants"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount with trailing zeros removed, keeping at most
// eight decimals.
func FormatAmount(amount decimal.Decimal) string {
	return amount.Round(constants.AmountDecimals).String()
}

// FormatAmountFixed always shows eight decimals.
func FormatAmountFixed(amount decimal.Decimal) string {
	return amount.StringFixed(constants.AmountDecimals)
}

func FormatCoin(amount decimal.Decimal, coin string) string {
	return FormatAmount(amount) + " " + coin
}

// ShortenAddress keeps the head and tail of long identifiers for table cells.
func ShortenAddress(s string, keep int) string {
	if keep <= 0 || len(s) <= keep*2+3 {
		return s
	}
	return s[:keep] + "..." + s[len(s)-keep:]
}

// FormatTimestamp renders a millisecond epoch in local time.
func FormatTimestamp(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).Local().Format(constants.DateTimeFormat)
}
