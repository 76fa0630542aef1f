package constants

const (
	// MaxNameLen bounds contact names.
	MaxNameLen = 100

	// AmountDecimals is the precision of every on-chain amount.
	AmountDecimals = 8

	MinRecipientLen = 3
	MaxRecipientLen = 34

	DateTimeFormat = "2006-01-02 15:04:05"
)

// PageSizeOptions are the rows-per-page choices offered by the history view.
// -1 shows every row.
var PageSizeOptions = []int{5, 10, 25, -1}

var ReservedContactNames = map[string]bool{
	"me":     true,
	"self":   true,
	"manual": true,
}
