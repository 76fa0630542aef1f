package service

// RequiredConfirmations is the block depth at which a transaction is shown as
// confirmed.
const RequiredConfirmations = 3

type ConfirmationTier int

const (
	TierPendingOrLow ConfirmationTier = iota
	TierConfirmed
)

func (t ConfirmationTier) String() string {
	switch t {
	case TierConfirmed:
		return "Confirmed"
	default:
		return "Pending"
	}
}

// Classify derives the confirmation tier of a transaction included at
// blockHeight. A nil blockHeight means the transaction is still unconfirmed.
func Classify(chainHeight int64, blockHeight *int64) ConfirmationTier {
	if blockHeight == nil {
		return TierPendingOrLow
	}
	if chainHeight-*blockHeight < RequiredConfirmations {
		return TierPendingOrLow
	}
	return TierConfirmed
}

// Confirmations returns how many blocks deep the transaction is.
func Confirmations(chainHeight int64, blockHeight *int64) int64 {
	if blockHeight == nil {
		return 0
	}
	depth := chainHeight - *blockHeight
	if depth < 0 {
		return 0
	}
	return depth
}
