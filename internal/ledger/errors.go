package ledger

import "errors"

var (
	ErrQueryFailed  = errors.New("ledger query failed")
	ErrEmptyAddress = errors.New("address must not be empty")
)
