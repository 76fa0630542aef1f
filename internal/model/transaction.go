package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Transaction is a ledger record as returned by the node. The fields shared by
// every transaction type live on the struct; the per-category remainder is
// decoded into Payload.
type Transaction struct {
	Type           string          `json:"type"`
	Signature      string          `json:"signature"`
	Reference      string          `json:"reference"`
	CreatorAddress string          `json:"creatorAddress"`
	Fee            decimal.Decimal `json:"fee"`
	Timestamp      int64           `json:"timestamp"` // epoch milliseconds
	BlockHeight    *int64          `json:"blockHeight,omitempty"`
	TxGroupID      int             `json:"txGroupId"`
	ApprovalStatus string          `json:"approvalStatus"`

	Payload Payload `json:"-"`
}

// TransactionSet is ordered by Timestamp, newest first.
type TransactionSet []Transaction

// IsPending reports whether the transaction has not been included in a block.
func (t Transaction) IsPending() bool {
	return t.BlockHeight == nil
}

// Category returns the category of the transaction type, if it has one.
func (t Transaction) Category() (Category, bool) {
	return CategoryOf(t.Type)
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	type header Transaction
	if err := json.Unmarshal(data, (*header)(t)); err != nil {
		return err
	}

	category, ok := CategoryOf(t.Type)
	if !ok {
		t.Payload = nil
		return nil
	}

	payload, err := decodePayload(category, data)
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", t.Type, err)
	}
	t.Payload = payload
	return nil
}

// Payload is the closed set of category specific transaction bodies.
type Payload interface {
	Category() Category
	isPayload()
}

type PaymentPayload struct {
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
}

type ArbitraryPayload struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Method     string `json:"method"`
	Size       int64  `json:"size"`
}

type ATPayload struct {
	ATAddress   string          `json:"atAddress"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Recipient   string          `json:"recipient"`
	Amount      decimal.Decimal `json:"amount"`
}

type GroupPayload struct {
	GroupID        int    `json:"groupId"`
	GroupName      string `json:"groupName"`
	NewDescription string `json:"newDescription"`
	Member         string `json:"member"`
	Admin          string `json:"admin"`
	Offender       string `json:"offender"`
	Invitee        string `json:"invitee"`
}

type NamePayload struct {
	Name    string          `json:"name"`
	NewName string          `json:"newName"`
	Seller  string          `json:"seller"`
	Amount  decimal.Decimal `json:"amount"`
}

type AssetPayload struct {
	AssetID     int64           `json:"assetId"`
	AssetName   string          `json:"assetName"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Recipient   string          `json:"recipient"`
	Amount      decimal.Decimal `json:"amount"`
}

type PollPayload struct {
	PollName    string `json:"pollName"`
	Description string `json:"description"`
	OptionIndex int    `json:"optionIndex"`
}

type RewardSharePayload struct {
	RewardSharePublicKey string          `json:"rewardSharePublicKey"`
	Recipient            string          `json:"recipient"`
	SharePercent         decimal.Decimal `json:"sharePercent"`
}

func (PaymentPayload) Category() Category     { return CategoryPayment }
func (ArbitraryPayload) Category() Category   { return CategoryArbitrary }
func (ATPayload) Category() Category          { return CategoryAT }
func (GroupPayload) Category() Category       { return CategoryGroup }
func (NamePayload) Category() Category        { return CategoryName }
func (AssetPayload) Category() Category       { return CategoryAsset }
func (PollPayload) Category() Category        { return CategoryPoll }
func (RewardSharePayload) Category() Category { return CategoryRewardShare }

func (PaymentPayload) isPayload()     {}
func (ArbitraryPayload) isPayload()   {}
func (ATPayload) isPayload()          {}
func (GroupPayload) isPayload()       {}
func (NamePayload) isPayload()        {}
func (AssetPayload) isPayload()       {}
func (PollPayload) isPayload()        {}
func (RewardSharePayload) isPayload() {}

func decodePayload(c Category, data []byte) (Payload, error) {
	switch c {
	case CategoryPayment:
		return decodeAs[PaymentPayload](data)
	case CategoryArbitrary:
		return decodeAs[ArbitraryPayload](data)
	case CategoryAT:
		return decodeAs[ATPayload](data)
	case CategoryGroup:
		return decodeAs[GroupPayload](data)
	case CategoryName:
		return decodeAs[NamePayload](data)
	case CategoryAsset:
		return decodeAs[AssetPayload](data)
	case CategoryPoll:
		return decodeAs[PollPayload](data)
	case CategoryRewardShare:
		return decodeAs[RewardSharePayload](data)
	}
	return nil, fmt.Errorf("no payload for category %s", c)
}

func decodeAs[P Payload](data []byte) (Payload, error) {
	var p P
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}
