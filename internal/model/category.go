package model

import (
	"fmt"
	"strings"
)

// Category groups node transaction types that are listed together.
type Category string

const (
	CategoryPayment     Category = "Payment"
	CategoryArbitrary   Category = "Arbitrary"
	CategoryAT          Category = "AT"
	CategoryGroup       Category = "Group"
	CategoryName        Category = "Name"
	CategoryAsset       Category = "Asset"
	CategoryPoll        Category = "Poll"
	CategoryRewardShare Category = "RewardShare"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryPayment,
	CategoryArbitrary,
	CategoryAT,
	CategoryGroup,
	CategoryName,
	CategoryAsset,
	CategoryPoll,
	CategoryRewardShare,
}

var categoryTxTypes = map[Category][]string{
	CategoryPayment:   {"PAYMENT"},
	CategoryArbitrary: {"ARBITRARY"},
	CategoryAT:        {"AT", "DEPLOY_AT", "MESSAGE"},
	CategoryGroup: {
		"CREATE_GROUP", "UPDATE_GROUP", "ADD_GROUP_ADMIN", "REMOVE_GROUP_ADMIN",
		"GROUP_BAN", "CANCEL_GROUP_BAN", "GROUP_KICK", "GROUP_INVITE",
		"CANCEL_GROUP_INVITE", "JOIN_GROUP", "LEAVE_GROUP", "GROUP_APPROVAL",
		"SET_GROUP",
	},
	CategoryName:        {"REGISTER_NAME", "UPDATE_NAME", "SELL_NAME", "CANCEL_SELL_NAME", "BUY_NAME"},
	CategoryAsset:       {"ISSUE_ASSET", "TRANSFER_ASSET"},
	CategoryPoll:        {"CREATE_POLL", "VOTE_ON_POLL"},
	CategoryRewardShare: {"REWARD_SHARE", "TRANSFER_PRIVS", "PRESENCE"},
}

var txTypeCategory = func() map[string]Category {
	m := make(map[string]Category)
	for c, types := range categoryTxTypes {
		for _, t := range types {
			m[t] = c
		}
	}
	return m
}()

// TxTypes returns the node txType filters that make up the category.
func (c Category) TxTypes() []string {
	types := categoryTxTypes[c]
	out := make([]string, len(types))
	copy(out, types)
	return out
}

func (c Category) Valid() bool {
	_, ok := categoryTxTypes[c]
	return ok
}

// CategoryOf maps a node txType tag to its category.
func CategoryOf(txType string) (Category, bool) {
	c, ok := txTypeCategory[txType]
	return c, ok
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category '%s' (must be one of %v)", s, Categories)
}
