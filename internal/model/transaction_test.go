package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_UnmarshalJSON(t *testing.T) {
	t.Run("confirmed payment", func(t *testing.T) {
		raw := `{
			"type": "PAYMENT",
			"timestamp": 1700000000000,
			"reference": "ref",
			"fee": "0.00100000",
			"signature": "sig-1",
			"txGroupId": 0,
			"blockHeight": 1500000,
			"approvalStatus": "NOT_REQUIRED",
			"creatorAddress": "QcreatorAddr",
			"recipient": "QrecipientAddr",
			"amount": "12.50000000"
		}`

		var tx Transaction
		require.NoError(t, json.Unmarshal([]byte(raw), &tx))

		assert.Equal(t, "PAYMENT", tx.Type)
		assert.Equal(t, int64(1700000000000), tx.Timestamp)
		assert.True(t, tx.Fee.Equal(decimal.RequireFromString("0.001")))
		require.NotNil(t, tx.BlockHeight)
		assert.Equal(t, int64(1500000), *tx.BlockHeight)
		assert.False(t, tx.IsPending())

		payment, ok := tx.Payload.(PaymentPayload)
		require.True(t, ok, "payload should be a PaymentPayload, got %T", tx.Payload)
		assert.Equal(t, "QrecipientAddr", payment.Recipient)
		assert.True(t, payment.Amount.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("pending group invite", func(t *testing.T) {
		raw := `{"type":"GROUP_INVITE","timestamp":1,"creatorAddress":"Qa","groupId":42,"invitee":"Qb","fee":0.01}`

		var tx Transaction
		require.NoError(t, json.Unmarshal([]byte(raw), &tx))

		assert.True(t, tx.IsPending())
		group, ok := tx.Payload.(GroupPayload)
		require.True(t, ok)
		assert.Equal(t, 42, group.GroupID)
		assert.Equal(t, "Qb", group.Invitee)
		assert.Equal(t, CategoryGroup, tx.Payload.Category())
	})

	t.Run("unknown type keeps common fields", func(t *testing.T) {
		raw := `{"type":"GENESIS","timestamp":5,"creatorAddress":"Qa"}`

		var tx Transaction
		require.NoError(t, json.Unmarshal([]byte(raw), &tx))

		assert.Equal(t, int64(5), tx.Timestamp)
		assert.Nil(t, tx.Payload)
	})

	t.Run("malformed payload", func(t *testing.T) {
		raw := `{"type":"PAYMENT","timestamp":5,"amount":"not-a-number"}`

		var tx Transaction
		assert.Error(t, json.Unmarshal([]byte(raw), &tx))
	})
}

func TestCategory(t *testing.T) {
	t.Run("every category has filters", func(t *testing.T) {
		assert.Len(t, Categories, 8)
		for _, c := range Categories {
			assert.True(t, c.Valid())
			assert.NotEmpty(t, c.TxTypes(), "category %s", c)
		}
	})

	t.Run("tx types map back to their category", func(t *testing.T) {
		for _, c := range Categories {
			for _, txType := range c.TxTypes() {
				got, ok := CategoryOf(txType)
				require.True(t, ok)
				assert.Equal(t, c, got)
			}
		}
	})

	t.Run("TxTypes returns a copy", func(t *testing.T) {
		types := CategoryPayment.TxTypes()
		types[0] = "MUTATED"
		assert.Equal(t, []string{"PAYMENT"}, CategoryPayment.TxTypes())
	})

	t.Run("parse ignores case", func(t *testing.T) {
		c, err := ParseCategory("rewardshare")
		require.NoError(t, err)
		assert.Equal(t, CategoryRewardShare, c)

		_, err = ParseCategory("staking")
		assert.Error(t, err)
	})
}

func TestAccount_DisplayName(t *testing.T) {
	assert.Equal(t, "alice", Account{Address: "Qa", Name: "alice"}.DisplayName())
	assert.Equal(t, "Qa", Account{Address: "Qa", Name: NoRegisteredName}.DisplayName())
	assert.Equal(t, "Qa", Account{Address: "Qa"}.DisplayName())
}
