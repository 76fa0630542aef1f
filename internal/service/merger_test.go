package service

import (
	"context"
	"testing"

	"github.com/hance08/qwallet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signatures(set model.TransactionSet) []string {
	out := make([]string, len(set))
	for i, t := range set {
		out[i] = t.Signature
	}
	return out
}

func TestMerger_Merge(t *testing.T) {
	ledger := &fakeLedger{
		confirmed: map[model.Category][]model.Transaction{
			model.CategoryPayment: {tx("c1", 100), tx("c2", 300)},
		},
		pending: map[model.Category][]model.Transaction{
			model.CategoryPayment: {tx("p1", 200)},
		},
	}

	set, err := NewMerger(ledger).Merge(context.Background(), model.CategoryPayment, "Qaddr")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "p1", "c1"}, signatures(set))
}

func TestMerger_MergeFailsWhenEitherSideFails(t *testing.T) {
	ledger := &fakeLedger{
		confirmed:  map[model.Category][]model.Transaction{model.CategoryName: {tx("c1", 1)}},
		pendingErr: errBoom,
	}

	set, err := NewMerger(ledger).Merge(context.Background(), model.CategoryName, "Qaddr")
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorContains(t, err, "merge Name")
	assert.Nil(t, set)
}

func TestMerger_EmptyCategory(t *testing.T) {
	set, err := NewMerger(&fakeLedger{}).Merge(context.Background(), model.CategoryPoll, "Qaddr")
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestMergeSets(t *testing.T) {
	t.Run("keeps the confirmed copy of a duplicate", func(t *testing.T) {
		confirmed := []model.Transaction{{Signature: "s1", Timestamp: 10, BlockHeight: height(5)}}
		pending := []model.Transaction{{Signature: "s1", Timestamp: 10}, {Signature: "s2", Timestamp: 20}}

		set := MergeSets(confirmed, pending)
		require.Len(t, set, 2)
		assert.Equal(t, "s2", set[0].Signature)
		assert.Equal(t, "s1", set[1].Signature)
		assert.NotNil(t, set[1].BlockHeight)
	})

	t.Run("equal timestamps keep input order", func(t *testing.T) {
		set := MergeSets(
			[]model.Transaction{tx("a", 5), tx("b", 5)},
			[]model.Transaction{tx("c", 5)},
		)
		assert.Equal(t, []string{"a", "b", "c"}, signatures(set))
	})

	t.Run("unsigned entries are never collapsed", func(t *testing.T) {
		set := MergeSets([]model.Transaction{tx("", 1)}, []model.Transaction{tx("", 2)})
		assert.Len(t, set, 2)
	})

	t.Run("result is newest first", func(t *testing.T) {
		set := MergeSets(
			[]model.Transaction{tx("old", 1), tx("new", 9)},
			[]model.Transaction{tx("mid", 5)},
		)
		assert.Equal(t, []string{"new", "mid", "old"}, signatures(set))
	})
}
