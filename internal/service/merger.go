package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/hance08/qwallet/internal/model"
	"golang.org/x/sync/errgroup"
)

// TransactionSource lists confirmed and pending transactions per category.
type TransactionSource interface {
	SearchConfirmed(ctx context.Context, category model.Category, address string) ([]model.Transaction, error)
	SearchPending(ctx context.Context, category model.Category, address string) ([]model.Transaction, error)
}

// CategoryMerger produces the ordered transaction set of one category.
type CategoryMerger interface {
	Merge(ctx context.Context, category model.Category, address string) (model.TransactionSet, error)
}

type Merger struct {
	source TransactionSource
}

func NewMerger(source TransactionSource) *Merger {
	return &Merger{source: source}
}

// Merge fetches the confirmed and pending sets of category in parallel and
// waits for both. Either failure fails the whole category.
func (m *Merger) Merge(ctx context.Context, category model.Category, address string) (model.TransactionSet, error) {
	var confirmed, pending []model.Transaction

	var g errgroup.Group
	g.Go(func() error {
		txs, err := m.source.SearchConfirmed(ctx, category, address)
		if err != nil {
			return fmt.Errorf("confirmed: %w", err)
		}
		confirmed = txs
		return nil
	})
	g.Go(func() error {
		txs, err := m.source.SearchPending(ctx, category, address)
		if err != nil {
			return fmt.Errorf("pending: %w", err)
		}
		pending = txs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("merge %s: %w", category, err)
	}

	return MergeSets(confirmed, pending), nil
}

// MergeSets concatenates confirmed and pending transactions and orders them
// newest first. A signature seen in both sets is kept once, as confirmed.
func MergeSets(confirmed, pending []model.Transaction) model.TransactionSet {
	all := make(model.TransactionSet, 0, len(confirmed)+len(pending))
	seen := make(map[string]struct{}, len(confirmed))

	for _, batch := range [][]model.Transaction{confirmed, pending} {
		for _, tx := range batch {
			if tx.Signature != "" {
				if _, dup := seen[tx.Signature]; dup {
					continue
				}
				seen[tx.Signature] = struct{}{}
			}
			all = append(all, tx)
		}
	}

	slices.SortStableFunc(all, func(a, b model.Transaction) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})

	return all
}
