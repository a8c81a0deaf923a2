package service

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/smartbiz/smartbiz-api/internal/domain/repository"
	"github.com/smartbiz/smartbiz-api/pkg/quantity"
)

// stockChangeSet accumulates the stock side of one document transition. Each
// add records an audit row with the requested delta and folds it into the net
// per-product total, so a product touched by several lines gets one locked
// update but keeps one audit row per line movement.
type stockChangeSet struct {
	net   map[uuid.UUID]decimal.Decimal
	audit []entity.StockTransaction
}

func newStockChangeSet() *stockChangeSet {
	return &stockChangeSet{net: make(map[uuid.UUID]decimal.Decimal)}
}

func (c *stockChangeSet) add(productID uuid.UUID, delta decimal.Decimal, source enum.StockSource, sourceItemID *uuid.UUID) {
	if delta.IsZero() {
		return
	}
	delta = quantity.QuantizeStock(delta)
	c.net[productID] = c.net[productID].Add(delta)
	c.audit = append(c.audit, entity.StockTransaction{
		ProductID:    productID,
		QtyInBase:    delta,
		SourceType:   source,
		SourceItemID: sourceItemID,
	})
}

// mutation flattens the set into deltas ordered by product ID so concurrent
// transitions acquire row locks in the same order.
func (c *stockChangeSet) mutation() *repository.StockMutation {
	if len(c.net) == 0 && len(c.audit) == 0 {
		return nil
	}

	deltas := make([]repository.ProductDelta, 0, len(c.net))
	for id, delta := range c.net {
		deltas = append(deltas, repository.ProductDelta{ProductID: id, Delta: delta})
	}
	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i].ProductID.String() < deltas[j].ProductID.String()
	})

	return &repository.StockMutation{Deltas: deltas, Audit: c.audit}
}
