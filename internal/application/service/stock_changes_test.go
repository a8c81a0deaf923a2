package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartbiz/smartbiz-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestStockChangeSetEmpty(t *testing.T) {
	changes := newStockChangeSet()
	assert.Nil(t, changes.mutation())
}

func TestStockChangeSetSkipsZero(t *testing.T) {
	changes := newStockChangeSet()
	changes.add(uuid.New(), decimal.Zero, enum.StockSourceManual, nil)
	assert.Nil(t, changes.mutation())
}

func TestStockChangeSetAccumulatesNet(t *testing.T) {
	productID := uuid.New()
	itemA := uuid.New()
	itemB := uuid.New()

	changes := newStockChangeSet()
	changes.add(productID, dec("5"), enum.StockSourceSale, &itemA)
	changes.add(productID, dec("-2"), enum.StockSourceSale, &itemB)

	mut := changes.mutation()
	assert.NotNil(t, mut)
	assert.Len(t, mut.Deltas, 1)
	assert.True(t, dec("3").Equal(mut.Deltas[0].Delta), "net = %s", mut.Deltas[0].Delta)

	// One audit row per movement, each keeping its own delta
	assert.Len(t, mut.Audit, 2)
	assert.True(t, dec("5").Equal(mut.Audit[0].QtyInBase))
	assert.True(t, dec("-2").Equal(mut.Audit[1].QtyInBase))
	assert.Equal(t, &itemA, mut.Audit[0].SourceItemID)
	assert.Equal(t, &itemB, mut.Audit[1].SourceItemID)
}

func TestStockChangeSetOrdersDeltas(t *testing.T) {
	changes := newStockChangeSet()
	for i := 0; i < 10; i++ {
		changes.add(uuid.New(), dec("1"), enum.StockSourcePurchase, nil)
	}

	mut := changes.mutation()
	assert.Len(t, mut.Deltas, 10)
	for i := 1; i < len(mut.Deltas); i++ {
		assert.Less(t, mut.Deltas[i-1].ProductID.String(), mut.Deltas[i].ProductID.String())
	}
}

func TestStockChangeSetQuantizes(t *testing.T) {
	changes := newStockChangeSet()
	changes.add(uuid.New(), dec("1.0005"), enum.StockSourceManual, nil)

	mut := changes.mutation()
	assert.True(t, dec("1.001").Equal(mut.Deltas[0].Delta))
}
