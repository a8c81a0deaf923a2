package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/smartbiz/smartbiz-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestStampAuditBusiness(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	tenantA := uuid.New()
	otherTenant := uuid.New()

	txns := []entity.StockTransaction{
		{ProductID: productA},
		{ProductID: productA},
		{ProductID: productB, BusinessID: otherTenant},
	}

	missing := stampAuditBusiness(txns, map[uuid.UUID]uuid.UUID{productA: tenantA})

	assert.Empty(t, missing)
	assert.Equal(t, tenantA, txns[0].BusinessID)
	assert.Equal(t, tenantA, txns[1].BusinessID)
	// A row that already carries its business keeps it
	assert.Equal(t, otherTenant, txns[2].BusinessID)
}

func TestStampAuditBusinessReportsUnresolved(t *testing.T) {
	productA := uuid.New()
	tenantA := uuid.New()

	// A product with a net-zero delta has audit rows but was never locked,
	// so its owner is not in the map yet
	txns := []entity.StockTransaction{
		{ProductID: productA},
		{ProductID: productA},
	}

	missing := stampAuditBusiness(txns, map[uuid.UUID]uuid.UUID{})
	assert.Equal(t, []uuid.UUID{productA}, missing)
	assert.Equal(t, uuid.Nil, txns[0].BusinessID)

	missing = stampAuditBusiness(txns, map[uuid.UUID]uuid.UUID{productA: tenantA})
	assert.Empty(t, missing)
	assert.Equal(t, tenantA, txns[0].BusinessID)
	assert.Equal(t, tenantA, txns[1].BusinessID)
}
