package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/items"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
)

func mustGet(t *testing.T, s *store.Store, id string) store.Entity {
	t.Helper()
	ent, ok := s.Get(id)
	require.True(t, ok)
	return ent
}

func TestTradingComponentStockRoundTrips(t *testing.T) {
	c := NewTradingComponent()
	inst := items.Instance{ID: "i1", TemplateID: "tmpl-rope", Quality: 10}

	c = c.WithStocked(inst)
	assert.Len(t, c.ListStock(), 1)

	c = c.WithoutStocked("i1")
	assert.Empty(t, c.ListStock())
}

func TestTradingComponentWithStockedIsImmutable(t *testing.T) {
	base := NewTradingComponent()
	base.WithStocked(items.Instance{ID: "i1", TemplateID: "tmpl-rope"})
	assert.Empty(t, base.Stock)
}

func TestEngineBuyFromMerchantTransfersStockAndCreditsMerchant(t *testing.T) {
	e, s := newTestInventoryEngine(t, dice.NewMockRoller(1))
	withInventoryEntity(s, "buyer", NewComponent(50))
	withInventoryEntity(s, "merchant", NewComponent(50))

	require.NoError(t, e.StockMerchant(context.Background(), "merchant", items.Instance{ID: "i1", TemplateID: "tmpl-rope", Quality: 10}))

	buyerComp := componentOf(mustGet(t, s, "buyer"))
	buyerComp.Gold = 100
	s.Replace(mustGet(t, s, "buyer").WithComponent(buyerComp))

	err := e.BuyFromMerchant(context.Background(), "buyer", "merchant", "i1", 0)
	require.NoError(t, err)

	buyer := componentOf(mustGet(t, s, "buyer"))
	assert.Contains(t, buyer.Instances, "i1")
	assert.Less(t, buyer.Gold, 100)

	stock, err := e.ListMerchantStock(context.Background(), "merchant")
	require.NoError(t, err)
	assert.Empty(t, stock)

	merchant := componentOf(mustGet(t, s, "merchant"))
	assert.Greater(t, merchant.Gold, 0)
}

func TestEngineBuyFromMerchantRejectsUnknownStock(t *testing.T) {
	e, s := newTestInventoryEngine(t, dice.NewMockRoller(1))
	withInventoryEntity(s, "buyer", NewComponent(50))
	withInventoryEntity(s, "merchant", NewComponent(50))

	err := e.BuyFromMerchant(context.Background(), "buyer", "merchant", "ghost", 0)
	require.Error(t, err)
}

func TestEngineSellToMerchantStocksItemAndPaysSeller(t *testing.T) {
	e, s := newTestInventoryEngine(t, dice.NewMockRoller(1))
	withInventoryEntity(s, "seller", NewComponent(50))
	withInventoryEntity(s, "merchant", NewComponent(50))

	require.NoError(t, e.AddItem(context.Background(), "seller", items.Instance{ID: "i1", TemplateID: "tmpl-rope", Quality: 10}))

	price, err := e.SellToMerchant(context.Background(), "seller", "merchant", "i1", 0)
	require.NoError(t, err)
	assert.Greater(t, price, 0)

	seller := componentOf(mustGet(t, s, "seller"))
	assert.NotContains(t, seller.Instances, "i1")
	assert.Equal(t, price, seller.Gold)

	stock, err := e.ListMerchantStock(context.Background(), "merchant")
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.Equal(t, "i1", stock[0].ID)
}
