package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkdiggler/dungeonmaster/internal/items"
	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
)

func TestPriceScalesByRarityQualityAndDisposition(t *testing.T) {
	tmpl := items.Template{Rarity: items.RarityRare}
	inst := items.Instance{Quality: 10}

	assert.Equal(t, 75, Price(tmpl, inst, 0))
	assert.Less(t, Price(tmpl, inst, 100), Price(tmpl, inst, 0))
	assert.Greater(t, Price(tmpl, inst, -100), Price(tmpl, inst, 0))
}

func TestPriceScalesByQuality(t *testing.T) {
	tmpl := items.Template{Rarity: items.RarityCommon}
	full := items.Instance{Quality: 10}
	half := items.Instance{Quality: 5}

	assert.Greater(t, Price(tmpl, full, 0), Price(tmpl, half, 0))
}

func TestPriceFloorsAtOneGold(t *testing.T) {
	tmpl := items.Template{Rarity: items.RarityCommon}
	inst := items.Instance{Quality: 1}

	assert.GreaterOrEqual(t, Price(tmpl, inst, 100), 1)
}

func TestPriceUnknownRarityFallsBackToCommon(t *testing.T) {
	tmpl := items.Template{Rarity: items.Rarity("unknown")}
	inst := items.Instance{Quality: 10}

	assert.Equal(t, Price(items.Template{Rarity: items.RarityCommon}, inst, 0), Price(tmpl, inst, 0))
}

func TestBuySucceedsWithEnoughGold(t *testing.T) {
	c := NewComponent(50)
	c.Gold = 100
	tmpl := items.Template{ID: "tmpl-rope", Rarity: items.RarityCommon, Properties: map[string]string{"weight": "2"}}
	inst := items.Instance{ID: "i1", TemplateID: "tmpl-rope", Quality: 10}

	next, err := Buy(c, testTemplates(), tmpl, inst, 0)
	require.NoError(t, err)
	assert.Contains(t, next.Instances, "i1")
	assert.Less(t, next.Gold, 100)
}

func TestBuyRejectsInsufficientGold(t *testing.T) {
	c := NewComponent(50)
	c.Gold = 1
	tmpl := items.Template{ID: "tmpl-anvil", Rarity: items.RarityLegendary}
	inst := items.Instance{ID: "i1", TemplateID: "tmpl-anvil", Quality: 10}

	_, err := Buy(c, testTemplates(), tmpl, inst, 0)
	require.Error(t, err)
	assert.Equal(t, rpgerr.CodeOvercapacity, rpgerr.GetCode(err))
}

func TestSellCreditsGoldAndRemovesInstance(t *testing.T) {
	c := NewComponent(50)
	c.Instances["i1"] = items.Instance{ID: "i1", TemplateID: "tmpl-rope", Quality: 10}

	next, price, err := Sell(c, testTemplates(), "i1", 0)
	require.NoError(t, err)
	assert.Greater(t, price, 0)
	assert.Equal(t, price, next.Gold)
	assert.NotContains(t, next.Instances, "i1")
}

func TestSellMissingInstanceRejected(t *testing.T) {
	c := NewComponent(50)
	_, _, err := Sell(c, testTemplates(), "ghost", 0)
	require.Error(t, err)
	assert.Equal(t, rpgerr.CodeNotFoundEntity, rpgerr.GetCode(err))
}
