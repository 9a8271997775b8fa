package inventory

import (
	"github.com/kirkdiggler/dungeonmaster/internal/items"
	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
)

// basePriceByRarity is the gold value a template's rarity anchors to
// before any quality or disposition adjustment. The spec names rarity
// and disposition as price inputs without fixing numbers; this table is
// the implementation's chosen baseline.
var basePriceByRarity = map[items.Rarity]int{
	items.RarityCommon:    5,
	items.RarityUncommon:  20,
	items.RarityRare:      75,
	items.RarityEpic:      300,
	items.RarityLegendary: 1200,
}

// dispositionPriceModifier scales price by up to +/-20% across the full
// disposition range, favoring a friendlier merchant (spec §4.9: "price
// via trading component using disposition as a modifier").
func dispositionPriceModifier(disposition int) float64 {
	return 1.0 - float64(disposition)/500.0
}

// Price computes a template/instance's buy or sell price, scaled by
// quality and the merchant's disposition toward the trading actor.
func Price(tmpl items.Template, inst items.Instance, disposition int) int {
	base, ok := basePriceByRarity[tmpl.Rarity]
	if !ok {
		base = basePriceByRarity[items.RarityCommon]
	}
	price := float64(base) * inst.QualityScalar() * dispositionPriceModifier(disposition)
	if price < 1 {
		price = 1
	}
	return int(price)
}

// Buy deducts inst's price from c's gold and adds inst to c, rejecting
// the purchase if c lacks the gold. It credits no merchant; callers that
// track merchant gold do that themselves.
func Buy(c Component, templates TemplateLookup, tmpl items.Template, inst items.Instance, disposition int) (Component, error) {
	cost := Price(tmpl, inst, disposition)
	if c.Gold < cost {
		return c, rpgerr.New(rpgerr.CodeOvercapacity, "inventory: insufficient gold")
	}
	next, err := Add(c, templates, inst)
	if err != nil {
		return c, err
	}
	next.Gold -= cost
	return next, nil
}

// Sell removes instanceID from c and credits its price in gold.
func Sell(c Component, templates TemplateLookup, instanceID string, disposition int) (Component, int, error) {
	inst, ok := c.Instances[instanceID]
	if !ok {
		return c, 0, rpgerr.New(rpgerr.CodeNotFoundEntity, "inventory: instance "+instanceID+" not found")
	}
	tmpl, ok := templates.Lookup(inst.TemplateID)
	if !ok {
		return c, 0, rpgerr.New(rpgerr.CodeNotFoundEntity, "inventory: unknown template "+inst.TemplateID)
	}
	next, err := Remove(c, instanceID)
	if err != nil {
		return c, 0, err
	}
	price := Price(tmpl, inst, disposition)
	next.Gold += price
	return next, price, nil
}
