package inventory

import (
	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/items"
)

// TradingComponent is a merchant's sellable stock (spec §4.9
// "buy/sell(merchantEntityId, instance) -> price via trading component
// using disposition as a modifier"; spec §4.5 names a dedicated `ListStock`
// intent, implying the stock itself is addressable state rather than an
// ad-hoc parameter).
type TradingComponent struct {
	Stock map[string]items.Instance // instanceID -> instance offered for sale
}

// Kind implements core.Component.
func (TradingComponent) Kind() core.ComponentKind { return core.ComponentTrading }

var _ core.Component = TradingComponent{}

// NewTradingComponent builds an empty merchant catalog.
func NewTradingComponent() TradingComponent {
	return TradingComponent{Stock: make(map[string]items.Instance)}
}

func (c TradingComponent) cloneStock() map[string]items.Instance {
	next := make(map[string]items.Instance, len(c.Stock)+1)
	for k, v := range c.Stock {
		next[k] = v
	}
	return next
}

// WithStocked returns a copy of c with inst added to the catalog.
func (c TradingComponent) WithStocked(inst items.Instance) TradingComponent {
	next := c
	next.Stock = c.cloneStock()
	next.Stock[inst.ID] = inst
	return next
}

// WithoutStocked returns a copy of c with instanceID removed from the
// catalog (e.g. once a player has bought it).
func (c TradingComponent) WithoutStocked(instanceID string) TradingComponent {
	next := c
	next.Stock = c.cloneStock()
	delete(next.Stock, instanceID)
	return next
}

// ListStock returns every instance currently offered for sale (spec §4.5
// ListStock intent).
func (c TradingComponent) ListStock() []items.Instance {
	out := make([]items.Instance, 0, len(c.Stock))
	for _, inst := range c.Stock {
		out = append(out, inst)
	}
	return out
}
