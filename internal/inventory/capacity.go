package inventory

import (
	"strconv"

	"github.com/kirkdiggler/dungeonmaster/internal/items"
	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
)

func weightOf(t items.Template) float64 {
	raw, ok := t.Properties[PropertyWeight]
	if !ok {
		return 0
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return w
}

// CurrentWeight sums every owned instance's weight (weight-per-unit times
// quantity for stackables; spec §4.9 weight invariant).
func (c Component) CurrentWeight(templates TemplateLookup) float64 {
	total := 0.0
	for _, inst := range c.Instances {
		tmpl, ok := templates.Lookup(inst.TemplateID)
		if !ok {
			continue
		}
		qty := inst.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += weightOf(tmpl) * float64(qty)
	}
	return total
}

// Add inserts inst, rejecting the mutation with CodeOverweight if it would
// exceed capacity (spec §4.9 "add(instance) → Overweight if violates
// capacity").
func Add(c Component, templates TemplateLookup, inst items.Instance) (Component, error) {
	tmpl, ok := templates.Lookup(inst.TemplateID)
	if !ok {
		return c, rpgerr.New(rpgerr.CodeNotFoundEntity, "inventory: unknown template "+inst.TemplateID)
	}
	qty := inst.Quantity
	if qty <= 0 {
		qty = 1
	}
	projected := c.CurrentWeight(templates) + weightOf(tmpl)*float64(qty)
	if projected > c.CapacityWeight {
		return c, rpgerr.New(rpgerr.CodeOverweight, "inventory: adding "+inst.ID+" exceeds weight capacity")
	}

	next := c
	next.Instances = c.cloneInstances()
	next.Instances[inst.ID] = inst
	return next, nil
}

// Remove drops an owned instance, unequipping it first if worn (spec §4.9
// "remove(instanceId) → NotFound or success").
func Remove(c Component, instanceID string) (Component, error) {
	if _, ok := c.Instances[instanceID]; !ok {
		return c, rpgerr.New(rpgerr.CodeNotFoundEntity, "inventory: instance "+instanceID+" not found")
	}

	next := c
	next.Instances = c.cloneInstances()
	delete(next.Instances, instanceID)

	next.Equipped = c.cloneEquipped()
	for slot, id := range c.Equipped {
		if id == instanceID {
			delete(next.Equipped, slot)
		}
	}
	return next, nil
}
