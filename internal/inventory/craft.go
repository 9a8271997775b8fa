package inventory

import (
	"github.com/kirkdiggler/dungeonmaster/internal/items"
	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
)

// Recipe declares what a craft operation consumes and produces (spec
// §4.9 "craft(recipeId) → consumes inputs, produces output at a quality
// determined by relevant skill"). The spec leaves the recipe shape
// itself unspecified beyond "consumes inputs, produces output", so
// Inputs is a simple templateID→quantity map.
type Recipe struct {
	ID               string
	Inputs           map[string]int
	OutputTemplateID string
	Skill            string
}

func quantityOwned(c Component, templateID string) int {
	total := 0
	for _, inst := range c.Instances {
		if inst.TemplateID != templateID {
			continue
		}
		qty := inst.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += qty
	}
	return total
}

func consumeQuantity(c Component, templateID string, amount int) Component {
	next := c
	next.Instances = c.cloneInstances()
	for id, inst := range next.Instances {
		if amount <= 0 {
			break
		}
		if inst.TemplateID != templateID {
			continue
		}
		qty := inst.Quantity
		if qty <= 0 {
			qty = 1
		}
		if qty <= amount {
			amount -= qty
			delete(next.Instances, id)
			continue
		}
		inst.Quantity = qty - amount
		next.Instances[id] = inst
		amount = 0
	}
	return next
}

// qualityFromSkillLevel maps a crafting skill level to the 1..10 output
// quality scale (spec §3 Instance.Quality), clamped at both ends.
func qualityFromSkillLevel(skillLevel int) int {
	switch {
	case skillLevel < 1:
		return 1
	case skillLevel > 10:
		return 10
	default:
		return skillLevel
	}
}

// Craft consumes recipe's inputs and produces a new instance of its
// output template at a quality derived from skillLevel, identified by
// newID.
func Craft(c Component, recipe Recipe, skillLevel int, newID string) (Component, string, error) {
	for templateID, need := range recipe.Inputs {
		if quantityOwned(c, templateID) < need {
			return c, "", rpgerr.New(rpgerr.CodeConditionNotMet, "inventory: missing inputs for recipe "+recipe.ID)
		}
	}

	next := c
	for templateID, need := range recipe.Inputs {
		next = consumeQuantity(next, templateID, need)
	}

	next.Instances = next.cloneInstances()
	next.Instances[newID] = items.Instance{
		ID:         newID,
		TemplateID: recipe.OutputTemplateID,
		Quality:    qualityFromSkillLevel(skillLevel),
		Quantity:   1,
	}
	return next, newID, nil
}
