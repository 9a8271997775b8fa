package inventory

import (
	"github.com/kirkdiggler/dungeonmaster/internal/items"
	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
)

// UseAction is a closed set of verbs an ItemUseHandler dispatches on
// (spec §4.9: "user action (bash, throw, burn, break, pour, climb)").
type UseAction string

const (
	ActionBash   UseAction = "bash"
	ActionThrow  UseAction = "throw"
	ActionBurn   UseAction = "burn"
	ActionBreak  UseAction = "break"
	ActionPour   UseAction = "pour"
	ActionClimb  UseAction = "climb"
)

// tagForAction is the tag the template must carry for an action's
// generic dispatch in ItemUseHandler.Use (spec §4.9 tag list: flammable,
// explosive, container, blunt, sharp, throwable, fragile, light_source,
// climbable, liquid). Use checks explosive (throw, burn) and container
// (break) before consulting this map, so those actions accept more than
// one qualifying tag.
var tagForAction = map[UseAction]string{
	ActionBash:  "blunt",
	ActionThrow: "throwable",
	ActionBurn:  "flammable",
	ActionBreak: "fragile",
	ActionPour:  "liquid",
	ActionClimb: "climbable",
}

// UseOutcome narrates what happened when an item was used.
type UseOutcome struct {
	Narrative string
	Consumed  bool // the instance is used up (explosive, fragile breaks, liquid poured out)
}

// ItemUseHandler dispatches use(instance, action) on the instance's
// template tags (spec §4.9 "use(instance, context) → delegates to an
// ItemUseHandler which dispatches on tags... and user action").
type ItemUseHandler struct{}

// NewItemUseHandler builds the tag-dispatch handler.
func NewItemUseHandler() *ItemUseHandler { return &ItemUseHandler{} }

// Use resolves action against inst's template tags.
func (h *ItemUseHandler) Use(tmpl items.Template, inst items.Instance, action UseAction) (UseOutcome, error) {
	if tmpl.HasTag("explosive") && (action == ActionThrow || action == ActionBurn) {
		return UseOutcome{Narrative: tmpl.Name + " detonates!", Consumed: true}, nil
	}
	if tmpl.HasTag("container") && action == ActionBreak {
		return UseOutcome{Narrative: "You break open " + tmpl.Name + ".", Consumed: true}, nil
	}

	tag, dispatched := tagForAction[action]
	if !dispatched || !tmpl.HasTag(tag) {
		return UseOutcome{}, rpgerr.New(rpgerr.CodeConditionNotMet, "inventory: cannot "+string(action)+" "+tmpl.Name)
	}

	switch action {
	case ActionBash:
		return UseOutcome{Narrative: "You bash with " + tmpl.Name + "."}, nil
	case ActionThrow:
		return UseOutcome{Narrative: "You throw " + tmpl.Name + ".", Consumed: true}, nil
	case ActionBurn:
		return UseOutcome{Narrative: tmpl.Name + " catches fire.", Consumed: true}, nil
	case ActionBreak:
		return UseOutcome{Narrative: tmpl.Name + " shatters.", Consumed: true}, nil
	case ActionPour:
		return UseOutcome{Narrative: "You pour out " + tmpl.Name + ".", Consumed: true}, nil
	case ActionClimb:
		return UseOutcome{Narrative: "You climb up " + tmpl.Name + "."}, nil
	default:
		return UseOutcome{}, rpgerr.New(rpgerr.CodeConditionNotMet, "inventory: unhandled action "+string(action))
	}
}
