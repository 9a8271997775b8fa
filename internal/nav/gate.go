package nav

import (
	"context"
	"strconv"

	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// SkillChecker resolves a SkillCheck condition through the skill engine
// (C7). internal/skill's engine satisfies this structurally.
type SkillChecker interface {
	CheckSkill(ctx context.Context, entityID, statOrSkill string, dc int) (bool, error)
}

// InventoryChecker resolves an ItemRequired condition through the
// inventory system (C9). internal/inventory's Engine satisfies this
// structurally.
type InventoryChecker interface {
	HasItem(ctx context.Context, entityID, templateID string) (bool, error)
}

// GateResult is the outcome of evaluating an exit's conditions.
type GateResult struct {
	Passed bool
	Reason string
}

// EvaluateConditions runs every condition on an exit against the mover's
// state in order, short-circuiting on the first failure (spec §4.4:
// "condition gating runs... on any failure, a ConditionNotMet(reason) is
// returned").
func EvaluateConditions(
	ctx context.Context,
	conditions []repo.Condition,
	entityID string,
	spaceFlags map[string]bool,
	skills SkillChecker,
	inventory InventoryChecker,
) (GateResult, error) {
	for _, c := range conditions {
		switch c.Kind {
		case repo.ConditionSkillCheck:
			if skills == nil {
				return GateResult{Passed: false, Reason: "no skill checker configured"}, nil
			}
			ok, err := skills.CheckSkill(ctx, entityID, c.StatOrSkill, c.DC)
			if err != nil {
				return GateResult{}, err
			}
			if !ok {
				return GateResult{Passed: false, Reason: "failed " + c.StatOrSkill + " check"}, nil
			}
		case repo.ConditionItemRequired:
			if inventory == nil {
				return GateResult{Passed: false, Reason: "no inventory checker configured"}, nil
			}
			ok, err := inventory.HasItem(ctx, entityID, c.TemplateID)
			if err != nil {
				return GateResult{}, err
			}
			if !ok {
				return GateResult{Passed: false, Reason: "missing required item"}, nil
			}
		case repo.ConditionFlagEquals:
			want, _ := strconv.ParseBool(c.Value)
			if spaceFlags[c.Name] != want {
				return GateResult{Passed: false, Reason: "flag " + c.Name + " not met"}, nil
			}
		default:
			return GateResult{Passed: false, Reason: "unknown condition kind"}, nil
		}
	}
	return GateResult{Passed: true}, nil
}
