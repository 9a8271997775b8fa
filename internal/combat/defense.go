package combat

import "context"

// DefenseChecker resolves a defender's opposed Dodge/Parry roll against an
// incoming attack (spec §4.6: "Defender may opposed-roll a defensive skill
// ... on success, damage is negated and the defender receives progression
// via C7"). The implementation owns the XP grant for a successful defense
// so combat doesn't need to know C7's lucky-promotion rules. Forward-
// reference interface onto internal/skill, same seam as nav.SkillChecker.
type DefenseChecker interface {
	AttemptDefense(ctx context.Context, defenderID string, attackRoll int) (negated bool, err error)
}

// NoDefense is a DefenseChecker that never negates damage, for combatants
// with no skill progression wired (tests, simple NPCs).
type NoDefense struct{}

// AttemptDefense implements DefenseChecker.
func (NoDefense) AttemptDefense(_ context.Context, _ string, _ int) (bool, error) {
	return false, nil
}

var _ DefenseChecker = NoDefense{}
