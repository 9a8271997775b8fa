package combat

import "github.com/kirkdiggler/dungeonmaster/internal/core"

// State is the per-combatant state machine (spec §4.6):
// Idle -> InCombat(opponentId) -> (Victor | Defeated | Fled).
type State string

// Combat states.
const (
	StateIdle     State = "Idle"
	StateInCombat State = "InCombat"
	StateVictor   State = "Victor"
	StateDefeated State = "Defeated"
	StateFled     State = "Fled"
)

// Component is the Combat attribute (spec §3). LegacyWeaponBonus and
// LegacyArmorDefense apply only when no V2 equipped instance is present
// (resolved by EquipmentLookup at attack time).
type Component struct {
	HP                 int
	MaxHP              int
	LegacyWeaponBonus  int
	LegacyArmorDefense int
	StrMod             int
	IsBoss             bool
	IsNPC              bool

	State      State
	OpponentID string
}

// Kind implements core.Component.
func (Component) Kind() core.ComponentKind { return core.ComponentCombat }

var _ core.Component = Component{}

// Alive reports whether HP is still positive.
func (c Component) Alive() bool { return c.HP > 0 }

// WithDamage returns a copy of c with dmg HP subtracted, floored at 0.
func (c Component) WithDamage(dmg int) Component {
	next := c
	next.HP -= dmg
	if next.HP < 0 {
		next.HP = 0
	}
	return next
}

// WithState returns a copy of c transitioned to the given state/opponent.
func (c Component) WithState(s State, opponentID string) Component {
	next := c
	next.State = s
	next.OpponentID = opponentID
	return next
}

// BossLocked reports whether this combatant is a boss currently engaged,
// meaning social de-escalation must not exit combat (spec Open Question
// #3: boss hostility is pinned and combat, not social, enforces it).
func (c Component) BossLocked() bool {
	return c.IsBoss && c.State == StateInCombat
}
