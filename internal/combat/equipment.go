package combat

import "context"

// EquipmentLookup resolves a combatant's effective weapon bonus and armor
// defense for an attack, per spec §4.6 "Equipment": the V2 equipped
// instance (base property x quality scalar) wins over the legacy bonus
// carried on Component when present. Forward-reference interface onto
// internal/inventory.
type EquipmentLookup interface {
	EffectiveWeaponBonus(ctx context.Context, entityID string, legacyBonus int) (int, error)
	EffectiveArmorDefense(ctx context.Context, entityID string, legacyDefense int) (int, error)
}

// NoEquipment is an EquipmentLookup that always falls back to the legacy
// bonus/defense values, for combatants with no V2 items wired (tests,
// simple NPCs).
type NoEquipment struct{}

// EffectiveWeaponBonus implements EquipmentLookup.
func (NoEquipment) EffectiveWeaponBonus(_ context.Context, _ string, legacyBonus int) (int, error) {
	return legacyBonus, nil
}

// EffectiveArmorDefense implements EquipmentLookup.
func (NoEquipment) EffectiveArmorDefense(_ context.Context, _ string, legacyDefense int) (int, error) {
	return legacyDefense, nil
}

var _ EquipmentLookup = NoEquipment{}
