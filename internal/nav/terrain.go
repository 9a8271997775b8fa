package nav

import "github.com/kirkdiggler/dungeonmaster/internal/repo"

// MoveOutcome is the result of costing a move into a destination terrain
// (spec §4.4 "Terrain costing").
type MoveOutcome struct {
	Ticks      int
	DamageRisk int
	Success    bool
}

// terrainCost is the per-terrain movement cost table.
// DIFFICULT doubles tick cost; HAZARDOUS adds damage risk on top; IMPASSABLE
// never succeeds.
var terrainCost = map[repo.Terrain]MoveOutcome{
	repo.TerrainNormal:     {Ticks: 1, DamageRisk: 0, Success: true},
	repo.TerrainDifficult:  {Ticks: 2, DamageRisk: 0, Success: true},
	repo.TerrainHazardous:  {Ticks: 2, DamageRisk: 15, Success: true},
	repo.TerrainImpassable: {Ticks: 0, DamageRisk: 0, Success: false},
}

// CostMove returns the movement cost for entering terrain, discounted by a
// mover's athletics/survival proficiency (reduces ticks, floor of 1 for any
// passable terrain).
func CostMove(terrain repo.Terrain, athleticsBonus int) MoveOutcome {
	outcome, ok := terrainCost[terrain]
	if !ok {
		outcome = terrainCost[repo.TerrainNormal]
	}
	if !outcome.Success {
		return outcome
	}
	outcome.Ticks -= athleticsBonus / 2
	if outcome.Ticks < 1 {
		outcome.Ticks = 1
	}
	return outcome
}
