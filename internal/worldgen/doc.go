// Package worldgen implements the lazy, seed-driven world generator (spec
// §4.3, C3): chunk hierarchy materialization, subzone graph construction and
// validation, content placement, and exit synthesis.
//
// Grounded on dshills-dungo's pkg/graph (Room/Connector/Graph BFS & DFS
// helpers), pkg/validation (hard/soft constraint report shape and degree/
// cycle metrics), and pkg/dungeon (config-driven generation orchestration).
// Persistence goes through internal/repo; determinism comes from
// internal/dice.SeededRoller, reseeded per chunk id so that generating one
// subzone never depends on the order in which sibling subzones were
// generated (spec §9).
package worldgen
