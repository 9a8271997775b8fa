// Package repo is the durable persistence boundary behind the in-memory
// entity/component store (spec §4.2, "C2"). It is grounded on the teacher's
// northstar.Store pattern (JSON-blob columns guarded by a shared *sql.DB,
// upsert-by-primary-key) generalized to the engine's relational shape, with
// query construction moved to squirrel and schema versioning moved to goose
// migrations rather than an inline CREATE TABLE IF NOT EXISTS string.
//
// Most repository methods issue a single statement; TreasureRoomRepository.Save
// runs its statements in one transaction, while GraphNodeRepository's
// Update/AddEdge/RemoveEdge and SpacePropertiesRepository.AddItems read and
// then write in separate statements with no transaction. Failures are classified
// into the spec §7 error taxonomy via wrapErr rather than returned as raw
// driver errors, so callers can rpgerr.GetCode(err) instead of string
// matching.
package repo
