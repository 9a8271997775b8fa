package rpgerr

// Codes added for the engine's error taxonomy (spec §7), layered on top of
// the teacher's generic rule-violation codes above. Handlers match on these
// with GetCode to decide whether to convert an error into a player-visible
// System event (the common case) or abort the current intent (Internal,
// Corrupt).
const (
	// CodeNotFoundEntity indicates a referenced entity/chunk/record is missing.
	CodeNotFoundEntity Code = "not_found_entity"
	// CodeConflict indicates a duplicate or singleton-constraint violation.
	CodeConflict Code = "conflict"
	// CodeConditionNotMet indicates a gameplay predicate evaluated false
	// (missing item, failed skill check, flag mismatch).
	CodeConditionNotMet Code = "condition_not_met"
	// CodeOverweight indicates an inventory mutation would exceed capacity.
	CodeOverweight Code = "overweight"
	// CodeOvercapacity indicates a non-weight capacity limit was exceeded
	// (stack size, pedestal count, equip slot already full).
	CodeOvercapacity Code = "overcapacity"
	// CodeExternalUnavailable indicates the LLM or embedding service could
	// not be reached; callers substitute a deterministic fallback.
	CodeExternalUnavailable Code = "external_unavailable"
	// CodeCorrupt indicates persisted data failed schema validation.
	CodeCorrupt Code = "corrupt"
	// CodeCancelledOp indicates cooperative cancellation of an in-flight
	// suspension point (LLM call, embedding call, repository commit).
	CodeCancelledOp Code = "cancelled_op"
)
