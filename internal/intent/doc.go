// Package intent implements the two-layer intent recognizer and handler
// router (spec §4.5, C5). Layer 1 is a deterministic, ordered set of
// pattern rules over a tokenized phrase; layer 2 is an LLM fallback invoked
// only when layer 1 yields Unknown, re-validated against the same closed
// intent set.
//
// Router is grounded on internal/pipeline's Registry: a mutex-guarded map
// keyed by a discriminant (Kind here, a ref string there), with a
// Register/lookup pair rather than a big type switch.
package intent
