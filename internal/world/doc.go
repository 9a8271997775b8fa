// Package world assembles every engine subsystem (C1-C11 plus the LLM
// collaborator) into one aggregate and serializes all mutation through a
// single logical executor, matching spec §5: "a single logical executor
// processes handlers, LLM calls, repo calls, and event emissions one at a
// time; suspension points (an LLM call, a disk write) do not release that
// logical lock to another in-flight command."
//
// Grounded on internal/store.Store's own sync.RWMutex convention: a plain
// mutex held across a command's full handler call is the simplest Go
// idiom for "only one logical thread of execution at a time," and is what
// the rest of the engine's packages already use for narrower critical
// sections.
package world
