// Package store implements the entity/component store (spec §4.1, C1): the
// in-memory authority for polymorphic entities with a typed attribute bag,
// queryable by id and by space. Durable reflection is internal/repo's job.
//
// Grounded on the teacher's core.Entity interface and its immutable-update
// philosophy (core/entity.go, core/ref.go): entities are sum types closed
// over core.EntityKind, components are attached by replacement, and
// observers learn about changes through the teacher's events.Bus rather
// than by holding a mutable pointer.
package store
