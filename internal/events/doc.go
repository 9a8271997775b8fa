// Package events provides a game-agnostic event bus for loose coupling between
// toolkit components and game systems without requiring direct dependencies.
//
// Purpose:
// This package enables components to communicate without direct dependencies,
// supporting observable and extensible game systems through event-driven
// architecture. It allows the toolkit to remain decoupled while still
// coordinating complex interactions.
//
// Scope:
//   - Event bus implementation with pub/sub pattern
//   - Event interface and base types
//   - Typed event support with generics
//   - Event filtering and routing capabilities
//   - Synchronous event delivery (same goroutine)
//   - Event metadata and correlation
//   - No game-specific event types
//
// Non-Goals:
//   - Game event definitions: Define these in your game implementation
//   - Event persistence: Use external storage if needed
//   - Network transport: This is for in-process events only
//   - Async delivery: Events are delivered synchronously
//   - Event ordering guarantees: No order guarantees between subscribers
//   - Event replay: No built-in event sourcing
//   - Dead letter handling: Failed handlers are not retried; Publish stops
//     at the first handler error and returns it
//
// Integration:
// This package is used throughout the engine for:
//   - store: entity change events
//   - combat, social, inventory, skill: game events published on the bus
//   - world: creates the bus and hands it to the components
//
// Games subscribe to toolkit events and publish their own domain events.
// This creates a clean boundary between infrastructure and game logic.
//
// Example:
//
//	bus := events.NewBus()
//
//	ref := &core.Ref{Module: "world", Type: "event", Value: "entity_moved"}
//	_, err := bus.Subscribe(ref, func(ctx context.Context, e EntityMoved) error {
//	    fmt.Printf("entity %s moved to %s\n", e.EntityID, e.To)
//	    return nil
//	})
//
//	err = bus.Publish(EntityMoved{EntityID: "goblin-1", To: "space-12"})
package events
