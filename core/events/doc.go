// Package events defines the scheduling related events emitted on the event bus.
//
// Available event types:
//   - PlacementEvent: outcome of one session placement
//   - ElectiveEvent: elective course skipped
//   - GridEvent: grid created and lunch-seeded
//   - LunchEvent: lunch block seeded into a grid
//   - RunEvent: start and end of a scheduling run
package events
