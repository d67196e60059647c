// Package release implements the release registry: an in-memory, insertion
// ordered collection of release records together with the validation and
// status derivation rules applied when records are created or edited.
//
// The package has no knowledge of presentation or configuration. Callers
// (the release service and the TUI) pass plain field values in and receive
// records or typed errors back.
//
// # Validation
//
// Version names must be non-empty and unique across the collection. A record
// being edited may keep its own name. Released dates are checked against the
// start date first and against today second, so a released date equal to the
// start date is always accepted.
//
// A start date in the past produces a Warning rather than an error. Warnings
// never block a save.
//
// # Storage
//
// Records live in a map keyed by id with a separate order slice. Every read
// returns a copy, so callers cannot mutate stored records in place.
package release
