// Package state is the console's persistence adapter: a key/value store of
// JSON-encoded collections ("buckets") that survives restarts.
//
// Load reports whether the bucket existed, so callers can tell an empty
// collection apart from one that was never written. A payload that no longer
// decodes is treated as absent rather than as an error.
package state
