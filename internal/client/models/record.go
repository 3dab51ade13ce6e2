package models

// Record is an untyped record as decoded from the backend's JSON. The
// normalize package turns records into the typed models below.
type Record = map[string]any
