// Package models defines the console's domain shapes: elections, candidates,
// voters, audit entries, token batches, results and the derived dashboard
// stats, plus the drafts used to create them.
//
// Values returned by the store are copies; the Clone helpers exist so that
// slices inside an entity (positions, tokens) are never shared with a caller.
package models
