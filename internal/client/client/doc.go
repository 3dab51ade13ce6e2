// Package client is the console's Remote Data Gateway.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the four
//     backend resource kinds: elections, candidates, voters and token batches,
//     plus results, candidate image upload targets, login and Ping.
//  2. A REST implementation (see HTTPClient) that attaches the bearer
//     credential supplied by a TokenSource, bounds every request with a
//     timeout and maps HTTP statuses to sentinel errors. Liveness is checked
//     through the backend's gRPC health service.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI,
//     wiring an SQLite database and applying embedded goose migrations.
//
// Records are returned untyped (models.Record); turning them into domain
// types is the job of package normalize.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrNotFound and ErrRejected. Non-2xx
// responses are reported as *StatusError, which unwraps to the matching
// sentinel. Requests are never retried.
package client
