// Package cli provides the interactive election administration console.
//
// It wires configuration, local storage, the backend gateway and the reactive
// store behind a small REPL. In online mode the store is backed by the REST
// API and reloads after every confirmed change; with -o the console works
// against the local SQLite database only.
//
// Commands cover elections, candidates (with optional image upload), voters,
// access token batches, results, dashboard stats and the audit log. Type
// "help" at the prompt for the full list.
package cli
