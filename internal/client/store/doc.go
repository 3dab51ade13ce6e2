// Package store is the console's reactive state store.
//
// A Store owns the canonical in-memory copies of elections, candidates,
// voters, token batches and the audit log, and keeps them consistent with
// either a remote backend (client.Client) or, when no gateway is configured,
// with the local persistence adapter (state.Repository).
//
// Mutations follow a confirmed-application policy. With a backend, a change is
// applied only after the backend accepts it and is followed by an
// authoritative reload. Offline, the write-through to local storage is the
// confirmation and a failed write leaves memory untouched. In both variants an
// audit entry is appended if and only if the mutation succeeded, and every
// audit append is written through to local storage.
//
// Reads return copies. Dashboard stats are derived on every call and never
// stored. Observers registered with Subscribe are called after each commit,
// outside the store's lock.
package store
