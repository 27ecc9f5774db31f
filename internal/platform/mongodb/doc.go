// Package mongodb provides the MongoDB implementations of the store
// interfaces, together with the Provider that owns the single shared
// database session for the process.
//
// The Provider connects lazily. Every store asks it for a session on each
// operation, so a deployment without a reachable database still starts and
// serves its non-database routes; database operations fail with
// store.ErrUnavailable until a connection attempt succeeds.
package mongodb
