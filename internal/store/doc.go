// Package store provides the SQLite-backed baseline ledger for generated
// covers.
//
// The ledger keeps one row per slug holding the digest of the most recently
// recorded document together with the metadata it was composed from, and
// one row per generation run. Verification recomposes a record and compares
// its digest against the stored baseline.
//
// # Ordering
//
// Runs and covers carry a seq INTEGER assigned by the store, never a
// timestamp. Every listing query has an explicit ORDER BY so results are
// identical across invocations.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
