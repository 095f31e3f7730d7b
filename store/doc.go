// Package store persists shopflow aggregates in Redis as JSON documents.
// Each repository reconstructs aggregates through their validating domain
// constructors, so a corrupted document surfaces as an error rather than a
// half-built value. Email lookups go through reservation keys written with
// SETNX, which is what makes duplicate registrations lose the race instead
// of overwriting each other.
package store
