// Package shopping owns the purchase-side aggregates: the Cart an account
// fills, the Order placed from it, and the Payment settling the order.
// Factories mint identifiers and audit stamps; state transitions are
// checked, copy-on-write moves.
package shopping
