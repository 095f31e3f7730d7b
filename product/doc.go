// Package product owns the catalog side: the Product aggregate and its
// categories, per-product Inventory with reservation accounting, and
// Promotions discounting products inside a time window. Creation runs
// through fixed pipelines; quantity and status changes are checked,
// copy-on-write moves.
package product
