// Package logistics owns the Shipment aggregate: where an order is going
// and how far along it is.
package logistics
