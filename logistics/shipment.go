package logistics

import (
	"fmt"
	"time"

	"github.com/MrEthical07/shopflow/share"
)

// ShipmentStatus is the delivery lifecycle state.
type ShipmentStatus string

const (
	ShipmentPreparing ShipmentStatus = "PREPARING"
	ShipmentShipped   ShipmentStatus = "SHIPPED"
	ShipmentDelivered ShipmentStatus = "DELIVERED"
)

var shipmentTransitions = map[ShipmentStatus]ShipmentStatus{
	ShipmentPreparing: ShipmentShipped,
	ShipmentShipped:   ShipmentDelivered,
}

// ShipmentID identifies a Shipment. UUID-backed.
type ShipmentID struct {
	value string
}

// ParseShipmentID validates raw as a UUID identifier.
func ParseShipmentID(raw string) (ShipmentID, error) {
	if !share.ValidID(raw) {
		return ShipmentID{}, fmt.Errorf("invalid shipment id: %q", raw)
	}
	return ShipmentID{value: raw}, nil
}

// String returns the identifier text.
func (id ShipmentID) String() string { return id.value }

// Shipment carries one order to one address. Status only moves forward.
type Shipment struct {
	ID      ShipmentID
	OrderID string
	Address share.Address
	Status  ShipmentStatus
	Audit   share.AuditInfo
}

// ReconstructShipment rebuilds a persisted shipment through the creation
// validation.
func ReconstructShipment(id, orderID string, address share.Address, status ShipmentStatus, audit share.AuditInfo) (Shipment, error) {
	shipmentID, err := ParseShipmentID(id)
	if err != nil {
		return Shipment{}, err
	}
	if !share.ValidID(orderID) {
		return Shipment{}, fmt.Errorf("invalid order id: %q", orderID)
	}
	switch status {
	case ShipmentPreparing, ShipmentShipped, ShipmentDelivered:
	default:
		return Shipment{}, fmt.Errorf("unknown shipment status: %q", status)
	}
	return Shipment{ID: shipmentID, OrderID: orderID, Address: address, Status: status, Audit: audit}, nil
}

// Advance moves the shipment one stage forward.
func (s Shipment) Advance(now time.Time) (Shipment, error) {
	next, ok := shipmentTransitions[s.Status]
	if !ok {
		return Shipment{}, fmt.Errorf("shipment in %s cannot advance", s.Status)
	}
	s.Status = next
	s.Audit = s.Audit.Touch(now)
	return s, nil
}

// ShipmentFactory opens preparing shipments for orders.
type ShipmentFactory struct {
	IDs   share.IDGenerator
	Clock share.Clock
}

// Create opens a shipment for the order, bound to the delivery address.
func (f ShipmentFactory) Create(orderID string, address share.Address) (Shipment, error) {
	return ReconstructShipment(f.IDs.NewID(), orderID, address, ShipmentPreparing, share.NewAuditInfo(f.Clock.Now()))
}
