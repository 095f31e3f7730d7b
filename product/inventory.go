package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/shopflow/share"
)

var (
	// ErrInventoryNotFound reports an adjustment against a product with no
	// inventory record.
	ErrInventoryNotFound = errors.New("inventory not found")

	// ErrInsufficientStock reports a reservation larger than the available
	// quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InventoryID identifies an Inventory. UUID-backed.
type InventoryID struct {
	value string
}

// ParseInventoryID validates raw as a UUID identifier.
func ParseInventoryID(raw string) (InventoryID, error) {
	if !share.ValidID(raw) {
		return InventoryID{}, fmt.Errorf("invalid inventory id: %q", raw)
	}
	return InventoryID{value: raw}, nil
}

// String returns the identifier text.
func (id InventoryID) String() string { return id.value }

// Inventory tracks the available and reserved quantity for one product.
// Both counts stay non-negative.
type Inventory struct {
	ID        InventoryID
	ProductID string
	Available int
	Reserved  int
	Audit     share.AuditInfo
}

// ReconstructInventory rebuilds a persisted inventory through the creation
// validation.
func ReconstructInventory(id, productID string, available, reserved int, audit share.AuditInfo) (Inventory, error) {
	inventoryID, err := ParseInventoryID(id)
	if err != nil {
		return Inventory{}, err
	}
	if !share.ValidID(productID) {
		return Inventory{}, fmt.Errorf("invalid product id: %q", productID)
	}
	if available < 0 {
		return Inventory{}, fmt.Errorf("available quantity must not be negative, got %d", available)
	}
	if reserved < 0 {
		return Inventory{}, fmt.Errorf("reserved quantity must not be negative, got %d", reserved)
	}
	return Inventory{ID: inventoryID, ProductID: productID, Available: available, Reserved: reserved, Audit: audit}, nil
}

// Adjust returns a copy with the available quantity moved by delta.
// Positive deltas are receipts, negative deltas are withdrawals; the
// result never goes below zero.
func (v Inventory) Adjust(delta int, now time.Time) (Inventory, error) {
	next := v.Available + delta
	if next < 0 {
		return Inventory{}, fmt.Errorf("available quantity cannot go below zero: %d%+d", v.Available, delta)
	}
	v.Available = next
	v.Audit = v.Audit.Touch(now)
	return v, nil
}

// Reserve returns a copy with quantity moved from available to reserved.
func (v Inventory) Reserve(quantity int, now time.Time) (Inventory, error) {
	if quantity <= 0 {
		return Inventory{}, fmt.Errorf("reservation quantity must be positive, got %d", quantity)
	}
	if quantity > v.Available {
		return Inventory{}, fmt.Errorf("%w: available %d, requested %d", ErrInsufficientStock, v.Available, quantity)
	}
	v.Available -= quantity
	v.Reserved += quantity
	v.Audit = v.Audit.Touch(now)
	return v, nil
}

// Release returns a copy with quantity moved back from reserved to
// available.
func (v Inventory) Release(quantity int, now time.Time) (Inventory, error) {
	if quantity <= 0 {
		return Inventory{}, fmt.Errorf("release quantity must be positive, got %d", quantity)
	}
	if quantity > v.Reserved {
		return Inventory{}, fmt.Errorf("release exceeds reservation: reserved %d, requested %d", v.Reserved, quantity)
	}
	v.Available += quantity
	v.Reserved -= quantity
	v.Audit = v.Audit.Touch(now)
	return v, nil
}

// IsDepleted reports whether nothing is available.
func (v Inventory) IsDepleted() bool { return v.Available == 0 }

// InventoryFactory creates inventory records for products.
type InventoryFactory struct {
	IDs   share.IDGenerator
	Clock share.Clock
}

// Create builds a new inventory with the initial stock and no
// reservations.
func (f InventoryFactory) Create(productID string, initial int) (Inventory, error) {
	return ReconstructInventory(f.IDs.NewID(), productID, initial, 0, share.NewAuditInfo(f.Clock.Now()))
}

// Inventories is the inventory repository contract, keyed by product.
type Inventories interface {
	FindByProductID(ctx context.Context, productID string) (*Inventory, error)
	Save(ctx context.Context, v Inventory) error
}
