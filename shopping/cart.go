package shopping

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/shopflow/share"
)

// ErrEmptyCart reports an order attempt from a cart with no items.
var ErrEmptyCart = errors.New("cart is empty")

// CartID identifies a Cart. UUID-backed.
type CartID struct {
	value string
}

// ParseCartID validates raw as a UUID identifier.
func ParseCartID(raw string) (CartID, error) {
	if !share.ValidID(raw) {
		return CartID{}, fmt.Errorf("invalid cart id: %q", raw)
	}
	return CartID{value: raw}, nil
}

// String returns the identifier text.
func (id CartID) String() string { return id.value }

// CartItem is one product line in a cart. UnitPrice is in the smallest
// currency unit.
type CartItem struct {
	ProductID string
	Quantity  int
	UnitPrice int64
}

// Cart is the aggregate. Mutating methods return updated copies.
type Cart struct {
	ID        CartID
	AccountID string
	Items     []CartItem
	Audit     share.AuditInfo
}

// ReconstructCart rebuilds a persisted cart through the creation validation.
func ReconstructCart(id, accountID string, items []CartItem, audit share.AuditInfo) (Cart, error) {
	cartID, err := ParseCartID(id)
	if err != nil {
		return Cart{}, err
	}
	if !share.ValidID(accountID) {
		return Cart{}, fmt.Errorf("invalid account id: %q", accountID)
	}
	for _, item := range items {
		if err := validateItem(item); err != nil {
			return Cart{}, err
		}
	}
	return Cart{ID: cartID, AccountID: accountID, Items: items, Audit: audit}, nil
}

func validateItem(item CartItem) error {
	if item.ProductID == "" {
		return errors.New("cart item requires a product id")
	}
	if item.Quantity < 1 {
		return fmt.Errorf("cart item quantity must be >= 1, got %d", item.Quantity)
	}
	if item.UnitPrice < 0 {
		return fmt.Errorf("cart item unit price must not be negative, got %d", item.UnitPrice)
	}
	return nil
}

// AddItem returns a copy with the item added; lines for the same product
// merge by summing quantities.
func (c Cart) AddItem(item CartItem, now time.Time) (Cart, error) {
	if err := validateItem(item); err != nil {
		return Cart{}, err
	}
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	merged := false
	for i, existing := range items {
		if existing.ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			items[i].UnitPrice = item.UnitPrice
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}
	c.Items = items
	c.Audit = c.Audit.Touch(now)
	return c, nil
}

// UpdateQuantity returns a copy with the product's quantity replaced.
func (c Cart) UpdateQuantity(productID string, quantity int, now time.Time) (Cart, error) {
	if quantity < 1 {
		return Cart{}, fmt.Errorf("quantity must be >= 1, got %d", quantity)
	}
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	for i, existing := range items {
		if existing.ProductID == productID {
			items[i].Quantity = quantity
			c.Items = items
			c.Audit = c.Audit.Touch(now)
			return c, nil
		}
	}
	return Cart{}, fmt.Errorf("product %q not in cart", productID)
}

// RemoveItem returns a copy without the product's line.
func (c Cart) RemoveItem(productID string, now time.Time) (Cart, error) {
	items := make([]CartItem, 0, len(c.Items))
	found := false
	for _, existing := range c.Items {
		if existing.ProductID == productID {
			found = true
			continue
		}
		items = append(items, existing)
	}
	if !found {
		return Cart{}, fmt.Errorf("product %q not in cart", productID)
	}
	c.Items = items
	c.Audit = c.Audit.Touch(now)
	return c, nil
}

// Clear returns an emptied copy.
func (c Cart) Clear(now time.Time) Cart {
	c.Items = nil
	c.Audit = c.Audit.Touch(now)
	return c
}

// Total sums quantity times unit price across all lines.
func (c Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += int64(item.Quantity) * item.UnitPrice
	}
	return total
}

// CartFactory creates empty carts for accounts.
type CartFactory struct {
	IDs   share.IDGenerator
	Clock share.Clock
}

// Create builds a new empty cart.
func (f CartFactory) Create(accountID string) (Cart, error) {
	return ReconstructCart(f.IDs.NewID(), accountID, nil, share.NewAuditInfo(f.Clock.Now()))
}
