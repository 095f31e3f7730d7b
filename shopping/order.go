package shopping

import (
	"fmt"
	"time"

	"github.com/MrEthical07/shopflow/share"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "PLACED"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// legal order transitions
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPlaced: {OrderPaid, OrderCancelled},
	OrderPaid:   {OrderShipped, OrderCancelled},
}

// OrderID identifies an Order. UUID-backed.
type OrderID struct {
	value string
}

// ParseOrderID validates raw as a UUID identifier.
func ParseOrderID(raw string) (OrderID, error) {
	if !share.ValidID(raw) {
		return OrderID{}, fmt.Errorf("invalid order id: %q", raw)
	}
	return OrderID{value: raw}, nil
}

// String returns the identifier text.
func (id OrderID) String() string { return id.value }

// OrderLine is a priced line captured from the cart at placement time.
type OrderLine struct {
	ProductID string
	Quantity  int
	UnitPrice int64
}

// Order is the aggregate: the lines and total are frozen at placement.
type Order struct {
	ID        OrderID
	AccountID string
	Lines     []OrderLine
	Total     int64
	Status    OrderStatus
	Audit     share.AuditInfo
}

// ReconstructOrder rebuilds a persisted order through the creation
// validation.
func ReconstructOrder(id, accountID string, lines []OrderLine, total int64, status OrderStatus, audit share.AuditInfo) (Order, error) {
	orderID, err := ParseOrderID(id)
	if err != nil {
		return Order{}, err
	}
	if !share.ValidID(accountID) {
		return Order{}, fmt.Errorf("invalid account id: %q", accountID)
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}
	switch status {
	case OrderPlaced, OrderPaid, OrderShipped, OrderCancelled:
	default:
		return Order{}, fmt.Errorf("unknown order status: %q", status)
	}
	if total < 0 {
		return Order{}, fmt.Errorf("order total must not be negative, got %d", total)
	}
	return Order{ID: orderID, AccountID: accountID, Lines: lines, Total: total, Status: status, Audit: audit}, nil
}

// Transition returns a copy in the target status, rejecting moves the
// lifecycle does not allow.
func (o Order) Transition(to OrderStatus, now time.Time) (Order, error) {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == to {
			o.Status = to
			o.Audit = o.Audit.Touch(now)
			return o, nil
		}
	}
	return Order{}, fmt.Errorf("order cannot move from %s to %s", o.Status, to)
}

// OrderFactory places orders from carts.
type OrderFactory struct {
	IDs   share.IDGenerator
	Clock share.Clock
}

// Create places an order from a non-empty cart, freezing its lines and
// total.
func (f OrderFactory) Create(cart Cart) (Order, error) {
	if len(cart.Items) == 0 {
		return Order{}, ErrEmptyCart
	}
	lines := make([]OrderLine, len(cart.Items))
	for i, item := range cart.Items {
		lines[i] = OrderLine{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: item.UnitPrice}
	}
	return ReconstructOrder(f.IDs.NewID(), cart.AccountID, lines, cart.Total(), OrderPlaced, share.NewAuditInfo(f.Clock.Now()))
}
