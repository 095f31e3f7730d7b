package shopping

import (
	"fmt"
	"time"

	"github.com/MrEthical07/shopflow/share"
)

// PaymentStatus is the payment lifecycle state.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentCaptured PaymentStatus = "CAPTURED"
	PaymentFailed   PaymentStatus = "FAILED"
)

// PaymentID identifies a Payment. UUID-backed.
type PaymentID struct {
	value string
}

// ParsePaymentID validates raw as a UUID identifier.
func ParsePaymentID(raw string) (PaymentID, error) {
	if !share.ValidID(raw) {
		return PaymentID{}, fmt.Errorf("invalid payment id: %q", raw)
	}
	return PaymentID{value: raw}, nil
}

// String returns the identifier text.
func (id PaymentID) String() string { return id.value }

// Payment settles one order. Amount is frozen at creation.
type Payment struct {
	ID      PaymentID
	OrderID OrderID
	Amount  int64
	Status  PaymentStatus
	Audit   share.AuditInfo
}

// ReconstructPayment rebuilds a persisted payment through the creation
// validation.
func ReconstructPayment(id string, orderID OrderID, amount int64, status PaymentStatus, audit share.AuditInfo) (Payment, error) {
	paymentID, err := ParsePaymentID(id)
	if err != nil {
		return Payment{}, err
	}
	if orderID.value == "" {
		return Payment{}, fmt.Errorf("payment requires an order id")
	}
	if amount <= 0 {
		return Payment{}, fmt.Errorf("payment amount must be positive, got %d", amount)
	}
	switch status {
	case PaymentPending, PaymentCaptured, PaymentFailed:
	default:
		return Payment{}, fmt.Errorf("unknown payment status: %q", status)
	}
	return Payment{ID: paymentID, OrderID: orderID, Amount: amount, Status: status, Audit: audit}, nil
}

// Capture moves a pending payment to captured.
func (p Payment) Capture(now time.Time) (Payment, error) {
	if p.Status != PaymentPending {
		return Payment{}, fmt.Errorf("payment in %s cannot be captured", p.Status)
	}
	p.Status = PaymentCaptured
	p.Audit = p.Audit.Touch(now)
	return p, nil
}

// MarkFailed moves a pending payment to failed.
func (p Payment) MarkFailed(now time.Time) (Payment, error) {
	if p.Status != PaymentPending {
		return Payment{}, fmt.Errorf("payment in %s cannot fail", p.Status)
	}
	p.Status = PaymentFailed
	p.Audit = p.Audit.Touch(now)
	return p, nil
}

// PaymentFactory opens pending payments for orders.
type PaymentFactory struct {
	IDs   share.IDGenerator
	Clock share.Clock
}

// Create opens a pending payment over the order's total.
func (f PaymentFactory) Create(order Order) (Payment, error) {
	return ReconstructPayment(f.IDs.NewID(), order.ID, order.Total, PaymentPending, share.NewAuditInfo(f.Clock.Now()))
}
