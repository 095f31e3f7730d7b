package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrEthical07/shopflow/share"
)

// ErrProductNotFound reports a reference to a product the catalog does
// not hold.
var ErrProductNotFound = errors.New("product not found")

// DiscountType selects how a promotion's value is applied.
type DiscountType string

const (
	// DiscountPercentage discounts by a whole percentage of the price.
	DiscountPercentage DiscountType = "PERCENTAGE"
	// DiscountFixedAmount discounts by a fixed amount in the smallest
	// currency unit, never past zero.
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

// ParseDiscountType validates raw as a known discount type.
func ParseDiscountType(raw string) (DiscountType, error) {
	switch d := DiscountType(raw); d {
	case DiscountPercentage, DiscountFixedAmount:
		return d, nil
	default:
		return "", fmt.Errorf("unknown discount type: %q", raw)
	}
}

// PromotionID identifies a Promotion. UUID-backed.
type PromotionID struct {
	value string
}

// ParsePromotionID validates raw as a UUID identifier.
func ParsePromotionID(raw string) (PromotionID, error) {
	if !share.ValidID(raw) {
		return PromotionID{}, fmt.Errorf("invalid promotion id: %q", raw)
	}
	return PromotionID{value: raw}, nil
}

// String returns the identifier text.
func (id PromotionID) String() string { return id.value }

// Promotion is a discount running inside a time window. An empty Products
// list applies it to the whole catalog. Promotions start inactive.
type Promotion struct {
	ID          PromotionID
	Name        string
	Description string
	Type        DiscountType
	Value       int64
	Start       time.Time
	End         time.Time
	Active      bool
	Products    []string
	Audit       share.AuditInfo
}

// ReconstructPromotion rebuilds a persisted promotion through the creation
// validation.
func ReconstructPromotion(id, name, description string, discountType DiscountType, value int64, start, end time.Time, active bool, products []string, audit share.AuditInfo) (Promotion, error) {
	promotionID, err := ParsePromotionID(id)
	if err != nil {
		return Promotion{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Promotion{}, errors.New("promotion requires a name")
	}
	if _, err := ParseDiscountType(string(discountType)); err != nil {
		return Promotion{}, err
	}
	if value < 0 {
		return Promotion{}, fmt.Errorf("discount value must not be negative, got %d", value)
	}
	if discountType == DiscountPercentage && value > 100 {
		return Promotion{}, fmt.Errorf("percentage discount cannot exceed 100, got %d", value)
	}
	if !end.After(start) {
		return Promotion{}, errors.New("promotion must end after it starts")
	}
	for _, productID := range products {
		if !share.ValidID(productID) {
			return Promotion{}, fmt.Errorf("invalid product id: %q", productID)
		}
	}
	return Promotion{
		ID:          promotionID,
		Name:        name,
		Description: description,
		Type:        discountType,
		Value:       value,
		Start:       start,
		End:         end,
		Active:      active,
		Products:    products,
		Audit:       audit,
	}, nil
}

// Activate returns an active copy. A promotion whose window has already
// closed cannot be activated.
func (p Promotion) Activate(now time.Time) (Promotion, error) {
	if p.Active {
		return p, nil
	}
	if now.After(p.End) {
		return Promotion{}, errors.New("promotion window has closed")
	}
	p.Active = true
	p.Audit = p.Audit.Touch(now)
	return p, nil
}

// Deactivate returns an inactive copy.
func (p Promotion) Deactivate(now time.Time) Promotion {
	if !p.Active {
		return p
	}
	p.Active = false
	p.Audit = p.Audit.Touch(now)
	return p
}

// DiscountOn returns the discount for a price at the given time. Outside
// the window, or while inactive, the discount is zero. A fixed-amount
// discount never exceeds the price.
func (p Promotion) DiscountOn(price int64, now time.Time) int64 {
	if !p.Active || now.Before(p.Start) || now.After(p.End) {
		return 0
	}
	if p.Type == DiscountFixedAmount {
		if p.Value > price {
			return price
		}
		return p.Value
	}
	return price * p.Value / 100
}

// AppliesTo reports whether the promotion covers the product.
func (p Promotion) AppliesTo(productID string) bool {
	if !p.Active {
		return false
	}
	if len(p.Products) == 0 {
		return true
	}
	for _, candidate := range p.Products {
		if candidate == productID {
			return true
		}
	}
	return false
}

// PromotionFactory creates inactive promotions with fresh identifiers.
type PromotionFactory struct {
	IDs   share.IDGenerator
	Clock share.Clock
}

// Create builds a new promotion. It starts inactive regardless of the
// window.
func (f PromotionFactory) Create(name, description string, discountType DiscountType, value int64, start, end time.Time, products []string) (Promotion, error) {
	return ReconstructPromotion(f.IDs.NewID(), name, description, discountType, value, start, end, false, products, share.NewAuditInfo(f.Clock.Now()))
}

// Promotions is the promotion repository contract.
type Promotions interface {
	FindByID(ctx context.Context, id PromotionID) (*Promotion, error)
	Save(ctx context.Context, p Promotion) error
}
