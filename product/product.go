package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrEthical07/shopflow/share"
)

// ErrSKUTaken reports a product creation against an SKU already in the
// catalog.
var ErrSKUTaken = errors.New("sku already exists")

// ProductStatus is the catalog lifecycle state.
type ProductStatus string

const (
	ProductDraft    ProductStatus = "DRAFT"
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
	ProductRetired  ProductStatus = "RETIRED"
)

// ParseProductStatus validates raw as a known status.
func ParseProductStatus(raw string) (ProductStatus, error) {
	switch s := ProductStatus(raw); s {
	case ProductDraft, ProductActive, ProductInactive, ProductRetired:
		return s, nil
	default:
		return "", fmt.Errorf("unknown product status: %q", raw)
	}
}

// ProductID identifies a Product. UUID-backed.
type ProductID struct {
	value string
}

// ParseProductID validates raw as a UUID identifier.
func ParseProductID(raw string) (ProductID, error) {
	if !share.ValidID(raw) {
		return ProductID{}, fmt.Errorf("invalid product id: %q", raw)
	}
	return ProductID{value: raw}, nil
}

// String returns the identifier text.
func (id ProductID) String() string { return id.value }

// ProductImage is one catalog image. At most one image per product is
// primary.
type ProductImage struct {
	URL       string
	AltText   string
	IsPrimary bool
}

// Product is the catalog aggregate. BasePrice is in the smallest currency
// unit. Categories holds category identifiers.
type Product struct {
	ID          ProductID
	Name        string
	Description string
	BasePrice   int64
	SKU         string
	Categories  []string
	Status      ProductStatus
	Images      []ProductImage
	Audit       share.AuditInfo
}

// ReconstructProduct rebuilds a persisted product through the creation
// validation.
func ReconstructProduct(id, name, description string, basePrice int64, sku string, categories []string, status ProductStatus, images []ProductImage, audit share.AuditInfo) (Product, error) {
	productID, err := ParseProductID(id)
	if err != nil {
		return Product{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Product{}, errors.New("product requires a name")
	}
	if strings.TrimSpace(sku) == "" {
		return Product{}, errors.New("product requires an sku")
	}
	if basePrice < 0 {
		return Product{}, fmt.Errorf("product base price must not be negative, got %d", basePrice)
	}
	for _, categoryID := range categories {
		if !share.ValidID(categoryID) {
			return Product{}, fmt.Errorf("invalid category id: %q", categoryID)
		}
	}
	if _, err := ParseProductStatus(string(status)); err != nil {
		return Product{}, err
	}
	if err := validateImages(images); err != nil {
		return Product{}, err
	}
	return Product{
		ID:          productID,
		Name:        name,
		Description: description,
		BasePrice:   basePrice,
		SKU:         sku,
		Categories:  categories,
		Status:      status,
		Images:      images,
		Audit:       audit,
	}, nil
}

func validateImages(images []ProductImage) error {
	primaries := 0
	for _, img := range images {
		if strings.TrimSpace(img.URL) == "" {
			return errors.New("product image requires a url")
		}
		if img.IsPrimary {
			primaries++
		}
	}
	if primaries > 1 {
		return fmt.Errorf("product allows one primary image, got %d", primaries)
	}
	return nil
}

// UpdateInfo returns a copy with the catalog fields replaced. The SKU and
// status never change through this path.
func (p Product) UpdateInfo(name, description string, basePrice int64, categories []string, images []ProductImage, now time.Time) (Product, error) {
	updated, err := ReconstructProduct(p.ID.String(), name, description, basePrice, p.SKU, categories, p.Status, images, p.Audit)
	if err != nil {
		return Product{}, err
	}
	updated.Audit = updated.Audit.Touch(now)
	return updated, nil
}

// ChangeStatus returns a copy in the target status. Retirement is final.
func (p Product) ChangeStatus(to ProductStatus, now time.Time) (Product, error) {
	if _, err := ParseProductStatus(string(to)); err != nil {
		return Product{}, err
	}
	if p.Status == to {
		return p, nil
	}
	if p.Status == ProductRetired {
		return Product{}, errors.New("retired product cannot change status")
	}
	p.Status = to
	p.Audit = p.Audit.Touch(now)
	return p, nil
}

// IsSellable reports whether the product can be ordered.
func (p Product) IsSellable() bool { return p.Status == ProductActive }

// ProductFactory creates draft products with fresh identifiers.
type ProductFactory struct {
	IDs   share.IDGenerator
	Clock share.Clock
}

// Create builds a new product in DRAFT status.
func (f ProductFactory) Create(name, description string, basePrice int64, sku string, categories []string, images []ProductImage) (Product, error) {
	return ReconstructProduct(f.IDs.NewID(), name, description, basePrice, sku, categories, ProductDraft, images, share.NewAuditInfo(f.Clock.Now()))
}

// Products is the product repository contract. A miss is (nil, nil);
// errors are reserved for infrastructure.
type Products interface {
	FindByID(ctx context.Context, id ProductID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	Save(ctx context.Context, p Product) error
}
