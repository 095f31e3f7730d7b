package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrEthical07/shopflow/share"
)

// ErrCategoryNotFound reports a reference to a category the catalog does
// not hold.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryID identifies a Category. UUID-backed.
type CategoryID struct {
	value string
}

// ParseCategoryID validates raw as a UUID identifier.
func ParseCategoryID(raw string) (CategoryID, error) {
	if !share.ValidID(raw) {
		return CategoryID{}, fmt.Errorf("invalid category id: %q", raw)
	}
	return CategoryID{value: raw}, nil
}

// String returns the identifier text.
func (id CategoryID) String() string { return id.value }

// Category is a catalog grouping. ParentID is empty for root categories.
type Category struct {
	ID          CategoryID
	Name        string
	Description string
	ParentID    string
	Audit       share.AuditInfo
}

// ReconstructCategory rebuilds a persisted category through the creation
// validation.
func ReconstructCategory(id, name, description, parentID string, audit share.AuditInfo) (Category, error) {
	categoryID, err := ParseCategoryID(id)
	if err != nil {
		return Category{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Category{}, errors.New("category requires a name")
	}
	if parentID != "" && !share.ValidID(parentID) {
		return Category{}, fmt.Errorf("invalid parent category id: %q", parentID)
	}
	if parentID == id {
		return Category{}, errors.New("category cannot be its own parent")
	}
	return Category{ID: categoryID, Name: name, Description: description, ParentID: parentID, Audit: audit}, nil
}

// IsRoot reports whether the category has no parent.
func (c Category) IsRoot() bool { return c.ParentID == "" }

// CategoryFactory creates categories with fresh identifiers.
type CategoryFactory struct {
	IDs   share.IDGenerator
	Clock share.Clock
}

// Create builds a new category under the parent.
func (f CategoryFactory) Create(name, description, parentID string) (Category, error) {
	return ReconstructCategory(f.IDs.NewID(), name, description, parentID, share.NewAuditInfo(f.Clock.Now()))
}

// CreateRoot builds a new top-level category.
func (f CategoryFactory) CreateRoot(name, description string) (Category, error) {
	return f.Create(name, description, "")
}

// Categories is the category repository contract.
type Categories interface {
	FindByID(ctx context.Context, id CategoryID) (*Category, error)
	Save(ctx context.Context, c Category) error
}
