package product

import (
	"context"
	"fmt"
	"time"

	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/workflow"
)

// ---- create product ----

type (
	// CreateProductInput starts the pipeline with the raw catalog form
	// values and the opening stock level.
	CreateProductInput struct {
		Name         string
		Description  string
		BasePrice    int64
		SKU          string
		Categories   []string
		Images       []ProductImage
		InitialStock int
	}

	// SKUChecked certifies the SKU as unused at lookup time.
	SKUChecked struct {
		Input CreateProductInput
	}

	// CategoriesChecked certifies every referenced category exists.
	CategoriesChecked struct {
		Input CreateProductInput
	}

	// ProductDrafted carries the persisted product and the stock still to
	// open.
	ProductDrafted struct {
		Product      Product
		InitialStock int
	}

	// CreateProductDone is the terminal stage: the product and its opened
	// inventory.
	CreateProductDone struct {
		Product   Product
		Inventory Inventory
	}
)

type (
	CheckSKUUnusedStep      = workflow.Step[CreateProductInput, SKUChecked]
	ValidateCategoriesStep  = workflow.Step[SKUChecked, CategoriesChecked]
	CreateProductStep       = workflow.Step[CategoriesChecked, ProductDrafted]
	InitializeInventoryStep = workflow.Step[ProductDrafted, CreateProductDone]
)

// CheckSKUUnused rejects SKUs that already resolve to a product.
func CheckSKUUnused(products Products) CheckSKUUnusedStep {
	return func(ctx context.Context, in CreateProductInput) (SKUChecked, error) {
		existing, err := products.FindBySKU(ctx, in.SKU)
		if err != nil {
			return SKUChecked{}, workflow.Infra(err)
		}
		if existing != nil {
			return SKUChecked{}, workflow.Conflict(fmt.Errorf("%w: %q", ErrSKUTaken, in.SKU))
		}
		return SKUChecked{Input: in}, nil
	}
}

// ValidateCategories rejects references to categories the catalog does
// not hold.
func ValidateCategories(categories Categories) ValidateCategoriesStep {
	return func(ctx context.Context, in SKUChecked) (CategoriesChecked, error) {
		for _, raw := range in.Input.Categories {
			id, err := ParseCategoryID(raw)
			if err != nil {
				return CategoriesChecked{}, workflow.Invalid(err)
			}
			found, err := categories.FindByID(ctx, id)
			if err != nil {
				return CategoriesChecked{}, workflow.Infra(err)
			}
			if found == nil {
				return CategoriesChecked{}, workflow.NotFound(fmt.Errorf("%w: %q", ErrCategoryNotFound, raw))
			}
		}
		return CategoriesChecked{Input: in.Input}, nil
	}
}

// CreateProduct factory-creates the draft product and persists it.
func CreateProduct(factory ProductFactory, products Products) CreateProductStep {
	return func(ctx context.Context, in CategoriesChecked) (ProductDrafted, error) {
		p, err := factory.Create(in.Input.Name, in.Input.Description, in.Input.BasePrice, in.Input.SKU, in.Input.Categories, in.Input.Images)
		if err != nil {
			return ProductDrafted{}, workflow.Invalid(err)
		}
		if err := products.Save(ctx, p); err != nil {
			return ProductDrafted{}, workflow.Infra(err)
		}
		return ProductDrafted{Product: p, InitialStock: in.Input.InitialStock}, nil
	}
}

// InitializeInventory opens the product's inventory at the initial stock
// level.
func InitializeInventory(factory InventoryFactory, inventories Inventories) InitializeInventoryStep {
	return func(ctx context.Context, in ProductDrafted) (CreateProductDone, error) {
		v, err := factory.Create(in.Product.ID.String(), in.InitialStock)
		if err != nil {
			return CreateProductDone{}, workflow.Invalid(err)
		}
		if err := inventories.Save(ctx, v); err != nil {
			return CreateProductDone{}, workflow.Infra(err)
		}
		return CreateProductDone{Product: in.Product, Inventory: v}, nil
	}
}

// CreateProductWorkflow is the fixed product-creation pipeline.
type CreateProductWorkflow struct {
	run workflow.Step[CreateProductInput, CreateProductDone]
}

// NewCreateProductWorkflow wires the four steps in their fixed order.
func NewCreateProductWorkflow(checkSKU CheckSKUUnusedStep, checkCategories ValidateCategoriesStep, create CreateProductStep, openStock InitializeInventoryStep) *CreateProductWorkflow {
	return &CreateProductWorkflow{
		run: workflow.Then(workflow.Then(workflow.Then(checkSKU, checkCategories), create), openStock),
	}
}

// Execute runs the pipeline for one catalog entry.
func (w *CreateProductWorkflow) Execute(ctx context.Context, in CreateProductInput) (CreateProductDone, error) {
	return workflow.Run(ctx, "create product", w.run, in)
}

// ---- adjust inventory ----

type (
	// AdjustInventoryInput starts the pipeline with the product and the
	// signed quantity change.
	AdjustInventoryInput struct {
		ProductID string
		Delta     int
	}

	// InventoryFound carries the loaded inventory onward.
	InventoryFound struct {
		Inventory Inventory
		Delta     int
	}

	// AdjustInventoryDone is the terminal stage: the adjusted inventory.
	AdjustInventoryDone struct {
		Inventory Inventory
	}
)

type (
	FindInventoryStep  = workflow.Step[AdjustInventoryInput, InventoryFound]
	AdjustQuantityStep = workflow.Step[InventoryFound, AdjustInventoryDone]
)

// FindInventory loads the product's inventory; a miss is a domain
// outcome.
func FindInventory(inventories Inventories) FindInventoryStep {
	return func(ctx context.Context, in AdjustInventoryInput) (InventoryFound, error) {
		v, err := inventories.FindByProductID(ctx, in.ProductID)
		if err != nil {
			return InventoryFound{}, workflow.Infra(err)
		}
		if v == nil {
			return InventoryFound{}, workflow.NotFound(fmt.Errorf("%w: product %q", ErrInventoryNotFound, in.ProductID))
		}
		return InventoryFound{Inventory: *v, Delta: in.Delta}, nil
	}
}

// AdjustQuantity applies the delta under the non-negative invariant and
// persists the adjusted inventory.
func AdjustQuantity(inventories Inventories, clock share.Clock) AdjustQuantityStep {
	return func(ctx context.Context, in InventoryFound) (AdjustInventoryDone, error) {
		adjusted, err := in.Inventory.Adjust(in.Delta, clock.Now())
		if err != nil {
			return AdjustInventoryDone{}, workflow.Invalid(err)
		}
		if err := inventories.Save(ctx, adjusted); err != nil {
			return AdjustInventoryDone{}, workflow.Infra(err)
		}
		return AdjustInventoryDone{Inventory: adjusted}, nil
	}
}

// AdjustInventoryWorkflow is the fixed stock-adjustment pipeline.
type AdjustInventoryWorkflow struct {
	run workflow.Step[AdjustInventoryInput, AdjustInventoryDone]
}

// NewAdjustInventoryWorkflow wires the two steps in their fixed order.
func NewAdjustInventoryWorkflow(find FindInventoryStep, adjust AdjustQuantityStep) *AdjustInventoryWorkflow {
	return &AdjustInventoryWorkflow{run: workflow.Then(find, adjust)}
}

// Execute runs the pipeline for one stock movement.
func (w *AdjustInventoryWorkflow) Execute(ctx context.Context, in AdjustInventoryInput) (AdjustInventoryDone, error) {
	return workflow.Run(ctx, "adjust inventory", w.run, in)
}

// ---- create promotion ----

type (
	// CreatePromotionInput starts the pipeline with the discount terms.
	CreatePromotionInput struct {
		Name        string
		Description string
		Type        DiscountType
		Value       int64
		Start       time.Time
		End         time.Time
		Products    []string
	}

	// PromotionProductsChecked certifies every targeted product exists.
	PromotionProductsChecked struct {
		Input CreatePromotionInput
	}

	// CreatePromotionDone is the terminal stage: the persisted promotion.
	CreatePromotionDone struct {
		Promotion Promotion
	}
)

type (
	ValidateProductsStep = workflow.Step[CreatePromotionInput, PromotionProductsChecked]
	CreatePromotionStep  = workflow.Step[PromotionProductsChecked, CreatePromotionDone]
)

// ValidateProducts rejects promotions targeting products the catalog does
// not hold. An empty target list covers the whole catalog and passes.
func ValidateProducts(products Products) ValidateProductsStep {
	return func(ctx context.Context, in CreatePromotionInput) (PromotionProductsChecked, error) {
		for _, raw := range in.Products {
			id, err := ParseProductID(raw)
			if err != nil {
				return PromotionProductsChecked{}, workflow.Invalid(err)
			}
			found, err := products.FindByID(ctx, id)
			if err != nil {
				return PromotionProductsChecked{}, workflow.Infra(err)
			}
			if found == nil {
				return PromotionProductsChecked{}, workflow.NotFound(fmt.Errorf("%w: %q", ErrProductNotFound, raw))
			}
		}
		return PromotionProductsChecked{Input: in}, nil
	}
}

// CreatePromotion factory-creates the inactive promotion and persists it.
func CreatePromotion(factory PromotionFactory, promotions Promotions) CreatePromotionStep {
	return func(ctx context.Context, in PromotionProductsChecked) (CreatePromotionDone, error) {
		p, err := factory.Create(in.Input.Name, in.Input.Description, in.Input.Type, in.Input.Value, in.Input.Start, in.Input.End, in.Input.Products)
		if err != nil {
			return CreatePromotionDone{}, workflow.Invalid(err)
		}
		if err := promotions.Save(ctx, p); err != nil {
			return CreatePromotionDone{}, workflow.Infra(err)
		}
		return CreatePromotionDone{Promotion: p}, nil
	}
}

// CreatePromotionWorkflow is the fixed promotion-creation pipeline.
type CreatePromotionWorkflow struct {
	run workflow.Step[CreatePromotionInput, CreatePromotionDone]
}

// NewCreatePromotionWorkflow wires the two steps in their fixed order.
func NewCreatePromotionWorkflow(check ValidateProductsStep, create CreatePromotionStep) *CreatePromotionWorkflow {
	return &CreatePromotionWorkflow{run: workflow.Then(check, create)}
}

// Execute runs the pipeline for one promotion.
func (w *CreatePromotionWorkflow) Execute(ctx context.Context, in CreatePromotionInput) (CreatePromotionDone, error) {
	return workflow.Run(ctx, "create promotion", w.run, in)
}
