package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/workflow"
)

// fakeProducts is a map-backed Products keyed by sku and id.
type fakeProducts struct {
	bySKU   map[string]Product
	findErr error
	saves   int
}

func (f *fakeProducts) FindBySKU(ctx context.Context, sku string) (*Product, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	p, ok := f.bySKU[sku]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProducts) FindByID(ctx context.Context, id ProductID) (*Product, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, p := range f.bySKU {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) Save(ctx context.Context, p Product) error {
	f.saves++
	if f.bySKU == nil {
		f.bySKU = map[string]Product{}
	}
	f.bySKU[p.SKU] = p
	return nil
}

type fakeCategories struct {
	byID map[string]Category
}

func (f *fakeCategories) FindByID(ctx context.Context, id CategoryID) (*Category, error) {
	c, ok := f.byID[id.String()]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCategories) Save(ctx context.Context, c Category) error {
	if f.byID == nil {
		f.byID = map[string]Category{}
	}
	f.byID[c.ID.String()] = c
	return nil
}

type fakeInventories struct {
	byProduct map[string]Inventory
	saves     int
}

func (f *fakeInventories) FindByProductID(ctx context.Context, productID string) (*Inventory, error) {
	v, ok := f.byProduct[productID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (f *fakeInventories) Save(ctx context.Context, v Inventory) error {
	f.saves++
	if f.byProduct == nil {
		f.byProduct = map[string]Inventory{}
	}
	f.byProduct[v.ProductID] = v
	return nil
}

type fakePromotions struct {
	saved []Promotion
}

func (f *fakePromotions) FindByID(ctx context.Context, id PromotionID) (*Promotion, error) {
	for _, p := range f.saved {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePromotions) Save(ctx context.Context, p Promotion) error {
	f.saved = append(f.saved, p)
	return nil
}

func createProductFixture(t *testing.T) (*CreateProductWorkflow, *fakeProducts, *fakeCategories, *fakeInventories) {
	t.Helper()
	products := &fakeProducts{bySKU: map[string]Product{}}
	categories := &fakeCategories{byID: map[string]Category{}}
	inventories := &fakeInventories{byProduct: map[string]Inventory{}}
	ids := share.UUIDGenerator{}
	clock := fixedClock{t: t0}
	wf := NewCreateProductWorkflow(
		CheckSKUUnused(products),
		ValidateCategories(categories),
		CreateProduct(ProductFactory{IDs: ids, Clock: clock}, products),
		InitializeInventory(InventoryFactory{IDs: ids, Clock: clock}, inventories),
	)
	return wf, products, categories, inventories
}

func createProductInput(categories ...string) CreateProductInput {
	return CreateProductInput{
		Name:         "コーヒー豆 200g",
		Description:  "深煎り",
		BasePrice:    1280,
		SKU:          "COF-200-DK",
		Categories:   categories,
		InitialStock: 25,
	}
}

func TestCreateProductOpensInventory(t *testing.T) {
	wf, products, categories, inventories := createProductFixture(t)
	cf := CategoryFactory{IDs: share.UUIDGenerator{}, Clock: fixedClock{t: t0}}
	coffee, err := cf.CreateRoot("コーヒー", "")
	if err != nil {
		t.Fatalf("CreateRoot: %v", err)
	}
	if err := categories.Save(context.Background(), coffee); err != nil {
		t.Fatalf("Save category: %v", err)
	}

	out, err := wf.Execute(context.Background(), createProductInput(coffee.ID.String()))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Product.Status != ProductDraft {
		t.Fatalf("status = %q", out.Product.Status)
	}
	if out.Inventory.ProductID != out.Product.ID.String() {
		t.Fatal("inventory opened for a different product")
	}
	if out.Inventory.Available != 25 || out.Inventory.Reserved != 0 {
		t.Fatalf("inventory = %+v", out.Inventory)
	}
	if products.saves != 1 || inventories.saves != 1 {
		t.Fatalf("saves: products %d, inventories %d", products.saves, inventories.saves)
	}
}

func TestCreateProductDuplicateSKUConflicts(t *testing.T) {
	wf, products, _, inventories := createProductFixture(t)
	if _, err := wf.Execute(context.Background(), createProductInput()); err != nil {
		t.Fatalf("first product: %v", err)
	}
	_, err := wf.Execute(context.Background(), createProductInput())
	if !errors.Is(err, ErrSKUTaken) {
		t.Fatalf("err = %v", err)
	}
	if workflow.KindOf(err) != workflow.KindConflict {
		t.Fatalf("kind = %v", workflow.KindOf(err))
	}
	if products.saves != 1 || inventories.saves != 1 {
		t.Fatal("duplicate sku reached persistence")
	}
}

func TestCreateProductUnknownCategory(t *testing.T) {
	wf, products, _, _ := createProductFixture(t)
	_, err := wf.Execute(context.Background(), createProductInput("3f7a1b2c-9d8e-4f50-a1b2-c3d4e5f60718"))
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("err = %v", err)
	}
	if workflow.KindOf(err) != workflow.KindNotFound {
		t.Fatalf("kind = %v", workflow.KindOf(err))
	}
	if products.saves != 0 {
		t.Fatal("product persisted despite unknown category")
	}
}

func TestCreateProductStoreFailureIsInfrastructure(t *testing.T) {
	wf, products, _, _ := createProductFixture(t)
	products.findErr = errors.New("connection refused")
	_, err := wf.Execute(context.Background(), createProductInput())
	if workflow.KindOf(err) != workflow.KindInfrastructure {
		t.Fatalf("kind = %v", workflow.KindOf(err))
	}
}

func adjustFixture(t *testing.T) (*AdjustInventoryWorkflow, *fakeInventories, string) {
	t.Helper()
	inventories := &fakeInventories{byProduct: map[string]Inventory{}}
	f := InventoryFactory{IDs: share.UUIDGenerator{}, Clock: fixedClock{t: t0}}
	productID := productFixture(t).ID.String()
	v, err := f.Create(productID, 10)
	if err != nil {
		t.Fatalf("Create inventory: %v", err)
	}
	if err := inventories.Save(context.Background(), v); err != nil {
		t.Fatalf("Save: %v", err)
	}
	inventories.saves = 0
	wf := NewAdjustInventoryWorkflow(
		FindInventory(inventories),
		AdjustQuantity(inventories, fixedClock{t: t0.Add(time.Minute)}),
	)
	return wf, inventories, productID
}

func TestAdjustInventoryPersistsNewQuantity(t *testing.T) {
	wf, inventories, productID := adjustFixture(t)
	out, err := wf.Execute(context.Background(), AdjustInventoryInput{ProductID: productID, Delta: -4})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Inventory.Available != 6 {
		t.Fatalf("available = %d", out.Inventory.Available)
	}
	if inventories.byProduct[productID].Available != 6 {
		t.Fatal("adjustment not persisted")
	}
}

func TestAdjustInventoryBelowZeroIsValidation(t *testing.T) {
	wf, inventories, productID := adjustFixture(t)
	_, err := wf.Execute(context.Background(), AdjustInventoryInput{ProductID: productID, Delta: -11})
	if workflow.KindOf(err) != workflow.KindValidation {
		t.Fatalf("kind = %v", workflow.KindOf(err))
	}
	if inventories.saves != 0 {
		t.Fatal("rejected adjustment persisted")
	}
}

func TestAdjustInventoryUnknownProduct(t *testing.T) {
	wf, _, _ := adjustFixture(t)
	_, err := wf.Execute(context.Background(), AdjustInventoryInput{ProductID: productFixture(t).ID.String(), Delta: 1})
	if !errors.Is(err, ErrInventoryNotFound) {
		t.Fatalf("err = %v", err)
	}
	if workflow.KindOf(err) != workflow.KindNotFound {
		t.Fatalf("kind = %v", workflow.KindOf(err))
	}
}

func promotionWorkflowFixture(t *testing.T) (*CreatePromotionWorkflow, *fakeProducts, *fakePromotions) {
	t.Helper()
	products := &fakeProducts{bySKU: map[string]Product{}}
	promotions := &fakePromotions{}
	wf := NewCreatePromotionWorkflow(
		ValidateProducts(products),
		CreatePromotion(PromotionFactory{IDs: share.UUIDGenerator{}, Clock: fixedClock{t: t0}}, promotions),
	)
	return wf, products, promotions
}

func TestCreatePromotionForCatalog(t *testing.T) {
	wf, _, promotions := promotionWorkflowFixture(t)
	out, err := wf.Execute(context.Background(), CreatePromotionInput{
		Name:  "夏セール",
		Type:  DiscountPercentage,
		Value: 15,
		Start: t0,
		End:   t0.Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Promotion.Active {
		t.Fatal("new promotion active")
	}
	if len(promotions.saved) != 1 {
		t.Fatalf("saved = %d", len(promotions.saved))
	}
}

func TestCreatePromotionUnknownProduct(t *testing.T) {
	wf, _, promotions := promotionWorkflowFixture(t)
	_, err := wf.Execute(context.Background(), CreatePromotionInput{
		Name:     "限定セール",
		Type:     DiscountPercentage,
		Value:    15,
		Start:    t0,
		End:      t0.Add(time.Hour),
		Products: []string{productFixture(t).ID.String()},
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v", err)
	}
	if len(promotions.saved) != 0 {
		t.Fatal("promotion persisted despite unknown product")
	}
}

func TestCreatePromotionInvertedWindowIsValidation(t *testing.T) {
	wf, _, _ := promotionWorkflowFixture(t)
	_, err := wf.Execute(context.Background(), CreatePromotionInput{
		Name:  "x",
		Type:  DiscountPercentage,
		Value: 15,
		Start: t0.Add(time.Hour),
		End:   t0,
	})
	if workflow.KindOf(err) != workflow.KindValidation {
		t.Fatalf("kind = %v", workflow.KindOf(err))
	}
}
