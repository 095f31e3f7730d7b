package product

import (
	"errors"
	"testing"
	"time"

	"github.com/MrEthical07/shopflow/share"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

var t0 = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

const categoryID = "3f7a1b2c-9d8e-4f50-a1b2-c3d4e5f60718"

func productFixture(t *testing.T) Product {
	t.Helper()
	f := ProductFactory{IDs: share.UUIDGenerator{}, Clock: fixedClock{t: t0}}
	p, err := f.Create("コーヒー豆 200g", "深煎り", 1280, "COF-200-DK", []string{categoryID}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return p
}

func TestProductFactoryCreatesDraft(t *testing.T) {
	p := productFixture(t)
	if p.Status != ProductDraft {
		t.Fatalf("status = %q", p.Status)
	}
	if p.IsSellable() {
		t.Fatal("draft product sellable")
	}
}

func TestProductValidation(t *testing.T) {
	f := ProductFactory{IDs: share.UUIDGenerator{}, Clock: fixedClock{t: t0}}
	cases := []struct {
		name string
		run  func() error
	}{
		{"blank name", func() error {
			_, err := f.Create("  ", "d", 100, "SKU-1", nil, nil)
			return err
		}},
		{"blank sku", func() error {
			_, err := f.Create("n", "d", 100, "", nil, nil)
			return err
		}},
		{"negative price", func() error {
			_, err := f.Create("n", "d", -1, "SKU-1", nil, nil)
			return err
		}},
		{"bad category id", func() error {
			_, err := f.Create("n", "d", 100, "SKU-1", []string{"nope"}, nil)
			return err
		}},
		{"two primary images", func() error {
			_, err := f.Create("n", "d", 100, "SKU-1", nil, []ProductImage{
				{URL: "https://img/1", IsPrimary: true},
				{URL: "https://img/2", IsPrimary: true},
			})
			return err
		}},
		{"blank image url", func() error {
			_, err := f.Create("n", "d", 100, "SKU-1", nil, []ProductImage{{URL: " "}})
			return err
		}},
	}
	for _, c := range cases {
		if c.run() == nil {
			t.Errorf("%s accepted", c.name)
		}
	}
}

func TestProductStatusChanges(t *testing.T) {
	p := productFixture(t)
	active, err := p.ChangeStatus(ProductActive, t0.Add(time.Minute))
	if err != nil {
		t.Fatalf("to active: %v", err)
	}
	if !active.IsSellable() {
		t.Fatal("active product not sellable")
	}
	if p.Status != ProductDraft {
		t.Fatal("receiver mutated")
	}
	retired, err := active.ChangeStatus(ProductRetired, t0.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("to retired: %v", err)
	}
	if _, err := retired.ChangeStatus(ProductActive, t0); err == nil {
		t.Error("retired product reactivated")
	}
	if _, err := p.ChangeStatus("UNKNOWN", t0); err == nil {
		t.Error("unknown status accepted")
	}
}

func TestProductUpdateInfoKeepsSKU(t *testing.T) {
	p := productFixture(t)
	updated, err := p.UpdateInfo("新しい名前", "説明", 1500, nil, nil, t0.Add(time.Minute))
	if err != nil {
		t.Fatalf("UpdateInfo: %v", err)
	}
	if updated.SKU != p.SKU {
		t.Fatalf("sku changed to %q", updated.SKU)
	}
	if updated.BasePrice != 1500 {
		t.Fatalf("price = %d", updated.BasePrice)
	}
	if _, err := p.UpdateInfo("", "d", 100, nil, nil, t0); err == nil {
		t.Error("blank name accepted")
	}
}

func TestCategoryHierarchy(t *testing.T) {
	f := CategoryFactory{IDs: share.UUIDGenerator{}, Clock: fixedClock{t: t0}}
	root, err := f.CreateRoot("飲料", "すべての飲み物")
	if err != nil {
		t.Fatalf("CreateRoot: %v", err)
	}
	if !root.IsRoot() {
		t.Fatal("root category has a parent")
	}
	child, err := f.Create("コーヒー", "", root.ID.String())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if child.IsRoot() || child.ParentID != root.ID.String() {
		t.Fatalf("child = %+v", child)
	}
	if _, err := f.Create("", "", ""); err == nil {
		t.Error("blank name accepted")
	}
	if _, err := f.Create("x", "", "not-a-uuid"); err == nil {
		t.Error("bad parent id accepted")
	}
}

func TestCategoryCannotParentItself(t *testing.T) {
	if _, err := ReconstructCategory(categoryID, "n", "", categoryID, share.NewAuditInfo(t0)); err == nil {
		t.Fatal("self-parented category accepted")
	}
}

func inventoryFixture(t *testing.T) Inventory {
	t.Helper()
	f := InventoryFactory{IDs: share.UUIDGenerator{}, Clock: fixedClock{t: t0}}
	v, err := f.Create(productFixture(t).ID.String(), 10)
	if err != nil {
		t.Fatalf("Create inventory: %v", err)
	}
	return v
}

func TestInventoryAdjustStaysNonNegative(t *testing.T) {
	v := inventoryFixture(t)
	received, err := v.Adjust(5, t0.Add(time.Minute))
	if err != nil || received.Available != 15 {
		t.Fatalf("Adjust +5: %+v %v", received, err)
	}
	shipped, err := received.Adjust(-15, t0.Add(2*time.Minute))
	if err != nil || shipped.Available != 0 {
		t.Fatalf("Adjust -15: %+v %v", shipped, err)
	}
	if !shipped.IsDepleted() {
		t.Fatal("zero stock not depleted")
	}
	if _, err := shipped.Adjust(-1, t0); err == nil {
		t.Error("negative stock accepted")
	}
	if v.Available != 10 {
		t.Fatal("receiver mutated")
	}
}

func TestInventoryReserveAndRelease(t *testing.T) {
	v := inventoryFixture(t)
	reserved, err := v.Reserve(4, t0.Add(time.Minute))
	if err != nil || reserved.Available != 6 || reserved.Reserved != 4 {
		t.Fatalf("Reserve: %+v %v", reserved, err)
	}
	if _, err := reserved.Reserve(7, t0); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("over-reserve err = %v", err)
	}
	released, err := reserved.Release(4, t0.Add(2*time.Minute))
	if err != nil || released.Available != 10 || released.Reserved != 0 {
		t.Fatalf("Release: %+v %v", released, err)
	}
	if _, err := released.Release(1, t0); err == nil {
		t.Error("releasing beyond reservation accepted")
	}
	if _, err := v.Reserve(0, t0); err == nil {
		t.Error("zero reservation accepted")
	}
}

func TestInventoryFactoryRejectsNegativeStock(t *testing.T) {
	f := InventoryFactory{IDs: share.UUIDGenerator{}, Clock: fixedClock{t: t0}}
	if _, err := f.Create(productFixture(t).ID.String(), -1); err == nil {
		t.Fatal("negative initial stock accepted")
	}
}

func promotionFixture(t *testing.T, discountType DiscountType, value int64) Promotion {
	t.Helper()
	f := PromotionFactory{IDs: share.UUIDGenerator{}, Clock: fixedClock{t: t0}}
	p, err := f.Create("夏セール", "", discountType, value, t0, t0.Add(24*time.Hour), nil)
	if err != nil {
		t.Fatalf("Create promotion: %v", err)
	}
	return p
}

func TestPromotionValidation(t *testing.T) {
	f := PromotionFactory{IDs: share.UUIDGenerator{}, Clock: fixedClock{t: t0}}
	if _, err := f.Create("x", "", DiscountPercentage, 101, t0, t0.Add(time.Hour), nil); err == nil {
		t.Error("over-100 percentage accepted")
	}
	if _, err := f.Create("x", "", DiscountFixedAmount, -5, t0, t0.Add(time.Hour), nil); err == nil {
		t.Error("negative discount accepted")
	}
	if _, err := f.Create("x", "", DiscountPercentage, 10, t0.Add(time.Hour), t0, nil); err == nil {
		t.Error("inverted window accepted")
	}
	if _, err := f.Create("x", "", "HALF_OFF", 10, t0, t0.Add(time.Hour), nil); err == nil {
		t.Error("unknown discount type accepted")
	}
}

func TestPromotionStartsInactive(t *testing.T) {
	p := promotionFixture(t, DiscountPercentage, 10)
	if p.Active {
		t.Fatal("new promotion active")
	}
	if got := p.DiscountOn(1000, t0.Add(time.Hour)); got != 0 {
		t.Fatalf("inactive discount = %d", got)
	}
}

func TestPromotionDiscounts(t *testing.T) {
	p := promotionFixture(t, DiscountPercentage, 10)
	active, err := p.Activate(t0.Add(time.Minute))
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if got := active.DiscountOn(1000, t0.Add(time.Hour)); got != 100 {
		t.Fatalf("percentage discount = %d", got)
	}
	if got := active.DiscountOn(1000, t0.Add(48*time.Hour)); got != 0 {
		t.Fatalf("discount outside window = %d", got)
	}

	fixed, err := promotionFixture(t, DiscountFixedAmount, 500).Activate(t0.Add(time.Minute))
	if err != nil {
		t.Fatalf("Activate fixed: %v", err)
	}
	if got := fixed.DiscountOn(300, t0.Add(time.Hour)); got != 300 {
		t.Fatalf("fixed discount exceeded price: %d", got)
	}
}

func TestPromotionActivationWindow(t *testing.T) {
	p := promotionFixture(t, DiscountPercentage, 10)
	if _, err := p.Activate(t0.Add(48 * time.Hour)); err == nil {
		t.Fatal("closed promotion activated")
	}
	active, _ := p.Activate(t0.Add(time.Minute))
	inactive := active.Deactivate(t0.Add(2 * time.Minute))
	if inactive.Active {
		t.Fatal("Deactivate left promotion active")
	}
}

func TestPromotionAppliesTo(t *testing.T) {
	target := productFixture(t).ID.String()
	f := PromotionFactory{IDs: share.UUIDGenerator{}, Clock: fixedClock{t: t0}}
	p, err := f.Create("限定セール", "", DiscountPercentage, 20, t0, t0.Add(time.Hour), []string{target})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	active, _ := p.Activate(t0.Add(time.Minute))
	if !active.AppliesTo(target) {
		t.Fatal("targeted product not covered")
	}
	if active.AppliesTo(productFixture(t).ID.String()) {
		t.Fatal("untargeted product covered")
	}

	catalogWide, _ := promotionFixture(t, DiscountPercentage, 20).Activate(t0.Add(time.Minute))
	if !catalogWide.AppliesTo(target) {
		t.Fatal("empty target list should cover the catalog")
	}
}
