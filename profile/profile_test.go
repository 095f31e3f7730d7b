package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/workflow"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

var t0 = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

const ownerAccountID = "1fa0c9d2-6b37-4e45-8a19-c4d5e6f7a8b9"

func postal(t *testing.T) share.Address {
	t.Helper()
	a, err := share.NewAddress("231-0001", "神奈川県", "横浜市中区", "1-1-1")
	if err != nil {
		t.Fatalf("NewAddress: %v", err)
	}
	return a
}

func factories() (Factory, AddressFactory) {
	ids := share.UUIDGenerator{}
	clock := fixedClock{t: t0}
	return Factory{IDs: ids, Clock: clock}, AddressFactory{IDs: ids, Clock: clock}
}

func TestSingleDefaultAddressInvariant(t *testing.T) {
	pf, af := factories()
	clock := fixedClock{t: t0.Add(time.Minute)}

	p, err := pf.Create(ownerAccountID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	home, err := af.Create("home", postal(t), true)
	if err != nil {
		t.Fatalf("Create address: %v", err)
	}
	p, err = p.AddAddress(home, clock)
	if err != nil {
		t.Fatalf("AddAddress: %v", err)
	}

	work, err := af.Create("work", postal(t), true)
	if err != nil {
		t.Fatalf("Create address: %v", err)
	}
	p, err = p.AddAddress(work, clock)
	if err != nil {
		t.Fatalf("AddAddress: %v", err)
	}

	defaults := 0
	for _, a := range p.Addresses {
		if a.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Fatalf("profile carries %d defaults", defaults)
	}
	got, ok := p.DefaultAddress()
	if !ok || got.ID != work.ID {
		t.Fatalf("default = %+v, want the newest default", got)
	}
}

func TestAddDuplicateAddressID(t *testing.T) {
	pf, af := factories()
	clock := fixedClock{t: t0}
	p, _ := pf.Create(ownerAccountID)
	home, _ := af.Create("home", postal(t), false)
	p, err := p.AddAddress(home, clock)
	if err != nil {
		t.Fatalf("AddAddress: %v", err)
	}
	if _, err := p.AddAddress(home, clock); !errors.Is(err, ErrAddressExists) {
		t.Fatalf("err = %v", err)
	}
}

func TestRemoveAddress(t *testing.T) {
	pf, af := factories()
	clock := fixedClock{t: t0}
	p, _ := pf.Create(ownerAccountID)
	home, _ := af.Create("home", postal(t), true)
	p, _ = p.AddAddress(home, clock)

	updated, err := p.RemoveAddress(home.ID, clock)
	if err != nil {
		t.Fatalf("RemoveAddress: %v", err)
	}
	if len(updated.Addresses) != 0 {
		t.Fatalf("addresses = %d", len(updated.Addresses))
	}
	if len(p.Addresses) != 1 {
		t.Fatal("receiver mutated")
	}
	if _, err := updated.RemoveAddress(home.ID, clock); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestReconstructRejectsTwoDefaults(t *testing.T) {
	pf, af := factories()
	p, _ := pf.Create(ownerAccountID)
	a1, _ := af.Create("a", postal(t), true)
	a2, _ := af.Create("b", postal(t), true)
	_, err := ReconstructUserProfile(p.ID.String(), ownerAccountID, []Address{a1, a2}, p.Audit)
	if err == nil {
		t.Fatal("two defaults accepted")
	}
}

// fakeProfiles is a map-backed Profiles indexed both ways.
type fakeProfiles struct {
	byID      map[string]UserProfile
	byAccount map[string]UserProfile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: map[string]UserProfile{}, byAccount: map[string]UserProfile{}}
}

func (f *fakeProfiles) FindByID(ctx context.Context, id ProfileID) (*UserProfile, error) {
	p, ok := f.byID[id.String()]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProfiles) FindByAccountID(ctx context.Context, accountID string) (*UserProfile, error) {
	p, ok := f.byAccount[accountID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProfiles) Save(ctx context.Context, p UserProfile) error {
	f.byID[p.ID.String()] = p
	f.byAccount[p.AccountID] = p
	return nil
}

func TestCreateWorkflowConflictsOnSecondProfile(t *testing.T) {
	pf, _ := factories()
	profiles := newFakeProfiles()
	wf := NewCreateWorkflow(CheckNotAssociated(profiles), CreateProfile(pf, profiles))

	if _, err := wf.Execute(context.Background(), ownerAccountID); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := wf.Execute(context.Background(), ownerAccountID)
	if !errors.Is(err, ErrProfileExists) {
		t.Fatalf("err = %v", err)
	}
	if workflow.KindOf(err) != workflow.KindConflict {
		t.Fatalf("kind = %v", workflow.KindOf(err))
	}
	if len(profiles.byID) != 1 {
		t.Fatalf("store holds %d profiles", len(profiles.byID))
	}
}

func TestAddAndRemoveAddressWorkflows(t *testing.T) {
	pf, af := factories()
	clock := fixedClock{t: t0}
	profiles := newFakeProfiles()
	create := NewCreateWorkflow(CheckNotAssociated(profiles), CreateProfile(pf, profiles))
	add := NewAddAddressWorkflow(FindProfile(profiles), AttachAddress(af, profiles, clock))
	remove := NewRemoveAddressWorkflow(FindProfileForRemoval(profiles), DetachAddress(profiles, clock))

	created, err := create.Execute(context.Background(), ownerAccountID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	added, err := add.Execute(context.Background(), AddAddressInput{
		ProfileID: created.Profile.ID,
		Name:      "home",
		Postal:    postal(t),
		IsDefault: true,
	})
	if err != nil {
		t.Fatalf("add address: %v", err)
	}
	if len(added.Profile.Addresses) != 1 {
		t.Fatalf("addresses = %d", len(added.Profile.Addresses))
	}

	removed, err := remove.Execute(context.Background(), RemoveAddressInput{
		ProfileID: created.Profile.ID,
		AddressID: added.Profile.Addresses[0].ID,
	})
	if err != nil {
		t.Fatalf("remove address: %v", err)
	}
	if len(removed.Profile.Addresses) != 0 {
		t.Fatalf("addresses = %d after removal", len(removed.Profile.Addresses))
	}

	// Unknown profile is a not-found outcome.
	ghost, _ := ParseProfileID("0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9")
	_, err = add.Execute(context.Background(), AddAddressInput{ProfileID: ghost, Name: "x", Postal: postal(t)})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("err = %v", err)
	}
}
