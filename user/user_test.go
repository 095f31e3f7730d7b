package user

import (
	"context"
	"errors"
	"testing"

	"github.com/MrEthical07/shopflow/password"
	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/workflow"
)

func testHasher(t *testing.T) *password.Hasher {
	t.Helper()
	h, err := password.NewHasher(password.Config{MemoryKB: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	return h
}

func testAddress(t *testing.T) share.Address {
	t.Helper()
	a, err := share.NewAddress("530-0001", "大阪府", "大阪市北区梅田", "1-2-3")
	if err != nil {
		t.Fatalf("NewAddress: %v", err)
	}
	return a
}

func testEmail(t *testing.T, raw string) share.Email {
	t.Helper()
	email, err := share.NewEmail(raw)
	if err != nil {
		t.Fatalf("NewEmail(%q): %v", raw, err)
	}
	return email
}

func testHashed(t *testing.T) string {
	t.Helper()
	encoded, err := testHasher(t).Hash("open sesame 99")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	return encoded
}

func TestNewUserValidation(t *testing.T) {
	addr := testAddress(t)
	hashed := testHashed(t)
	id, err := ParseUserID("e2c1a6a8-30d1-4ab8-9a2e-5f6f7c1b2d3e")
	if err != nil {
		t.Fatalf("ParseUserID: %v", err)
	}

	u, err := NewUser(id, "太郎", "山田", addr, "06-1234-5678", hashed)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if got := u.FullName(); got != "山田 太郎" {
		t.Fatalf("FullName = %q", got)
	}

	cases := []struct {
		name                 string
		first, last, tel, pw string
	}{
		{"blank first name", "  ", "山田", "06-1234-5678", hashed},
		{"blank last name", "太郎", "", "06-1234-5678", hashed},
		{"blank telephone", "太郎", "山田", "", hashed},
		{"alphabetic telephone", "太郎", "山田", "phone", hashed},
		{"raw password", "太郎", "山田", "06-1234-5678", "raw password"},
	}
	for _, c := range cases {
		if _, err := NewUser(id, c.first, c.last, addr, c.tel, c.pw); err == nil {
			t.Errorf("%s accepted", c.name)
		}
	}
}

func TestReconstructUserValidatesID(t *testing.T) {
	if _, err := ReconstructUser("nope", "太郎", "山田", testAddress(t), "06-1234-5678", testHashed(t)); err == nil {
		t.Fatal("bad id accepted")
	}
}

// fakeUsers is a map-backed Users keyed by email.
type fakeUsers struct {
	byEmail map[string]User
	saves   int
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email share.Email) (*User, error) {
	u, ok := f.byEmail[email.String()]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsers) Save(ctx context.Context, u User, email share.Email) error {
	f.saves++
	if f.byEmail == nil {
		f.byEmail = map[string]User{}
	}
	f.byEmail[email.String()] = u
	return nil
}

func registerFixture(t *testing.T) (*RegisterWorkflow, *fakeUsers) {
	t.Helper()
	users := &fakeUsers{byEmail: map[string]User{}}
	hasher := testHasher(t)
	wf := NewRegisterWorkflow(
		CheckEmailUnused(users),
		HashPassword(hasher),
		CreateUser(Factory{IDs: share.UUIDGenerator{}}, users),
	)
	return wf, users
}

func registerInput(t *testing.T, email string) RegisterInput {
	t.Helper()
	return RegisterInput{
		FirstName:   "太郎",
		LastName:    "山田",
		Email:       testEmail(t, email),
		RawPassword: "open sesame 99",
		Address:     testAddress(t),
		Telephone:   "06-1234-5678",
	}
}

func TestRegisterPersistsHashedUser(t *testing.T) {
	wf, users := registerFixture(t)
	out, err := wf.Execute(context.Background(), registerInput(t, "taro@example.com"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if users.saves != 1 {
		t.Fatalf("saves = %d", users.saves)
	}
	stored := users.byEmail["taro@example.com"]
	if stored.PasswordHash == "open sesame 99" {
		t.Fatal("raw password persisted")
	}
	if stored.ID != out.User.ID {
		t.Fatal("returned user differs from persisted user")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	wf, users := registerFixture(t)
	if _, err := wf.Execute(context.Background(), registerInput(t, "taro@example.com")); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	_, err := wf.Execute(context.Background(), registerInput(t, "taro@example.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v", err)
	}
	if workflow.KindOf(err) != workflow.KindConflict {
		t.Fatalf("kind = %v", workflow.KindOf(err))
	}
	if users.saves != 1 {
		t.Fatalf("saves = %d after duplicate", users.saves)
	}
}

func TestRegisterShortPasswordIsValidation(t *testing.T) {
	wf, users := registerFixture(t)
	in := registerInput(t, "taro@example.com")
	in.RawPassword = "short"
	_, err := wf.Execute(context.Background(), in)
	if !errors.Is(err, password.ErrPasswordTooShort) {
		t.Fatalf("err = %v", err)
	}
	if workflow.KindOf(err) != workflow.KindValidation {
		t.Fatalf("kind = %v", workflow.KindOf(err))
	}
	if users.saves != 0 {
		t.Fatal("user persisted despite rejected password")
	}
}

// brokenHasher fails Hash with a canned error.
type brokenHasher struct{ err error }

func (b brokenHasher) Hash(string) (string, error) { return "", b.err }

func TestRegisterHasherFailureIsInfrastructure(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]User{}}
	wf := NewRegisterWorkflow(
		CheckEmailUnused(users),
		HashPassword(brokenHasher{err: errors.New("entropy source unavailable")}),
		CreateUser(Factory{IDs: share.UUIDGenerator{}}, users),
	)
	_, err := wf.Execute(context.Background(), registerInput(t, "taro@example.com"))
	if workflow.KindOf(err) != workflow.KindInfrastructure {
		t.Fatalf("kind = %v", workflow.KindOf(err))
	}
}

func TestRegisterInvalidTelephoneIsValidation(t *testing.T) {
	wf, users := registerFixture(t)
	in := registerInput(t, "taro@example.com")
	in.Telephone = "not a number"
	_, err := wf.Execute(context.Background(), in)
	if workflow.KindOf(err) != workflow.KindValidation {
		t.Fatalf("kind = %v", workflow.KindOf(err))
	}
	if users.saves != 0 {
		t.Fatal("invalid user persisted")
	}
}
