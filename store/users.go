package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/user"
)

type userDocument struct {
	ID           string          `json:"id"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	Address      addressDocument `json:"address"`
	Telephone    string          `json:"telephone"`
	PasswordHash string          `json:"passwordHash"`
	Email        string          `json:"email"`
}

type addressDocument struct {
	Zipcode        string `json:"zipcode"`
	Prefecture     string `json:"prefecture"`
	Municipalities string `json:"municipalities"`
	Detail         string `json:"detail"`
}

func toAddressDocument(a share.Address) addressDocument {
	return addressDocument{
		Zipcode:        a.Zipcode.String(),
		Prefecture:     a.Prefecture.String(),
		Municipalities: a.Municipalities.String(),
		Detail:         a.Detail.String(),
	}
}

func (d addressDocument) toDomain() (share.Address, error) {
	return share.NewAddress(d.Zipcode, d.Prefecture, d.Municipalities, d.Detail)
}

type auditDocument struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toAuditDocument(a share.AuditInfo) auditDocument {
	return auditDocument{CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
}

func (d auditDocument) toDomain() (share.AuditInfo, error) {
	return share.ReconstructAuditInfo(d.CreatedAt, d.UpdatedAt)
}

// Users is the Redis-backed user.Users.
type Users struct {
	store *Store
}

// NewUsers builds the repository over a shared Store.
func NewUsers(store *Store) *Users { return &Users{store: store} }

func (r *Users) docKey(id string) string      { return r.store.key("user", id) }
func (r *Users) emailKey(email string) string { return r.store.key("user", "email", email) }

// Save persists the user under its registration email.
func (r *Users) Save(ctx context.Context, u user.User, email share.Email) error {
	if err := r.store.reserve(ctx, r.emailKey(email.String()), u.ID.String()); err != nil {
		return err
	}
	doc := userDocument{
		ID:           u.ID.String(),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Address:      toAddressDocument(u.Address),
		Telephone:    u.Telephone,
		PasswordHash: u.PasswordHash,
		Email:        email.String(),
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.store.setJSON(ctx, r.docKey(u.ID.String()), raw)
}

// FindByEmail resolves the email index and rebuilds the user through the
// validating domain path. A miss is (nil, nil).
func (r *Users) FindByEmail(ctx context.Context, email share.Email) (*user.User, error) {
	id, ok, err := r.store.resolve(ctx, r.emailKey(email.String()))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	raw, ok, err := r.store.getJSON(ctx, r.docKey(id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: user %s indexed but missing", ErrCorruptDocument, id)
	}
	var doc userDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	addr, err := doc.Address.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	u, err := user.ReconstructUser(doc.ID, doc.FirstName, doc.LastName, addr, doc.Telephone, doc.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return &u, nil
}
