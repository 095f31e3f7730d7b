package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrEthical07/shopflow/profile"
)

type profileDocument struct {
	ID        string                   `json:"id"`
	AccountID string                   `json:"accountId"`
	Addresses []profileAddressDocument `json:"addresses"`
	Audit     auditDocument            `json:"audit"`
}

type profileAddressDocument struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Postal    addressDocument `json:"postal"`
	IsDefault bool            `json:"isDefault"`
	Audit     auditDocument   `json:"audit"`
}

// Profiles is the Redis-backed profile.Profiles, indexed by both profile id
// and owning account id.
type Profiles struct {
	store *Store
}

// NewProfiles builds the repository over a shared Store.
func NewProfiles(store *Store) *Profiles { return &Profiles{store: store} }

func (r *Profiles) docKey(id string) string { return r.store.key("profile", id) }
func (r *Profiles) accountKey(accountID string) string {
	return r.store.key("profile", "account", accountID)
}

// Save persists the profile and its account index.
func (r *Profiles) Save(ctx context.Context, p profile.UserProfile) error {
	doc := profileDocument{
		ID:        p.ID.String(),
		AccountID: p.AccountID,
		Audit:     toAuditDocument(p.Audit),
	}
	for _, a := range p.Addresses {
		doc.Addresses = append(doc.Addresses, profileAddressDocument{
			ID:        a.ID.String(),
			Name:      a.Name,
			Postal:    toAddressDocument(a.Postal),
			IsDefault: a.IsDefault,
			Audit:     toAuditDocument(a.Audit),
		})
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := r.store.reserve(ctx, r.accountKey(p.AccountID), p.ID.String()); err != nil {
		return err
	}
	return r.store.setJSON(ctx, r.docKey(p.ID.String()), raw)
}

// FindByID rebuilds the profile through the validating domain path. A miss
// is (nil, nil).
func (r *Profiles) FindByID(ctx context.Context, id profile.ProfileID) (*profile.UserProfile, error) {
	raw, ok, err := r.store.getJSON(ctx, r.docKey(id.String()))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return r.fromDocument(raw)
}

// FindByAccountID resolves the account index and loads the profile.
func (r *Profiles) FindByAccountID(ctx context.Context, accountID string) (*profile.UserProfile, error) {
	id, ok, err := r.store.resolve(ctx, r.accountKey(accountID))
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
		return nil, fmt.Errorf("%w: profile %s indexed but missing", ErrCorruptDocument, id)
	}
	return r.fromDocument(raw)
}

func (r *Profiles) fromDocument(raw []byte) (*profile.UserProfile, error) {
	var doc profileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	addresses := make([]profile.Address, 0, len(doc.Addresses))
	for _, ad := range doc.Addresses {
		id, err := profile.ParseAddressID(ad.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		postal, err := ad.Postal.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		audit, err := ad.Audit.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		a, err := profile.NewProfileAddress(id, ad.Name, postal, ad.IsDefault, audit)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		addresses = append(addresses, a)
	}
	audit, err := doc.Audit.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	p, err := profile.ReconstructUserProfile(doc.ID, doc.AccountID, addresses, audit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return &p, nil
}
