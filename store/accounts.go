package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrEthical07/shopflow/auth"
	"github.com/MrEthical07/shopflow/share"
)

// accountDocument is the stored shape of an Account. Credentials ride as
// method + key/value pairs so new authentication methods do not need a
// schema change.
type accountDocument struct {
	ID              string                   `json:"id"`
	Authentications []authenticationDocument `json:"authentications"`
}

type authenticationDocument struct {
	Method      string            `json:"method"`
	Credentials map[string]string `json:"credentials"`
}

// Accounts is the Redis-backed auth.Accounts.
type Accounts struct {
	store *Store
}

// NewAccounts builds the repository over a shared Store.
func NewAccounts(store *Store) *Accounts { return &Accounts{store: store} }

func (r *Accounts) docKey(id string) string      { return r.store.key("account", id) }
func (r *Accounts) emailKey(email string) string { return r.store.key("account", "email", email) }

// Save persists the account and reserves its email. The reservation is
// first-writer-wins: losing it returns ErrEmailReserved and writes nothing.
func (r *Accounts) Save(ctx context.Context, account auth.Account) error {
	cred, err := account.EmailAuthentication()
	if err != nil {
		return fmt.Errorf("account %s has no email credential: %w", account.ID, err)
	}
	if err := r.store.reserve(ctx, r.emailKey(cred.Email.String()), account.ID.String()); err != nil {
		return err
	}
	doc := accountDocument{ID: account.ID.String()}
	for _, a := range account.Authentications {
		ea, ok := a.(auth.EmailAuthentication)
		if !ok {
			return fmt.Errorf("unsupported authentication method %q", a.Method())
		}
		doc.Authentications = append(doc.Authentications, authenticationDocument{
			Method: ea.Method(),
			Credentials: map[string]string{
				"email":    ea.Email.String(),
				"password": ea.PasswordHash.String(),
			},
		})
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.store.setJSON(ctx, r.docKey(account.ID.String()), raw)
}

// FindByEmail resolves the email reservation and rebuilds the account
// through the validating domain path. A miss is (nil, nil).
func (r *Accounts) FindByEmail(ctx context.Context, email share.Email) (*auth.Account, error) {
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
		// Reservation without a document: treat as corruption, not a miss.
		return nil, fmt.Errorf("%w: account %s indexed but missing", ErrCorruptDocument, id)
	}
	var doc accountDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	auths := make([]auth.Authentication, 0, len(doc.Authentications))
	for _, ad := range doc.Authentications {
		a, err := auth.NewAuthentication(ad.Method, ad.Credentials)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		auths = append(auths, a)
	}
	account, err := auth.ReconstructAccount(doc.ID, auths)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return &account, nil
}
