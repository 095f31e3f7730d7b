package auth

import (
	"context"

	"github.com/MrEthical07/shopflow/share"
)

// Accounts is the account repository. FindByEmail returns (nil, nil) on a
// miss; errors are reserved for infrastructure trouble.
type Accounts interface {
	FindByEmail(ctx context.Context, email share.Email) (*Account, error)
	Save(ctx context.Context, account Account) error
}

// Hasher is the password-hashing collaborator. Matches reports corruption
// as an error, a wrong password as (false, nil).
type Hasher interface {
	Hash(raw string) (string, error)
	Matches(raw, encoded string) (bool, error)
}

// TokenIssuer mints a signed token for an authenticated principal.
type TokenIssuer interface {
	Generate(subject string) (string, error)
}
