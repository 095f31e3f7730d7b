package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MrEthical07/shopflow/password"
	"github.com/MrEthical07/shopflow/share"
)

// Domain outcomes the auth workflows can report. Boundaries match on these
// with errors.Is.
var (
	// ErrAccountNotFound reports that no account is registered under the
	// looked-up email.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidPassword reports a password that did not match the stored
	// credential.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrNoEmailAuthentication reports an account that carries no email
	// credential to verify against.
	ErrNoEmailAuthentication = errors.New("account has no email authentication")
	// ErrEmailTaken reports a signup against an already registered email.
	ErrEmailTaken = errors.New("email already registered")
)

// AccountID identifies an Account. UUID-backed.
type AccountID struct {
	value string
}

// ParseAccountID validates raw as a UUID identifier.
func ParseAccountID(raw string) (AccountID, error) {
	if !share.ValidID(raw) {
		return AccountID{}, fmt.Errorf("invalid account id: %q", raw)
	}
	return AccountID{value: raw}, nil
}

// String returns the identifier text.
func (id AccountID) String() string { return id.value }

// IsZero reports an unconstructed id.
func (id AccountID) IsZero() bool { return id.value == "" }

// HashedPassword is a password hash in PHC argon2id form. Raw passwords are
// rejected so they can never be persisted by mistake.
type HashedPassword struct {
	value string
}

// NewHashedPassword validates the PHC format.
func NewHashedPassword(encoded string) (HashedPassword, error) {
	if !password.LooksHashed(encoded) {
		return HashedPassword{}, errors.New("value is not an argon2id hash")
	}
	return HashedPassword{value: encoded}, nil
}

// String returns the encoded hash.
func (h HashedPassword) String() string { return h.value }

// Authentication is a credential attached to an account. The method set is
// closed: EmailAuthentication is the only implementation today, and
// NewAuthentication is the only way to build one generically.
type Authentication interface {
	Method() string
}

// MethodEmail is the authentication method backed by email + password.
const MethodEmail = "email"

// EmailAuthentication is an email/password credential.
type EmailAuthentication struct {
	Email        share.Email
	PasswordHash HashedPassword
}

// Method returns MethodEmail.
func (EmailAuthentication) Method() string { return MethodEmail }

// NewEmailAuthentication validates both parts of the credential.
func NewEmailAuthentication(email share.Email, hash HashedPassword) (EmailAuthentication, error) {
	if email.IsZero() {
		return EmailAuthentication{}, errors.New("email authentication requires an email")
	}
	if hash.value == "" {
		return EmailAuthentication{}, errors.New("email authentication requires a password hash")
	}
	return EmailAuthentication{Email: email, PasswordHash: hash}, nil
}

// NewAuthentication dispatches on method and builds the matching credential
// from the supplied key/value pairs. Unknown methods and missing keys are
// rejected.
func NewAuthentication(method string, credentials map[string]string) (Authentication, error) {
	switch method {
	case MethodEmail:
		rawEmail, ok := credentials["email"]
		if !ok {
			return nil, errors.New("email authentication requires an email credential")
		}
		rawHash, ok := credentials["password"]
		if !ok {
			return nil, errors.New("email authentication requires a password credential")
		}
		email, err := share.NewEmail(rawEmail)
		if err != nil {
			return nil, err
		}
		hash, err := NewHashedPassword(rawHash)
		if err != nil {
			return nil, err
		}
		return NewEmailAuthentication(email, hash)
	default:
		return nil, fmt.Errorf("unknown authentication method: %q", method)
	}
}

// Account is the authentication aggregate: an identity plus the credentials
// that can prove it.
type Account struct {
	ID              AccountID
	Authentications []Authentication
}

// EmailAuthentication plucks the account's email credential. Absence is a
// domain outcome, reported as ErrNoEmailAuthentication.
func (a Account) EmailAuthentication() (EmailAuthentication, error) {
	for _, auth := range a.Authentications {
		if ea, ok := auth.(EmailAuthentication); ok {
			return ea, nil
		}
	}
	return EmailAuthentication{}, ErrNoEmailAuthentication
}

// ReconstructAccount rebuilds a persisted account through the same
// validation as creation. No fresh id, no side effects.
func ReconstructAccount(id string, auths []Authentication) (Account, error) {
	accountID, err := ParseAccountID(id)
	if err != nil {
		return Account{}, err
	}
	if len(auths) == 0 {
		return Account{}, errors.New("account requires at least one authentication")
	}
	return Account{ID: accountID, Authentications: auths}, nil
}

// Factory creates accounts with freshly minted identifiers.
type Factory struct {
	IDs share.IDGenerator
}

// Create builds a new account holding the given credential.
func (f Factory) Create(auth Authentication) (Account, error) {
	if auth == nil {
		return Account{}, errors.New("account requires an authentication")
	}
	return ReconstructAccount(f.IDs.NewID(), []Authentication{auth})
}

// Token is an issued JSON Web Token. Opaque to this package; never blank.
type Token struct {
	value string
}

// NewToken rejects blank token values.
func NewToken(raw string) (Token, error) {
	if strings.TrimSpace(raw) == "" {
		return Token{}, errors.New("token must not be blank")
	}
	return Token{value: raw}, nil
}

// String returns the serialized token.
func (t Token) String() string { return t.value }
