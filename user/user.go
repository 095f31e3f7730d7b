package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/MrEthical07/shopflow/password"
	"github.com/MrEthical07/shopflow/share"
)

// Domain outcomes boundaries match on with errors.Is.
var (
	// ErrUserNotFound reports that no user is registered under the
	// looked-up email.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken reports a registration against a taken email.
	ErrEmailTaken = errors.New("email already registered")
)

var telephonePattern = regexp.MustCompile(`^[0-9][0-9\-]*[0-9]$`)

// UserID identifies a User. UUID-backed.
type UserID struct {
	value string
}

// ParseUserID validates raw as a UUID identifier.
func ParseUserID(raw string) (UserID, error) {
	if !share.ValidID(raw) {
		return UserID{}, fmt.Errorf("invalid user id: %q", raw)
	}
	return UserID{value: raw}, nil
}

// String returns the identifier text.
func (id UserID) String() string { return id.value }

// User is a registered person. Construct through NewUser or ReconstructUser;
// both run the same validation.
type User struct {
	ID           UserID
	FirstName    string
	LastName     string
	Address      share.Address
	Telephone    string
	PasswordHash string
}

// NewUser validates every field. The password must already be hashed.
func NewUser(id UserID, firstName, lastName string, address share.Address, telephone, passwordHash string) (User, error) {
	if strings.TrimSpace(firstName) == "" {
		return User{}, errors.New("first name must not be blank")
	}
	if strings.TrimSpace(lastName) == "" {
		return User{}, errors.New("last name must not be blank")
	}
	if !telephonePattern.MatchString(telephone) {
		return User{}, fmt.Errorf("invalid telephone number: %q", telephone)
	}
	if !password.LooksHashed(passwordHash) {
		return User{}, errors.New("password must be stored hashed")
	}
	return User{
		ID:           id,
		FirstName:    firstName,
		LastName:     lastName,
		Address:      address,
		Telephone:    telephone,
		PasswordHash: passwordHash,
	}, nil
}

// ReconstructUser rebuilds a persisted user through the creation validation.
func ReconstructUser(id, firstName, lastName string, address share.Address, telephone, passwordHash string) (User, error) {
	userID, err := ParseUserID(id)
	if err != nil {
		return User{}, err
	}
	return NewUser(userID, firstName, lastName, address, telephone, passwordHash)
}

// FullName renders the display name, family name first.
func (u User) FullName() string { return u.LastName + " " + u.FirstName }

// Factory creates users with freshly minted identifiers.
type Factory struct {
	IDs share.IDGenerator
}

// Create builds a new user.
func (f Factory) Create(firstName, lastName string, address share.Address, telephone, passwordHash string) (User, error) {
	id, err := ParseUserID(f.IDs.NewID())
	if err != nil {
		return User{}, err
	}
	return NewUser(id, firstName, lastName, address, telephone, passwordHash)
}

// Users is the user repository. Users are stored together with the email
// they registered under; FindByEmail returns (nil, nil) on a miss.
type Users interface {
	FindByEmail(ctx context.Context, email share.Email) (*User, error)
	Save(ctx context.Context, u User, email share.Email) error
}
