package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrEthical07/shopflow/share"
)

// Domain outcomes boundaries match on with errors.Is.
var (
	// ErrProfileNotFound reports a profile lookup miss.
	ErrProfileNotFound = errors.New("user profile not found")
	// ErrProfileExists reports an account that already has a profile.
	ErrProfileExists = errors.New("account already has a profile")
	// ErrAddressNotFound reports an address id not present on the profile.
	ErrAddressNotFound = errors.New("profile address not found")
	// ErrAddressExists reports an address id already present on the profile.
	ErrAddressExists = errors.New("profile address already exists")
)

// ProfileID identifies a UserProfile. UUID-backed.
type ProfileID struct {
	value string
}

// ParseProfileID validates raw as a UUID identifier.
func ParseProfileID(raw string) (ProfileID, error) {
	if !share.ValidID(raw) {
		return ProfileID{}, fmt.Errorf("invalid profile id: %q", raw)
	}
	return ProfileID{value: raw}, nil
}

// String returns the identifier text.
func (id ProfileID) String() string { return id.value }

// AddressID identifies a profile address. UUID-backed.
type AddressID struct {
	value string
}

// ParseAddressID validates raw as a UUID identifier.
func ParseAddressID(raw string) (AddressID, error) {
	if !share.ValidID(raw) {
		return AddressID{}, fmt.Errorf("invalid address id: %q", raw)
	}
	return AddressID{value: raw}, nil
}

// String returns the identifier text.
func (id AddressID) String() string { return id.value }

// Address is a named delivery address on a profile.
type Address struct {
	ID        AddressID
	Name      string
	Postal    share.Address
	IsDefault bool
	Audit     share.AuditInfo
}

// NewProfileAddress validates the label and assembles the address.
func NewProfileAddress(id AddressID, name string, postal share.Address, isDefault bool, audit share.AuditInfo) (Address, error) {
	if strings.TrimSpace(name) == "" {
		return Address{}, errors.New("address name must not be blank")
	}
	return Address{ID: id, Name: name, Postal: postal, IsDefault: isDefault, Audit: audit}, nil
}

// AddressFactory creates profile addresses with fresh identifiers.
type AddressFactory struct {
	IDs   share.IDGenerator
	Clock share.Clock
}

// Create builds a new profile address.
func (f AddressFactory) Create(name string, postal share.Address, isDefault bool) (Address, error) {
	id, err := ParseAddressID(f.IDs.NewID())
	if err != nil {
		return Address{}, err
	}
	return NewProfileAddress(id, name, postal, isDefault, share.NewAuditInfo(f.Clock.Now()))
}

// UserProfile is the aggregate: one per account, holding its addresses.
type UserProfile struct {
	ID        ProfileID
	AccountID string
	Addresses []Address
	Audit     share.AuditInfo
}

// ReconstructUserProfile rebuilds a persisted profile through the creation
// validation, including the single-default invariant.
func ReconstructUserProfile(id, accountID string, addresses []Address, audit share.AuditInfo) (UserProfile, error) {
	profileID, err := ParseProfileID(id)
	if err != nil {
		return UserProfile{}, err
	}
	if !share.ValidID(accountID) {
		return UserProfile{}, fmt.Errorf("invalid account id: %q", accountID)
	}
	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		return UserProfile{}, fmt.Errorf("profile carries %d default addresses", defaults)
	}
	return UserProfile{ID: profileID, AccountID: accountID, Addresses: addresses, Audit: audit}, nil
}

// DefaultAddress returns the default address, if any.
func (p UserProfile) DefaultAddress() (Address, bool) {
	for _, a := range p.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return Address{}, false
}

// AddAddress returns a copy with the address appended. A default newcomer
// demotes the previous default; a duplicate id is rejected.
func (p UserProfile) AddAddress(a Address, now share.Clock) (UserProfile, error) {
	addresses := make([]Address, 0, len(p.Addresses)+1)
	for _, existing := range p.Addresses {
		if existing.ID == a.ID {
			return UserProfile{}, ErrAddressExists
		}
		if a.IsDefault && existing.IsDefault {
			existing.IsDefault = false
		}
		addresses = append(addresses, existing)
	}
	addresses = append(addresses, a)
	p.Addresses = addresses
	p.Audit = p.Audit.Touch(now.Now())
	return p, nil
}

// RemoveAddress returns a copy without the address. Unknown ids are a
// domain outcome, not a no-op.
func (p UserProfile) RemoveAddress(id AddressID, now share.Clock) (UserProfile, error) {
	addresses := make([]Address, 0, len(p.Addresses))
	found := false
	for _, existing := range p.Addresses {
		if existing.ID == id {
			found = true
			continue
		}
		addresses = append(addresses, existing)
	}
	if !found {
		return UserProfile{}, ErrAddressNotFound
	}
	p.Addresses = addresses
	p.Audit = p.Audit.Touch(now.Now())
	return p, nil
}

// Factory creates empty profiles for accounts.
type Factory struct {
	IDs   share.IDGenerator
	Clock share.Clock
}

// Create builds a new profile with no addresses.
func (f Factory) Create(accountID string) (UserProfile, error) {
	return ReconstructUserProfile(f.IDs.NewID(), accountID, nil, share.NewAuditInfo(f.Clock.Now()))
}

// Profiles is the profile repository. Lookups return (nil, nil) on a miss.
type Profiles interface {
	FindByID(ctx context.Context, id ProfileID) (*UserProfile, error)
	FindByAccountID(ctx context.Context, accountID string) (*UserProfile, error)
	Save(ctx context.Context, p UserProfile) error
}
