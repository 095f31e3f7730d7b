package shopflow

import (
	"github.com/MrEthical07/shopflow/auth"
	"github.com/MrEthical07/shopflow/profile"
	"github.com/MrEthical07/shopflow/sample"
	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/user"
)

// Collaborator and aggregate aliases, so most callers only import shopflow.
type (
	// IDGenerator mints aggregate identifiers.
	IDGenerator = share.IDGenerator
	// Clock supplies the current instant.
	Clock = share.Clock
	// Accounts is the account repository contract.
	Accounts = auth.Accounts
	// Users is the user repository contract.
	Users = user.Users
	// Samples is the sample repository contract.
	Samples = sample.Samples
	// Profiles is the profile repository contract.
	Profiles = profile.Profiles
	// Sample is the sample aggregate.
	Sample = sample.Sample
	// Profile is the user-profile aggregate.
	Profile = profile.UserProfile
)

// LoginResult is the outcome of a successful account login.
type LoginResult struct {
	AccountID string
	Token     string
}

// SignupResult is the outcome of a successful signup.
type SignupResult struct {
	AccountID string
}

// LegacyLoginResult is the outcome of a successful login on the legacy
// user path.
type LegacyLoginResult struct {
	UserID   string
	FullName string
	Token    string
}

// RegisterUserRequest carries everything the registration form collects.
type RegisterUserRequest struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	Telephone      string
	Zipcode        string
	Prefecture     string
	Municipalities string
	DetailAddress  string
}

// RegisterUserResult is the outcome of a successful user registration.
type RegisterUserResult struct {
	UserID   string
	FullName string
}

// CreateSampleRequest carries the sample-creation form values. A nil
// Description means absent.
type CreateSampleRequest struct {
	Name        string
	Description *string
}

// AddAddressRequest carries the add-address form values.
type AddAddressRequest struct {
	ProfileID      string
	Name           string
	Zipcode        string
	Prefecture     string
	Municipalities string
	DetailAddress  string
	IsDefault      bool
}
