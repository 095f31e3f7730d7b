package shopflow

import "errors"

// ErrEngineNotReady is returned when an Engine method runs before Build.
var ErrEngineNotReady = errors.New("engine not built")

// ErrAuthenticationFailed wraps every failed login, whichever step failed.
// The underlying outcome stays in the chain for errors.Is.
var ErrAuthenticationFailed = errors.New("authentication failed")

// ErrRegistrationFailed wraps every failed signup or user registration.
var ErrRegistrationFailed = errors.New("registration failed")

// ErrAccountNotFound reports a login against an unregistered email.
var ErrAccountNotFound = errors.New("account not found")

// ErrUserNotFound reports a legacy login against an unregistered email.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials reports a password that did not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailAlreadyExists reports a registration against a taken email.
var ErrEmailAlreadyExists = errors.New("email already exists")

// ErrProfileExists reports a profile creation for an account that has one.
var ErrProfileExists = errors.New("profile already exists")

// ErrProfileNotFound reports a profile operation against a missing profile.
var ErrProfileNotFound = errors.New("profile not found")

// ErrAddressNotFound reports an address operation against an address the
// profile does not hold. Distinct from ErrProfileNotFound: the profile
// itself exists.
var ErrAddressNotFound = errors.New("address not found")

// ErrValidation reports input rejected before any aggregate was built.
var ErrValidation = errors.New("validation failed")

// ErrStoreUnavailable reports a persistence collaborator malfunction.
var ErrStoreUnavailable = errors.New("store unavailable")
