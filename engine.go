package shopflow

import (
	"context"
	"errors"

	"github.com/MrEthical07/shopflow/account"
	"github.com/MrEthical07/shopflow/auth"
	"github.com/MrEthical07/shopflow/jwt"
	"github.com/MrEthical07/shopflow/profile"
	"github.com/MrEthical07/shopflow/sample"
	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/store"
	"github.com/MrEthical07/shopflow/user"
	"github.com/MrEthical07/shopflow/workflow"
)

// Engine is the use-case boundary. Each method runs one workflow and
// translates its failure kind into the package's sentinel errors with the
// cause chain intact. Safe for concurrent use after Build.
type Engine struct {
	accounts Accounts
	issuer   *jwt.Provider

	login         *auth.LoginWorkflow
	signup        *auth.SignupWorkflow
	legacyLogin   *account.LoginWorkflow
	registerUser  *user.RegisterWorkflow
	createSample  *sample.CreateWorkflow
	createProfile *profile.CreateWorkflow
	addAddress    *profile.AddAddressWorkflow
	removeAddress *profile.RemoveAddressWorkflow

	ready bool
}

func (e *Engine) guard() error {
	if e == nil || !e.ready {
		return ErrEngineNotReady
	}
	return nil
}

// translate maps a workflow failure kind onto the sentinel the kind means
// for this use case, joined under the use case's process sentinel.
func translate(process error, notFound error, conflict error, err error) error {
	sentinel := ErrStoreUnavailable
	switch workflow.KindOf(err) {
	case workflow.KindNotFound:
		sentinel = notFound
	case workflow.KindInvalidCredential:
		sentinel = ErrInvalidCredentials
	case workflow.KindConflict:
		sentinel = conflict
	case workflow.KindValidation:
		sentinel = ErrValidation
	}
	if process != nil {
		return errors.Join(process, sentinel, err)
	}
	return errors.Join(sentinel, err)
}

// Login authenticates an account by email and password and issues a token.
// An unknown email surfaces as ErrAccountNotFound, a wrong password as
// ErrInvalidCredentials, both joined under ErrAuthenticationFailed.
func (e *Engine) Login(ctx context.Context, emailRaw, rawPassword string) (LoginResult, error) {
	if err := e.guard(); err != nil {
		return LoginResult{}, err
	}
	email, err := share.NewEmail(emailRaw)
	if err != nil {
		return LoginResult{}, errors.Join(ErrAuthenticationFailed, ErrValidation, err)
	}
	out, err := e.login.Execute(ctx, email, rawPassword)
	if err != nil {
		return LoginResult{}, translate(ErrAuthenticationFailed, ErrAccountNotFound, ErrEmailAlreadyExists, err)
	}
	return LoginResult{AccountID: out.Account.ID.String(), Token: out.Token.String()}, nil
}

// Signup registers a new account under the email and persists it. The
// second signup for the same email fails with ErrEmailAlreadyExists and
// leaves exactly one stored account.
func (e *Engine) Signup(ctx context.Context, emailRaw, rawPassword string) (SignupResult, error) {
	if err := e.guard(); err != nil {
		return SignupResult{}, err
	}
	email, err := share.NewEmail(emailRaw)
	if err != nil {
		return SignupResult{}, errors.Join(ErrRegistrationFailed, ErrValidation, err)
	}
	out, err := e.signup.Execute(ctx, email, rawPassword)
	if err != nil {
		return SignupResult{}, translate(ErrRegistrationFailed, ErrAccountNotFound, ErrEmailAlreadyExists, err)
	}
	if err := e.accounts.Save(ctx, out.Account); err != nil {
		// The uniqueness check can lose a race to a concurrent signup;
		// the store's reservation is the final arbiter.
		if errors.Is(err, store.ErrEmailReserved) {
			return SignupResult{}, errors.Join(ErrRegistrationFailed, ErrEmailAlreadyExists, err)
		}
		return SignupResult{}, errors.Join(ErrRegistrationFailed, ErrStoreUnavailable, err)
	}
	return SignupResult{AccountID: out.Account.ID.String()}, nil
}

// AccountLogin authenticates on the legacy user path. Same shape as Login
// with ErrUserNotFound for the unknown-email outcome.
func (e *Engine) AccountLogin(ctx context.Context, emailRaw, rawPassword string) (LegacyLoginResult, error) {
	if err := e.guard(); err != nil {
		return LegacyLoginResult{}, err
	}
	email, err := share.NewEmail(emailRaw)
	if err != nil {
		return LegacyLoginResult{}, errors.Join(ErrAuthenticationFailed, ErrValidation, err)
	}
	out, err := e.legacyLogin.Execute(ctx, email, rawPassword)
	if err != nil {
		return LegacyLoginResult{}, translate(ErrAuthenticationFailed, ErrUserNotFound, ErrEmailAlreadyExists, err)
	}
	return LegacyLoginResult{
		UserID:   out.User.ID.String(),
		FullName: out.User.FullName(),
		Token:    out.Token,
	}, nil
}

// RegisterUser runs the legacy registration: uniqueness check, hash,
// create, persist.
func (e *Engine) RegisterUser(ctx context.Context, req RegisterUserRequest) (RegisterUserResult, error) {
	if err := e.guard(); err != nil {
		return RegisterUserResult{}, err
	}
	email, err := share.NewEmail(req.Email)
	if err != nil {
		return RegisterUserResult{}, errors.Join(ErrRegistrationFailed, ErrValidation, err)
	}
	addr, err := share.NewAddress(req.Zipcode, req.Prefecture, req.Municipalities, req.DetailAddress)
	if err != nil {
		return RegisterUserResult{}, errors.Join(ErrRegistrationFailed, ErrValidation, err)
	}
	out, err := e.registerUser.Execute(ctx, user.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       email,
		RawPassword: req.Password,
		Address:     addr,
		Telephone:   req.Telephone,
	})
	if err != nil {
		return RegisterUserResult{}, translate(ErrRegistrationFailed, ErrUserNotFound, ErrEmailAlreadyExists, err)
	}
	return RegisterUserResult{UserID: out.User.ID.String(), FullName: out.User.FullName()}, nil
}

// CreateSample validates the input, drafts the sample through its factory,
// and persists it. Invalid input never constructs a Sample.
func (e *Engine) CreateSample(ctx context.Context, req CreateSampleRequest) (Sample, error) {
	if err := e.guard(); err != nil {
		return Sample{}, err
	}
	out, err := e.createSample.Execute(ctx, sample.CreateInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return Sample{}, translate(nil, ErrStoreUnavailable, ErrStoreUnavailable, err)
	}
	return out.Sample, nil
}

// CreateProfile opens an empty profile for the account. A second profile
// for the same account fails with ErrProfileExists.
func (e *Engine) CreateProfile(ctx context.Context, accountID string) (Profile, error) {
	if err := e.guard(); err != nil {
		return Profile{}, err
	}
	out, err := e.createProfile.Execute(ctx, accountID)
	if err != nil {
		return Profile{}, translate(nil, ErrProfileNotFound, ErrProfileExists, err)
	}
	return out.Profile, nil
}

// AddProfileAddress attaches a delivery address to the profile, keeping
// the single-default invariant.
func (e *Engine) AddProfileAddress(ctx context.Context, req AddAddressRequest) (Profile, error) {
	if err := e.guard(); err != nil {
		return Profile{}, err
	}
	profileID, err := profile.ParseProfileID(req.ProfileID)
	if err != nil {
		return Profile{}, errors.Join(ErrValidation, err)
	}
	postal, err := share.NewAddress(req.Zipcode, req.Prefecture, req.Municipalities, req.DetailAddress)
	if err != nil {
		return Profile{}, errors.Join(ErrValidation, err)
	}
	out, err := e.addAddress.Execute(ctx, profile.AddAddressInput{
		ProfileID: profileID,
		Name:      req.Name,
		Postal:    postal,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return Profile{}, translate(nil, ErrProfileNotFound, ErrProfileExists, err)
	}
	return out.Profile, nil
}

// RemoveProfileAddress detaches an address from the profile.
func (e *Engine) RemoveProfileAddress(ctx context.Context, profileIDRaw, addressIDRaw string) (Profile, error) {
	if err := e.guard(); err != nil {
		return Profile{}, err
	}
	profileID, err := profile.ParseProfileID(profileIDRaw)
	if err != nil {
		return Profile{}, errors.Join(ErrValidation, err)
	}
	addressID, err := profile.ParseAddressID(addressIDRaw)
	if err != nil {
		return Profile{}, errors.Join(ErrValidation, err)
	}
	out, err := e.removeAddress.Execute(ctx, profile.RemoveAddressInput{ProfileID: profileID, AddressID: addressID})
	if err != nil {
		// Both lookup steps report a miss; keep the two distinguishable
		// at the boundary.
		if errors.Is(err, profile.ErrAddressNotFound) {
			return Profile{}, errors.Join(ErrAddressNotFound, err)
		}
		return Profile{}, translate(nil, ErrProfileNotFound, ErrProfileExists, err)
	}
	return out.Profile, nil
}

// ParseToken verifies an issued token and returns its subject. Useful for
// request middleware sitting in front of the engine.
func (e *Engine) ParseToken(token string) (string, error) {
	if err := e.guard(); err != nil {
		return "", err
	}
	return e.issuer.Parse(token)
}
