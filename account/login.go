package account

import (
	"context"
	"errors"

	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/user"
	"github.com/MrEthical07/shopflow/workflow"
)

// ErrInvalidPassword reports a password that did not match the user's
// stored hash.
var ErrInvalidPassword = errors.New("invalid password")

// PasswordVerifier checks a raw password against a stored hash.
type PasswordVerifier interface {
	Matches(raw, encoded string) (bool, error)
}

// TokenIssuer mints a signed token for an authenticated user.
type TokenIssuer interface {
	Generate(subject string) (string, error)
}

// Login stage values. One result value or one error per step; there is no
// nesting of optional outcomes inside successes.
type (
	// LoginInput starts the pipeline.
	LoginInput struct {
		Email       share.Email
		RawPassword string
	}

	// LoginFound carries the located user, password still unverified.
	LoginFound struct {
		User        user.User
		RawPassword string
	}

	// LoginVerified marks the password as checked.
	LoginVerified struct {
		User user.User
	}

	// LoginIssued is the terminal stage.
	LoginIssued struct {
		User  user.User
		Token string
	}
)

// The legacy login step shapes.
type (
	FindUserByEmailStep = workflow.Step[LoginInput, LoginFound]
	VerifyPasswordStep  = workflow.Step[LoginFound, LoginVerified]
	GenerateTokenStep   = workflow.Step[LoginVerified, LoginIssued]
)

// FindUserByEmail looks the user up by registration email. Lookup only; a
// miss is reported before the password is touched.
func FindUserByEmail(users user.Users) FindUserByEmailStep {
	return func(ctx context.Context, in LoginInput) (LoginFound, error) {
		u, err := users.FindByEmail(ctx, in.Email)
		if err != nil {
			return LoginFound{}, workflow.Infra(err)
		}
		if u == nil {
			return LoginFound{}, workflow.NotFound(user.ErrUserNotFound)
		}
		return LoginFound{User: *u, RawPassword: in.RawPassword}, nil
	}
}

// VerifyPassword checks the raw password against the user's stored hash.
func VerifyPassword(verifier PasswordVerifier) VerifyPasswordStep {
	return func(ctx context.Context, in LoginFound) (LoginVerified, error) {
		ok, err := verifier.Matches(in.RawPassword, in.User.PasswordHash)
		if err != nil {
			return LoginVerified{}, workflow.Infra(err)
		}
		if !ok {
			return LoginVerified{}, workflow.InvalidCredential(ErrInvalidPassword)
		}
		return LoginVerified{User: in.User}, nil
	}
}

// GenerateToken issues exactly one token for the verified user.
func GenerateToken(issuer TokenIssuer) GenerateTokenStep {
	return func(ctx context.Context, in LoginVerified) (LoginIssued, error) {
		token, err := issuer.Generate(in.User.ID.String())
		if err != nil {
			return LoginIssued{}, workflow.Infra(err)
		}
		if token == "" {
			return LoginIssued{}, workflow.Infra(errors.New("issuer returned a blank token"))
		}
		return LoginIssued{User: in.User, Token: token}, nil
	}
}

// LoginWorkflow is the fixed legacy login pipeline.
type LoginWorkflow struct {
	run workflow.Step[LoginInput, LoginIssued]
}

// NewLoginWorkflow wires the three steps in their fixed order.
func NewLoginWorkflow(find FindUserByEmailStep, verify VerifyPasswordStep, issue GenerateTokenStep) *LoginWorkflow {
	return &LoginWorkflow{run: workflow.Then(workflow.Then(find, verify), issue)}
}

// Execute runs the pipeline for one login attempt.
func (w *LoginWorkflow) Execute(ctx context.Context, email share.Email, rawPassword string) (LoginIssued, error) {
	return workflow.Run(ctx, "account login", w.run, LoginInput{Email: email, RawPassword: rawPassword})
}
