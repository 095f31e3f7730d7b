package auth

import (
	"context"

	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/workflow"
)

// Login stage values. Each step consumes one and produces the next; a stage
// only ever exists inside a single execution.
type (
	// LoginInput starts the pipeline: the claimed email and the raw
	// password as submitted.
	LoginInput struct {
		Email       share.Email
		RawPassword string
	}

	// LoginFound carries the located account onward, password still raw
	// and unverified.
	LoginFound struct {
		Account     Account
		RawPassword string
	}

	// LoginVerified marks the password as checked. The raw password does
	// not travel past this point.
	LoginVerified struct {
		Account Account
	}

	// LoginIssued is the terminal stage: the account and its fresh token.
	LoginIssued struct {
		Account Account
		Token   Token
	}
)

// The three login step shapes. Implementations are built from collaborators
// by the constructors below and wired into a LoginWorkflow exactly once.
type (
	FindAccountByEmailStep = workflow.Step[LoginInput, LoginFound]
	VerifyPasswordStep     = workflow.Step[LoginFound, LoginVerified]
	GenerateTokenStep      = workflow.Step[LoginVerified, LoginIssued]
)

// FindAccountByEmail looks the account up by email. Lookup only: the raw
// password is passed through untouched, and a miss is reported before any
// credential is inspected. Keeping this separate from verification is what
// lets callers distinguish an unknown email from a wrong password.
func FindAccountByEmail(accounts Accounts) FindAccountByEmailStep {
	return func(ctx context.Context, in LoginInput) (LoginFound, error) {
		account, err := accounts.FindByEmail(ctx, in.Email)
		if err != nil {
			return LoginFound{}, workflow.Infra(err)
		}
		if account == nil {
			return LoginFound{}, workflow.NotFound(ErrAccountNotFound)
		}
		return LoginFound{Account: *account, RawPassword: in.RawPassword}, nil
	}
}

// VerifyPassword checks the raw password against the account's email
// credential. On mismatch the pipeline stops here; the token step never
// sees an unverified account.
func VerifyPassword(hasher Hasher) VerifyPasswordStep {
	return func(ctx context.Context, in LoginFound) (LoginVerified, error) {
		cred, err := in.Account.EmailAuthentication()
		if err != nil {
			return LoginVerified{}, workflow.Invalid(err)
		}
		ok, err := hasher.Matches(in.RawPassword, cred.PasswordHash.String())
		if err != nil {
			return LoginVerified{}, workflow.Infra(err)
		}
		if !ok {
			return LoginVerified{}, workflow.InvalidCredential(ErrInvalidPassword)
		}
		return LoginVerified{Account: in.Account}, nil
	}
}

// GenerateToken issues exactly one token for the verified account.
func GenerateToken(issuer TokenIssuer) GenerateTokenStep {
	return func(ctx context.Context, in LoginVerified) (LoginIssued, error) {
		raw, err := issuer.Generate(in.Account.ID.String())
		if err != nil {
			return LoginIssued{}, workflow.Infra(err)
		}
		token, err := NewToken(raw)
		if err != nil {
			return LoginIssued{}, workflow.Infra(err)
		}
		return LoginIssued{Account: in.Account, Token: token}, nil
	}
}

// LoginWorkflow is the fixed login pipeline. Construct once, execute many.
type LoginWorkflow struct {
	run workflow.Step[LoginInput, LoginIssued]
}

// NewLoginWorkflow wires the three steps in their fixed order.
func NewLoginWorkflow(find FindAccountByEmailStep, verify VerifyPasswordStep, issue GenerateTokenStep) *LoginWorkflow {
	return &LoginWorkflow{run: workflow.Then(workflow.Then(find, verify), issue)}
}

// Execute runs the pipeline for one login attempt. Failures come back
// tagged with a workflow kind and wrapped as the "login" process.
func (w *LoginWorkflow) Execute(ctx context.Context, email share.Email, rawPassword string) (LoginIssued, error) {
	return workflow.Run(ctx, "login", w.run, LoginInput{Email: email, RawPassword: rawPassword})
}
