package auth

import (
	"context"
	"errors"

	"github.com/MrEthical07/shopflow/password"
	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/workflow"
)

// Signup stage values.
type (
	// SignupInput starts the pipeline with the requested email and raw
	// password.
	SignupInput struct {
		Email       share.Email
		RawPassword string
	}

	// SignupChecked certifies the email as unused at lookup time.
	SignupChecked struct {
		Email       share.Email
		RawPassword string
	}

	// SignupCreated is the terminal stage: the account built for the new
	// registration. Persistence happens in the use case, after the
	// pipeline.
	SignupCreated struct {
		Account Account
	}
)

// The signup step shapes.
type (
	CheckEmailUnusedStep       = workflow.Step[SignupInput, SignupChecked]
	CreateAccountWithEmailStep = workflow.Step[SignupChecked, SignupCreated]
)

// CheckEmailUnused rejects emails that already resolve to an account. On
// conflict no account object is ever constructed for this run.
func CheckEmailUnused(accounts Accounts) CheckEmailUnusedStep {
	return func(ctx context.Context, in SignupInput) (SignupChecked, error) {
		existing, err := accounts.FindByEmail(ctx, in.Email)
		if err != nil {
			return SignupChecked{}, workflow.Infra(err)
		}
		if existing != nil {
			return SignupChecked{}, workflow.Conflict(ErrEmailTaken)
		}
		return SignupChecked{Email: in.Email, RawPassword: in.RawPassword}, nil
	}
}

// CreateAccountWithEmail hashes the password, builds the email credential,
// and factory-creates the account with a fresh identifier.
func CreateAccountWithEmail(hasher Hasher, factory Factory) CreateAccountWithEmailStep {
	return func(ctx context.Context, in SignupChecked) (SignupCreated, error) {
		encoded, err := hasher.Hash(in.RawPassword)
		if err != nil {
			// A too-short password is the caller's input; anything else
			// (e.g. the entropy source) is a hasher malfunction.
			if errors.Is(err, password.ErrPasswordTooShort) {
				return SignupCreated{}, workflow.Invalid(err)
			}
			return SignupCreated{}, workflow.Infra(err)
		}
		hash, err := NewHashedPassword(encoded)
		if err != nil {
			return SignupCreated{}, workflow.Infra(err)
		}
		cred, err := NewEmailAuthentication(in.Email, hash)
		if err != nil {
			return SignupCreated{}, workflow.Invalid(err)
		}
		account, err := factory.Create(cred)
		if err != nil {
			return SignupCreated{}, workflow.Invalid(err)
		}
		return SignupCreated{Account: account}, nil
	}
}

// SignupWorkflow is the fixed signup pipeline.
type SignupWorkflow struct {
	run workflow.Step[SignupInput, SignupCreated]
}

// NewSignupWorkflow wires the two steps in their fixed order.
func NewSignupWorkflow(check CheckEmailUnusedStep, create CreateAccountWithEmailStep) *SignupWorkflow {
	return &SignupWorkflow{run: workflow.Then(check, create)}
}

// Execute runs the pipeline for one signup attempt.
func (w *SignupWorkflow) Execute(ctx context.Context, email share.Email, rawPassword string) (SignupCreated, error) {
	return workflow.Run(ctx, "signup", w.run, SignupInput{Email: email, RawPassword: rawPassword})
}
