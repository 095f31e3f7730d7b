package user

import (
	"context"
	"errors"

	"github.com/MrEthical07/shopflow/password"
	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/workflow"
)

// Hasher is the password-hashing collaborator for registration.
type Hasher interface {
	Hash(raw string) (string, error)
}

// Registration stage values.
type (
	// RegisterInput starts the pipeline with everything the form
	// collected.
	RegisterInput struct {
		FirstName   string
		LastName    string
		Email       share.Email
		RawPassword string
		Address     share.Address
		Telephone   string
	}

	// RegisterChecked certifies the email as unused at lookup time.
	RegisterChecked struct {
		Input RegisterInput
	}

	// RegisterHashed carries the derived hash; the raw password does not
	// travel past this point.
	RegisterHashed struct {
		Input        RegisterInput
		PasswordHash string
	}

	// Registered is the terminal stage: the persisted user.
	Registered struct {
		User User
	}
)

// The registration step shapes.
type (
	CheckEmailUnusedStep = workflow.Step[RegisterInput, RegisterChecked]
	HashPasswordStep     = workflow.Step[RegisterChecked, RegisterHashed]
	CreateUserStep       = workflow.Step[RegisterHashed, Registered]
)

// CheckEmailUnused rejects emails that already resolve to a user.
func CheckEmailUnused(users Users) CheckEmailUnusedStep {
	return func(ctx context.Context, in RegisterInput) (RegisterChecked, error) {
		existing, err := users.FindByEmail(ctx, in.Email)
		if err != nil {
			return RegisterChecked{}, workflow.Infra(err)
		}
		if existing != nil {
			return RegisterChecked{}, workflow.Conflict(ErrEmailTaken)
		}
		return RegisterChecked{Input: in}, nil
	}
}

// HashPassword derives the stored hash from the raw password.
func HashPassword(hasher Hasher) HashPasswordStep {
	return func(ctx context.Context, in RegisterChecked) (RegisterHashed, error) {
		encoded, err := hasher.Hash(in.Input.RawPassword)
		if err != nil {
			if errors.Is(err, password.ErrPasswordTooShort) {
				return RegisterHashed{}, workflow.Invalid(err)
			}
			return RegisterHashed{}, workflow.Infra(err)
		}
		return RegisterHashed{Input: in.Input, PasswordHash: encoded}, nil
	}
}

// CreateUser factory-creates the user and persists it under its email.
func CreateUser(factory Factory, users Users) CreateUserStep {
	return func(ctx context.Context, in RegisterHashed) (Registered, error) {
		u, err := factory.Create(in.Input.FirstName, in.Input.LastName, in.Input.Address, in.Input.Telephone, in.PasswordHash)
		if err != nil {
			return Registered{}, workflow.Invalid(err)
		}
		if err := users.Save(ctx, u, in.Input.Email); err != nil {
			return Registered{}, workflow.Infra(err)
		}
		return Registered{User: u}, nil
	}
}

// RegisterWorkflow is the fixed registration pipeline.
type RegisterWorkflow struct {
	run workflow.Step[RegisterInput, Registered]
}

// NewRegisterWorkflow wires the three steps in their fixed order.
func NewRegisterWorkflow(check CheckEmailUnusedStep, hash HashPasswordStep, create CreateUserStep) *RegisterWorkflow {
	return &RegisterWorkflow{run: workflow.Then(workflow.Then(check, hash), create)}
}

// Execute runs the pipeline for one registration attempt.
func (w *RegisterWorkflow) Execute(ctx context.Context, in RegisterInput) (Registered, error) {
	return workflow.Run(ctx, "register user", w.run, in)
}
