package profile

import (
	"context"

	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/workflow"
)

// ---- create profile ----

type (
	// CreateInput starts the pipeline with the owning account.
	CreateInput struct {
		AccountID string
	}

	// CreateChecked certifies the account has no profile yet.
	CreateChecked struct {
		AccountID string
	}

	// CreateDone is the terminal stage: the persisted profile.
	CreateDone struct {
		Profile UserProfile
	}
)

type (
	CheckNotAssociatedStep = workflow.Step[CreateInput, CreateChecked]
	CreateProfileStep      = workflow.Step[CreateChecked, CreateDone]
)

// CheckNotAssociated rejects accounts that already own a profile.
func CheckNotAssociated(profiles Profiles) CheckNotAssociatedStep {
	return func(ctx context.Context, in CreateInput) (CreateChecked, error) {
		existing, err := profiles.FindByAccountID(ctx, in.AccountID)
		if err != nil {
			return CreateChecked{}, workflow.Infra(err)
		}
		if existing != nil {
			return CreateChecked{}, workflow.Conflict(ErrProfileExists)
		}
		return CreateChecked{AccountID: in.AccountID}, nil
	}
}

// CreateProfile factory-creates and persists the empty profile.
func CreateProfile(factory Factory, profiles Profiles) CreateProfileStep {
	return func(ctx context.Context, in CreateChecked) (CreateDone, error) {
		p, err := factory.Create(in.AccountID)
		if err != nil {
			return CreateDone{}, workflow.Invalid(err)
		}
		if err := profiles.Save(ctx, p); err != nil {
			return CreateDone{}, workflow.Infra(err)
		}
		return CreateDone{Profile: p}, nil
	}
}

// CreateWorkflow is the fixed profile-creation pipeline.
type CreateWorkflow struct {
	run workflow.Step[CreateInput, CreateDone]
}

// NewCreateWorkflow wires the two steps in their fixed order.
func NewCreateWorkflow(check CheckNotAssociatedStep, create CreateProfileStep) *CreateWorkflow {
	return &CreateWorkflow{run: workflow.Then(check, create)}
}

// Execute runs the pipeline for one account.
func (w *CreateWorkflow) Execute(ctx context.Context, accountID string) (CreateDone, error) {
	return workflow.Run(ctx, "create profile", w.run, CreateInput{AccountID: accountID})
}

// ---- add address ----

type (
	// AddAddressInput starts the pipeline with the target profile and the
	// raw address form values.
	AddAddressInput struct {
		ProfileID ProfileID
		Name      string
		Postal    share.Address
		IsDefault bool
	}

	// AddAddressFound carries the loaded profile onward.
	AddAddressFound struct {
		Profile UserProfile
		Input   AddAddressInput
	}

	// AddAddressDone is the terminal stage: the updated profile.
	AddAddressDone struct {
		Profile UserProfile
	}
)

type (
	FindProfileStep   = workflow.Step[AddAddressInput, AddAddressFound]
	AttachAddressStep = workflow.Step[AddAddressFound, AddAddressDone]
)

// FindProfile loads the target profile; a miss is a domain outcome.
func FindProfile(profiles Profiles) FindProfileStep {
	return func(ctx context.Context, in AddAddressInput) (AddAddressFound, error) {
		p, err := profiles.FindByID(ctx, in.ProfileID)
		if err != nil {
			return AddAddressFound{}, workflow.Infra(err)
		}
		if p == nil {
			return AddAddressFound{}, workflow.NotFound(ErrProfileNotFound)
		}
		return AddAddressFound{Profile: *p, Input: in}, nil
	}
}

// AttachAddress builds the address, applies the aggregate's invariants, and
// persists the updated profile.
func AttachAddress(factory AddressFactory, profiles Profiles, clock share.Clock) AttachAddressStep {
	return func(ctx context.Context, in AddAddressFound) (AddAddressDone, error) {
		a, err := factory.Create(in.Input.Name, in.Input.Postal, in.Input.IsDefault)
		if err != nil {
			return AddAddressDone{}, workflow.Invalid(err)
		}
		updated, err := in.Profile.AddAddress(a, clock)
		if err != nil {
			return AddAddressDone{}, workflow.Conflict(err)
		}
		if err := profiles.Save(ctx, updated); err != nil {
			return AddAddressDone{}, workflow.Infra(err)
		}
		return AddAddressDone{Profile: updated}, nil
	}
}

// AddAddressWorkflow is the fixed add-address pipeline.
type AddAddressWorkflow struct {
	run workflow.Step[AddAddressInput, AddAddressDone]
}

// NewAddAddressWorkflow wires the two steps in their fixed order.
func NewAddAddressWorkflow(find FindProfileStep, attach AttachAddressStep) *AddAddressWorkflow {
	return &AddAddressWorkflow{run: workflow.Then(find, attach)}
}

// Execute runs the pipeline for one address addition.
func (w *AddAddressWorkflow) Execute(ctx context.Context, in AddAddressInput) (AddAddressDone, error) {
	return workflow.Run(ctx, "add profile address", w.run, in)
}

// ---- remove address ----

type (
	// RemoveAddressInput starts the pipeline.
	RemoveAddressInput struct {
		ProfileID ProfileID
		AddressID AddressID
	}

	// RemoveAddressFound carries the loaded profile onward.
	RemoveAddressFound struct {
		Profile   UserProfile
		AddressID AddressID
	}

	// RemoveAddressDone is the terminal stage: the updated profile.
	RemoveAddressDone struct {
		Profile UserProfile
	}
)

type (
	FindProfileForRemovalStep = workflow.Step[RemoveAddressInput, RemoveAddressFound]
	DetachAddressStep         = workflow.Step[RemoveAddressFound, RemoveAddressDone]
)

// FindProfileForRemoval loads the target profile.
func FindProfileForRemoval(profiles Profiles) FindProfileForRemovalStep {
	return func(ctx context.Context, in RemoveAddressInput) (RemoveAddressFound, error) {
		p, err := profiles.FindByID(ctx, in.ProfileID)
		if err != nil {
			return RemoveAddressFound{}, workflow.Infra(err)
		}
		if p == nil {
			return RemoveAddressFound{}, workflow.NotFound(ErrProfileNotFound)
		}
		return RemoveAddressFound{Profile: *p, AddressID: in.AddressID}, nil
	}
}

// DetachAddress removes the address and persists the updated profile.
func DetachAddress(profiles Profiles, clock share.Clock) DetachAddressStep {
	return func(ctx context.Context, in RemoveAddressFound) (RemoveAddressDone, error) {
		updated, err := in.Profile.RemoveAddress(in.AddressID, clock)
		if err != nil {
			return RemoveAddressDone{}, workflow.NotFound(err)
		}
		if err := profiles.Save(ctx, updated); err != nil {
			return RemoveAddressDone{}, workflow.Infra(err)
		}
		return RemoveAddressDone{Profile: updated}, nil
	}
}

// RemoveAddressWorkflow is the fixed remove-address pipeline.
type RemoveAddressWorkflow struct {
	run workflow.Step[RemoveAddressInput, RemoveAddressDone]
}

// NewRemoveAddressWorkflow wires the two steps in their fixed order.
func NewRemoveAddressWorkflow(find FindProfileForRemovalStep, detach DetachAddressStep) *RemoveAddressWorkflow {
	return &RemoveAddressWorkflow{run: workflow.Then(find, detach)}
}

// Execute runs the pipeline for one address removal.
func (w *RemoveAddressWorkflow) Execute(ctx context.Context, in RemoveAddressInput) (RemoveAddressDone, error) {
	return workflow.Run(ctx, "remove profile address", w.run, in)
}
