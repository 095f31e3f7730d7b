package sample

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrEthical07/shopflow/workflow"
)

// Creation stage values.
type (
	// CreateInput starts the pipeline with the raw form values.
	CreateInput struct {
		Name        string
		Description *string
	}

	// CreateValidated certifies the input; no Sample exists yet.
	CreateValidated struct {
		Name        string
		Description *string
	}

	// CreateDrafted carries the factory-built draft.
	CreateDrafted struct {
		Sample Sample
	}

	// CreateSaved is the terminal stage: the persisted sample.
	CreateSaved struct {
		Sample Sample
	}
)

// The creation step shapes.
type (
	ValidateInputStep = workflow.Step[CreateInput, CreateValidated]
	DraftSampleStep   = workflow.Step[CreateValidated, CreateDrafted]
	SaveSampleStep    = workflow.Step[CreateDrafted, CreateSaved]
)

// ValidateInput rejects bad input before any Sample is constructed: blank
// or over-long names, markup characters in names, over-long descriptions.
func ValidateInput() ValidateInputStep {
	return func(ctx context.Context, in CreateInput) (CreateValidated, error) {
		if err := validateName(in.Name); err != nil {
			return CreateValidated{}, workflow.Invalid(err)
		}
		if strings.ContainsAny(in.Name, "<>") {
			return CreateValidated{}, workflow.Invalid(fmt.Errorf("sample name must not contain markup characters: %q", in.Name))
		}
		if err := validateDescription(in.Description); err != nil {
			return CreateValidated{}, workflow.Invalid(err)
		}
		return CreateValidated{Name: in.Name, Description: in.Description}, nil
	}
}

// DraftSample builds the draft through the factory.
func DraftSample(factory Factory) DraftSampleStep {
	return func(ctx context.Context, in CreateValidated) (CreateDrafted, error) {
		s, err := factory.Create(in.Name, in.Description)
		if err != nil {
			return CreateDrafted{}, workflow.Invalid(err)
		}
		return CreateDrafted{Sample: s}, nil
	}
}

// SaveSample persists the draft.
func SaveSample(samples Samples) SaveSampleStep {
	return func(ctx context.Context, in CreateDrafted) (CreateSaved, error) {
		if err := samples.Save(ctx, in.Sample); err != nil {
			return CreateSaved{}, workflow.Infra(err)
		}
		return CreateSaved{Sample: in.Sample}, nil
	}
}

// CreateWorkflow is the fixed sample-creation pipeline.
type CreateWorkflow struct {
	run workflow.Step[CreateInput, CreateSaved]
}

// NewCreateWorkflow wires the three steps in their fixed order.
func NewCreateWorkflow(validate ValidateInputStep, draft DraftSampleStep, save SaveSampleStep) *CreateWorkflow {
	return &CreateWorkflow{run: workflow.Then(workflow.Then(validate, draft), save)}
}

// Execute runs the pipeline for one creation request.
func (w *CreateWorkflow) Execute(ctx context.Context, in CreateInput) (CreateSaved, error) {
	return workflow.Run(ctx, "create sample", w.run, in)
}
