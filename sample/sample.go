package sample

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrEthical07/shopflow/share"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// ErrSampleNotFound reports a lookup miss.
var ErrSampleNotFound = errors.New("sample not found")

// Status is the sample lifecycle state.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusArchived Status = "ARCHIVED"
)

// ParseStatus resolves a status by name, rejecting anything outside the set.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusDraft, StatusActive, StatusInactive, StatusArchived:
		return Status(raw), nil
	default:
		return "", fmt.Errorf("unknown sample status: %q", raw)
	}
}

// SampleID identifies a Sample. UUID-backed.
type SampleID struct {
	value string
}

// ParseSampleID validates raw as a UUID identifier.
func ParseSampleID(raw string) (SampleID, error) {
	if !share.ValidID(raw) {
		return SampleID{}, fmt.Errorf("invalid sample id: %q", raw)
	}
	return SampleID{value: raw}, nil
}

// String returns the identifier text.
func (id SampleID) String() string { return id.value }

// Sample is the aggregate. Description is optional; nil means absent.
// Values are immutable: updates return a fresh copy or an error.
type Sample struct {
	ID          SampleID
	Name        string
	Description *string
	Status      Status
	Audit       share.AuditInfo
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("sample name must not be blank")
	}
	if len([]rune(name)) > maxNameLength {
		return fmt.Errorf("sample name exceeds %d characters", maxNameLength)
	}
	return nil
}

func validateDescription(description *string) error {
	if description == nil {
		return nil
	}
	if len([]rune(*description)) > maxDescriptionLength {
		return fmt.Errorf("sample description exceeds %d characters", maxDescriptionLength)
	}
	return nil
}

// NewSample validates and assembles a sample. Creation normally goes through
// Factory; this is the shared validating path.
func NewSample(id SampleID, name string, description *string, status Status, audit share.AuditInfo) (Sample, error) {
	if err := validateName(name); err != nil {
		return Sample{}, err
	}
	if err := validateDescription(description); err != nil {
		return Sample{}, err
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return Sample{}, err
	}
	return Sample{ID: id, Name: name, Description: description, Status: status, Audit: audit}, nil
}

// ReconstructSample rebuilds a persisted sample through the creation
// validation.
func ReconstructSample(id, name string, description *string, status string, createdAt, updatedAt time.Time) (Sample, error) {
	sampleID, err := ParseSampleID(id)
	if err != nil {
		return Sample{}, err
	}
	st, err := ParseStatus(status)
	if err != nil {
		return Sample{}, err
	}
	audit, err := share.ReconstructAuditInfo(createdAt, updatedAt)
	if err != nil {
		return Sample{}, err
	}
	return NewSample(sampleID, name, description, st, audit)
}

// UpdateName returns a copy with the new name, or an error and the receiver
// untouched.
func (s Sample) UpdateName(name string, now time.Time) (Sample, error) {
	if err := validateName(name); err != nil {
		return Sample{}, err
	}
	s.Name = name
	s.Audit = s.Audit.Touch(now)
	return s, nil
}

// UpdateDescription returns a copy with the new description; nil clears it.
func (s Sample) UpdateDescription(description *string, now time.Time) (Sample, error) {
	if err := validateDescription(description); err != nil {
		return Sample{}, err
	}
	s.Description = description
	s.Audit = s.Audit.Touch(now)
	return s, nil
}

// UpdateStatus returns a copy in the new status.
func (s Sample) UpdateStatus(status Status, now time.Time) (Sample, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return Sample{}, err
	}
	s.Status = status
	s.Audit = s.Audit.Touch(now)
	return s, nil
}

// IsActive reports whether the sample is in ACTIVE status.
func (s Sample) IsActive() bool { return s.Status == StatusActive }

// Factory creates draft samples with fresh identifiers and audit stamps.
type Factory struct {
	IDs   share.IDGenerator
	Clock share.Clock
}

// Create builds a new DRAFT sample.
func (f Factory) Create(name string, description *string) (Sample, error) {
	id, err := ParseSampleID(f.IDs.NewID())
	if err != nil {
		return Sample{}, err
	}
	return NewSample(id, name, description, StatusDraft, share.NewAuditInfo(f.Clock.Now()))
}

// Samples is the sample repository. FindByID returns (nil, nil) on a miss.
type Samples interface {
	FindByID(ctx context.Context, id SampleID) (*Sample, error)
	Save(ctx context.Context, s Sample) error
}
