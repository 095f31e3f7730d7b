package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrEthical07/shopflow/sample"
)

type sampleDocument struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Status      string        `json:"status"`
	Audit       auditDocument `json:"audit"`
}

// Samples is the Redis-backed sample.Samples.
type Samples struct {
	store *Store
}

// NewSamples builds the repository over a shared Store.
func NewSamples(store *Store) *Samples { return &Samples{store: store} }

func (r *Samples) docKey(id string) string { return r.store.key("sample", id) }

// Save persists the sample.
func (r *Samples) Save(ctx context.Context, s sample.Sample) error {
	doc := sampleDocument{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: s.Description,
		Status:      string(s.Status),
		Audit:       toAuditDocument(s.Audit),
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.store.setJSON(ctx, r.docKey(s.ID.String()), raw)
}

// FindByID rebuilds the sample through the validating domain path. A miss
// is (nil, nil).
func (r *Samples) FindByID(ctx context.Context, id sample.SampleID) (*sample.Sample, error) {
	raw, ok, err := r.store.getJSON(ctx, r.docKey(id.String()))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var doc sampleDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	s, err := sample.ReconstructSample(doc.ID, doc.Name, doc.Description, doc.Status, doc.Audit.CreatedAt, doc.Audit.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return &s, nil
}
