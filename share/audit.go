package share

import (
	"fmt"
	"time"
)

// AuditInfo records when an aggregate was created and last changed. Values
// are immutable; Touch returns an advanced copy.
type AuditInfo struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuditInfo stamps a freshly created aggregate: both instants are now.
func NewAuditInfo(now time.Time) AuditInfo {
	return AuditInfo{CreatedAt: now, UpdatedAt: now}
}

// ReconstructAuditInfo re-wraps stored instants, rejecting the impossible
// orderings a corrupted document could carry.
func ReconstructAuditInfo(createdAt, updatedAt time.Time) (AuditInfo, error) {
	if createdAt.IsZero() || updatedAt.IsZero() {
		return AuditInfo{}, fmt.Errorf("audit instants must not be zero")
	}
	if updatedAt.Before(createdAt) {
		return AuditInfo{}, fmt.Errorf("audit updatedAt %s precedes createdAt %s", updatedAt, createdAt)
	}
	return AuditInfo{CreatedAt: createdAt, UpdatedAt: updatedAt}, nil
}

// Touch returns a copy with UpdatedAt advanced to now.
func (a AuditInfo) Touch(now time.Time) AuditInfo {
	return AuditInfo{CreatedAt: a.CreatedAt, UpdatedAt: now}
}
