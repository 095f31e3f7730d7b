package share

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator mints identifiers for new aggregates. Factories take it as a
// collaborator so tests can pin the ids they expect.
type IDGenerator interface {
	NewID() string
}

// Clock supplies the current instant. Same deal: inject a fixed clock in
// tests, the system clock in production.
type Clock interface {
	Now() time.Time
}

// UUIDGenerator is the production IDGenerator, minting random UUIDs.
type UUIDGenerator struct{}

// NewID returns a fresh UUIDv4 string.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the wall-clock time in UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ValidID reports whether raw parses as a UUID. Reconstruction paths use it
// to reject identifiers that could never have been minted here.
func ValidID(raw string) bool {
	_, err := uuid.Parse(raw)
	return err == nil
}
