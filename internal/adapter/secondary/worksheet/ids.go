package worksheet

import "github.com/google/uuid"

// UUIDGenerator implements domain.IDGenerator with random UUIDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
