package domain

import "github.com/google/uuid"

// NewID returns a fresh lesson identifier. The original scheme derived ids
// from wall-clock time plus a small random perturbation; random UUIDs remove
// the collision window entirely.
func NewID() string {
	return uuid.NewString()
}
