package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates identifiers for new rows.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues random (v4) UUIDs matching the uuid primary keys.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return v.String(), nil
}

// IsValid reports whether v parses as a UUID.
func IsValid(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}
