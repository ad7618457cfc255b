package utils

import "github.com/google/uuid"

// UUIDGenerator hands out the ids of users, expenses and sessions.
// Ids are UUIDv7 so rows sort by creation time; if the v7 clock read fails a
// random v4 id is returned instead.
type UUIDGenerator struct{}

// NewUUIDGenerator returns a ready generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new id in canonical string form.
func (g *UUIDGenerator) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
