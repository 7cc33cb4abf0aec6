package utils

import "github.com/google/uuid"

// UUIDGenerator issues note and folder identifiers. UUIDv7 keeps ids
// time-ordered so freshly created notes cluster in the metadata index;
// when the monotonic source fails it falls back to a random v4.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
