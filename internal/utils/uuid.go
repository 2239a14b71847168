package utils

import "github.com/google/uuid"

// UUIDGenerator issues entity identifiers. Version 7 UUIDs embed a
// millisecond timestamp, so generated ids sort in creation order.
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
