package ident

import (
	"github.com/google/uuid"

	"github.com/example/formbuilder/internal/ports/secondary"
)

// UUIDTokens implements secondary.TokenGenerator with random UUIDs.
type UUIDTokens struct{}

// NewToken returns a new version 4 UUID.
func (UUIDTokens) NewToken() string {
	return uuid.NewString()
}

// Ensure UUIDTokens implements the interface
var _ secondary.TokenGenerator = UUIDTokens{}
