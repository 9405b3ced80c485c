package helpers

import "github.com/google/uuid"

// TokenGenerator produces opaque activation tokens. Tokens only need to
// be unguessable and collision-free at realistic user counts, not
// globally unique.
type TokenGenerator interface {
	Generate() string
}

// UUIDTokenGenerator issues random (v4) UUIDs as activation tokens.
type UUIDTokenGenerator struct{}

func (UUIDTokenGenerator) Generate() string {
	return uuid.NewString()
}
