package entity

import (
	"time"
)

// User is the aggregate root for the registration domain.
// Password always holds a bcrypt hash, never the plaintext.
//
// A freshly registered user is Inactive and carries a one-shot
// ActivationToken; redeeming the token clears it and flips Inactive off.
type User struct {
	ID              string
	Username        string
	Email           string
	Password        string
	Inactive        bool
	ActivationToken string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
