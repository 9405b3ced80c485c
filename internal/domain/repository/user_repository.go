package repository

import (
	"context"
	"errors"

	"github.com/yudistiraa/signup-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned by lookups that match no user.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Create when the email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByToken(ctx context.Context, token string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	// Truncate wipes all users. Reset tooling only, never part of the
	// production surface.
	Truncate(ctx context.Context) error
}
