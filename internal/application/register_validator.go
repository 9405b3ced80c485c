package application

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/yudistiraa/signup-api/internal/domain/repository"
	"github.com/yudistiraa/signup-api/pkg/validation"
)

// RegisterInput is the raw signup payload. Anything else in the request
// body (including an "inactive" flag) is ignored.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=4,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,passwd"`
}

// FieldErrors maps each input field to its first failing rule's message.
// Field order here is the order the API reports them in.
type FieldErrors struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

func (e *FieldErrors) Empty() bool {
	return e.Username == "" && e.Email == "" && e.Password == ""
}

func (e *FieldErrors) set(field, message string) {
	switch field {
	case "username":
		if e.Username == "" {
			e.Username = message
		}
	case "email":
		if e.Email == "" {
			e.Email = message
		}
	case "password":
		if e.Password == "" {
			e.Password = message
		}
	}
}

// RegistrationValidator checks a signup payload against the field rules
// and, when the email is syntactically sound, against the user store for
// uniqueness. Fields are validated independently; each field reports
// only its first failing rule.
type RegistrationValidator struct {
	repo     repository.UserRepository
	validate *validator.Validate
}

func NewRegistrationValidator(repo repository.UserRepository) *RegistrationValidator {
	return &RegistrationValidator{repo: repo, validate: validation.New()}
}

// Validate returns the per-field error messages for in. A non-nil error
// means the store lookup itself failed, not that validation failed.
func (v *RegistrationValidator) Validate(ctx context.Context, in RegisterInput) (*FieldErrors, error) {
	fieldErrs := &FieldErrors{}

	if err := v.validate.StructCtx(ctx, in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		for _, fe := range verrs {
			fieldErrs.set(fe.Field(), validation.Message(fe.Field(), fe.Tag()))
		}
	}

	// The uniqueness lookup only runs once the address passed the
	// syntactic rules, so obviously invalid input never hits the store.
	if fieldErrs.Email == "" {
		_, err := v.repo.GetByEmail(ctx, in.Email)
		switch {
		case err == nil:
			fieldErrs.Email = "Email in use"
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}

	return fieldErrs, nil
}
