package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/yudistiraa/signup-api/internal/domain/entity"
	"github.com/yudistiraa/signup-api/internal/domain/repository"
	"github.com/yudistiraa/signup-api/pkg/helpers"
	"github.com/yudistiraa/signup-api/pkg/mailer"
	"github.com/yudistiraa/signup-api/pkg/mailer/templates"
)

var (
	// ErrEmailInUse reports a registration that lost the race on the
	// email unique constraint.
	ErrEmailInUse = errors.New("email in use")
	// ErrEmailDelivery reports that the activation email could not be
	// delivered; the registration was rolled back.
	ErrEmailDelivery = errors.New("failed to deliver activation email")
	// ErrActivation covers both an unknown token and an already-active
	// account. Callers get one uniform error so the endpoint cannot be
	// used as a token-guessing oracle.
	ErrActivation = errors.New("account is either active or token is invalid")
)

// EventPublisher pushes fire-and-forget jobs onto the email queue.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Service runs the registration workflow: hash, tokenize, persist, then
// dispatch the activation email. Persistence and delivery are all or
// nothing; a failed delivery deletes the record it just created.
type Service struct {
	Repo   repository.UserRepository
	Mailer mailer.Mailer
	Tokens helpers.TokenGenerator
	Events EventPublisher
	Logger *logrus.Logger
}

func NewService(repo repository.UserRepository, m mailer.Mailer, tokens helpers.TokenGenerator, events EventPublisher, logger *logrus.Logger) *Service {
	return &Service{
		Repo:   repo,
		Mailer: m,
		Tokens: tokens,
		Events: events,
		Logger: logger,
	}
}

// Register persists in as a new inactive user and sends the activation
// email. The input is expected to have passed RegistrationValidator.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return err
	}

	u := &entity.User{
		Username:        in.Username,
		Email:           in.Email,
		Password:        hash,
		Inactive:        true,
		ActivationToken: s.Tokens.Generate(),
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Two concurrent signups for the same address: the store
			// constraint decides, we report it like the pre-check would.
			return ErrEmailInUse
		}
		return err
	}

	if err := s.Mailer.SendActivation(ctx, u.Email, u.ActivationToken); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("activation email failed, rolling back user")
		}
		if delErr := s.Repo.Delete(ctx, u.ID); delErr != nil && s.Logger != nil {
			// Narrow window: a crash between the failed send and this
			// delete leaves an orphan inactive record.
			s.Logger.WithError(delErr).WithField("user_id", u.ID).Warn("rollback delete failed")
		}
		return ErrEmailDelivery
	}

	if s.Logger != nil {
		s.Logger.WithField("email", u.Email).Info("user registered, pending activation")
	}
	return nil
}

// Activate redeems an activation token. At most one activation succeeds
// per token; repeats and unknown tokens fail with ErrActivation.
func (s *Service) Activate(ctx context.Context, token string) error {
	u, err := s.Repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivation
		}
		return err
	}
	if !u.Inactive {
		return ErrActivation
	}

	u.Inactive = false
	u.ActivationToken = ""
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}

	if s.Events != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: templates.Welcome,
			Data:     map[string]any{"Username": u.Username},
		}
		if pubErr := s.Events.PublishJSON(ctx, job); pubErr != nil && s.Logger != nil {
			s.Logger.WithError(pubErr).WithField("email", u.Email).Warn("failed to enqueue welcome email")
		}
	}

	if s.Logger != nil {
		s.Logger.WithField("email", u.Email).Info("user activated")
	}
	return nil
}
