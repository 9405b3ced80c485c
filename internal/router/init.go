package router

import (
	userapp "github.com/yudistiraa/signup-api/internal/application"
	"github.com/yudistiraa/signup-api/internal/container"
	repouser "github.com/yudistiraa/signup-api/internal/domain/repository"
	pginfra "github.com/yudistiraa/signup-api/internal/infrastructure/postgres"
	handlers "github.com/yudistiraa/signup-api/internal/interface/http"
	usermodule "github.com/yudistiraa/signup-api/internal/router/modules"
	"github.com/yudistiraa/signup-api/pkg/helpers"
)

type UserModuleDeps struct {
	Repo      repouser.UserRepository
	Service   *userapp.Service
	Validator *userapp.RegistrationValidator
	Handler   *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	// The welcome-mail queue is optional; the service skips publishing
	// when no broker is configured.
	var events userapp.EventPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		events = pub
	}

	service := userapp.NewService(
		repo,
		container.GetMailer(),
		helpers.UUIDTokenGenerator{},
		events,
		container.GetLogger(),
	)

	validator := userapp.NewRegistrationValidator(repo)

	handler := handlers.NewUserHandler(service, validator, container.GetLogger())

	return UserModuleDeps{
		Repo:      repo,
		Service:   service,
		Validator: validator,
		Handler:   handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(usermodule.New(userDeps.Handler))
}
