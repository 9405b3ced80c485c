package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/yudistiraa/signup-api/config"
	"github.com/yudistiraa/signup-api/internal/domain/entity"
	pginfra "github.com/yudistiraa/signup-api/internal/infrastructure/postgres"
	"github.com/yudistiraa/signup-api/pkg/helpers"
)

// Dev/test tooling: optionally wipes the users table, then inserts one
// pending-activation user with a known password and prints its token.
func main() {
	truncate := flag.Bool("truncate", false, "wipe the users table before seeding")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	repo := pginfra.NewUserRepository(pool)

	if *truncate {
		if err := repo.Truncate(ctx); err != nil {
			log.Fatalf("failed to truncate users: %v", err)
		}
		fmt.Println("users table truncated")
	}

	password := "P4ssword"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u := &entity.User{
		Username:        "user1",
		Email:           "user1@gmail.com",
		Password:        hash,
		Inactive:        true,
		ActivationToken: helpers.UUIDTokenGenerator{}.Generate(),
	}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s token=%s\n", u.ID, u.Email, password, u.ActivationToken)
}
