// Seeds a recruiter account so the triage side of the portal is usable on a
// fresh database. Roles and the competence catalog are seeded by migrations;
// this only creates the credentialed user, which needs a bcrypt hash.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"recruit-portal-api/config"
	"recruit-portal-api/internal/domain"
	"recruit-portal-api/internal/repository/postgres"
	"recruit-portal-api/internal/usecase"
	"recruit-portal-api/pkg/database"
	"recruit-portal-api/pkg/hash"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	email := os.Getenv("SEED_RECRUITER_EMAIL")
	password := os.Getenv("SEED_RECRUITER_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_RECRUITER_EMAIL and SEED_RECRUITER_PASSWORD are required")
	}

	if err := database.RunMigrations(cfg.DBUrl); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	hasher := hash.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	personRepo := postgres.NewPersonRepository(dbPool)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	person := &domain.Person{
		Name:         "Default",
		Surname:      "Recruiter",
		Pnr:          "19700101-0000",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleRecruiter,
		Username:     usecase.DeriveUsername("Default", "Recruiter"),
	}

	if err := personRepo.Create(ctx, person); err != nil {
		log.Fatalf("Failed to create recruiter: %v", err)
	}

	log.Printf("Recruiter account created: id=%d email=%s", person.ID, person.Email)
}
