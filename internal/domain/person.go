package domain

import (
	"context"
	"time"
)

// Role names. Roles are a fixed catalog referenced, never owned, by Person.
const (
	RoleApplicant = "applicant"
	RoleRecruiter = "recruiter"
)

// Person is a registered user of the portal. PasswordHash never leaves the
// server; Username is derived from name and surname at registration.
type Person struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Pnr          string    `json:"pnr"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterInput carries the already-validated registration payload into the
// workflow layer.
type RegisterInput struct {
	Name     string
	Surname  string
	Pnr      string
	Email    string
	Password string
}

type PersonRepository interface {
	Create(ctx context.Context, person *Person) error
	GetByID(ctx context.Context, id int64) (*Person, error)
	GetByEmail(ctx context.Context, email string) (*Person, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*Person, error)
	// Login returns a signed bearer token and the authenticated person.
	Login(ctx context.Context, email, password string) (string, *Person, error)
	GetCurrentPerson(ctx context.Context, id int64) (*Person, error)
	// GetPerson enforces the self-or-recruiter rule for profile reads.
	GetPerson(ctx context.Context, requesterID int64, requesterRole string, id int64) (*Person, error)
}
