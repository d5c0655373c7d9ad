package domain

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// Application status constants
const (
	StatusUnhandled = "unhandled"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
)

// CompetenceProfile is a competence claim attached to an application.
// Created atomically with its parent, immutable afterward.
type CompetenceProfile struct {
	ID                int64   `json:"id"`
	CompetenceID      int64   `json:"competence_id"`
	CompetenceName    string  `json:"competence_name"`
	YearsOfExperience float64 `json:"years_of_experience"`
}

// Availability is a period during which the applicant can work.
type Availability struct {
	ID       int64     `json:"id"`
	FromDate time.Time `json:"from_date"`
	ToDate   time.Time `json:"to_date"`
}

/// Application is the aggregate root: one row per person plus its
// competence-profile and availability children, always created and read
// together.
type Application struct {
	ID          int64     `json:"id"`
	PersonID    int64     `json:"person_id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`

	Competences    []CompetenceProfile `json:"competences"`
	Availabilities []Availability      `json:"availabilities"`

	// Joined applicant data for recruiter list views
	ApplicantName    *string `json:"applicant_name,omitempty"`
	ApplicantSurname *string `json:"applicant_surname,omitempty"`
}

// CompetenceEntry is one competence claim in a submission payload.
type CompetenceEntry struct {
	CompetenceID      int64
	YearsOfExperience float64
}

// AvailabilityEntry is one availability window in a submission payload.
type AvailabilityEntry struct {
	FromDate time.Time
	ToDate   time.Time
}

type ApplicationRepository interface {
	// CreateWithChildren inserts the application row and all child rows in a
	// single transaction; any failure rolls back the whole aggregate.
	CreateWithChildren(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByPersonID(ctx context.Context, personID int64) (*Application, error)
	GetAll(ctx context.Context) ([]Application, error)
	ExistsForPerson(ctx context.Context, personID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type ApplicationUsecase interface {
	Submit(ctx context.Context, personID int64, competences []CompetenceEntry, availabilities []AvailabilityEntry) (*Application, error)
	GetMyApplication(ctx context.Context, personID int64) (*Application, error)
	GetByID(ctx context.Context, id int64) (*Application, error)
	ListAll(ctx context.Context) ([]Application, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*Application, error)
	ListCompetences(ctx context.Context) ([]Competence, error)
}
