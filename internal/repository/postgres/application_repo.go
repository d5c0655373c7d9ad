package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruit-portal-api/internal/domain"
	"recruit-portal-api/pkg/apperror"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// CreateWithChildren inserts the application and all child rows in one
// transaction. The unique constraint on person_id turns a concurrent
// duplicate submission into a Conflict instead of a second aggregate.
func (r *applicationRepo) CreateWithChildren(ctx context.Context, app *domain.Application) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	if app.Status == "" {
		app.Status = domain.StatusUnhandled
	}
	app.SubmittedAt = time.Now()

	query := `
		INSERT INTO application (person_id, status, submitted_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	if err := tx.QueryRow(ctx, query, app.PersonID, app.Status, app.SubmittedAt).Scan(&app.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("An application already exists for this person")
		}
		return apperror.Internal(err)
	}

	for i := range app.Competences {
		query := `
			INSERT INTO competence_profile (application_id, competence_id, years_of_experience)
			VALUES ($1, $2, $3)
			RETURNING id`
		cp := &app.Competences[i]
		if err := tx.QueryRow(ctx, query, app.ID, cp.CompetenceID, cp.YearsOfExperience).Scan(&cp.ID); err != nil {
			return apperror.Internal(err)
		}
	}

	for i := range app.Availabilities {
		query := `
			INSERT INTO availability (application_id, from_date, to_date)
			VALUES ($1, $2, $3)
			RETURNING id`
		av := &app.Availabilities[i]
		if err := tx.QueryRow(ctx, query, app.ID, av.FromDate, av.ToDate).Scan(&av.ID); err != nil {
			return apperror.Internal(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// GetByID retrieves the full aggregate with joined applicant data
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT a.id, a.person_id, a.status, a.submitted_at, p.name, p.surname
		FROM application a
		JOIN person p ON a.person_id = p.id
		WHERE a.id = $1`

	return r.fetchOne(ctx, query, id)
}

// GetByPersonID retrieves the aggregate owned by the given person
func (r *applicationRepo) GetByPersonID(ctx context.Context, personID int64) (*domain.Application, error) {
	query := `
		SELECT a.id, a.person_id, a.status, a.submitted_at, p.name, p.surname
		FROM application a
		JOIN person p ON a.person_id = p.id
		WHERE a.person_id = $1`

	return r.fetchOne(ctx, query, personID)
}

// GetAll retrieves all aggregates with joined applicant data, newest first
func (r *applicationRepo) GetAll(ctx context.Context) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.person_id, a.status, a.submitted_at, p.name, p.surname
		FROM application a
		JOIN person p ON a.person_id = p.id
		ORDER BY a.submitted_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.PersonID, &app.Status, &app.SubmittedAt,
			&app.ApplicantName, &app.ApplicantSurname,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range applications {
		if err := r.loadChildren(ctx, &applications[i]); err != nil {
			return nil, err
		}
	}
	return applications, nil
}

// ExistsForPerson checks if an application already exists for the person
func (r *applicationRepo) ExistsForPerson(ctx context.Context, personID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM application WHERE person_id = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, personID).Scan(&exists)
	return exists, err
}

// UpdateStatus updates the status of an application
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE application SET status = $2 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) fetchOne(ctx context.Context, query string, arg any) (*domain.Application, error) {
	var app domain.Application
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&app.ID, &app.PersonID, &app.Status, &app.SubmittedAt,
		&app.ApplicantName, &app.ApplicantSurname,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadChildren(ctx, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// loadChildren hydrates the competence-profile and availability children,
// denormalizing competence names from the catalog.
func (r *applicationRepo) loadChildren(ctx context.Context, app *domain.Application) error {
	query := `
		SELECT cp.id, cp.competence_id, c.name, cp.years_of_experience
		FROM competence_profile cp
		JOIN competence c ON cp.competence_id = c.id
		WHERE cp.application_id = $1
		ORDER BY cp.id`

	rows, err := r.db.Query(ctx, query, app.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	app.Competences = app.Competences[:0]
	for rows.Next() {
		var cp domain.CompetenceProfile
		if err := rows.Scan(&cp.ID, &cp.CompetenceID, &cp.CompetenceName, &cp.YearsOfExperience); err != nil {
			return err
		}
		app.Competences = append(app.Competences, cp)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	query = `
		SELECT id, from_date, to_date
		FROM availability
		WHERE application_id = $1
		ORDER BY id`

	rows, err = r.db.Query(ctx, query, app.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	app.Availabilities = app.Availabilities[:0]
	for rows.Next() {
		var av domain.Availability
		if err := rows.Scan(&av.ID, &av.FromDate, &av.ToDate); err != nil {
			return err
		}
		app.Availabilities = append(app.Availabilities, av)
	}
	return rows.Err()
}
