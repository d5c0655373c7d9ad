package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruit-portal-api/internal/domain"
	"recruit-portal-api/pkg/apperror"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type personRepo struct {
	db *pgxpool.Pool
}

func NewPersonRepository(db *pgxpool.Pool) domain.PersonRepository {
	return &personRepo{db: db}
}

func (r *personRepo) Create(ctx context.Context, person *domain.Person) error {
	query := `
		INSERT INTO person (name, surname, pnr, email, password_hash, role_id, username, created_at)
		VALUES ($1, $2, $3, $4, $5, (SELECT id FROM role WHERE name = $6), $7, $8)
		RETURNING id`

	person.CreatedAt = time.Now()
	if person.Role == "" {
		person.Role = domain.RoleApplicant
	}

	err := r.db.QueryRow(ctx, query,
		person.Name,
		person.Surname,
		person.Pnr,
		person.Email,
		person.PasswordHash,
		person.Role,
		person.Username,
		person.CreatedAt,
	).Scan(&person.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "pnr") {
				return apperror.Conflict("A person with this personal number already exists")
			}
			return apperror.Conflict("A person with this email already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *personRepo) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	query := `
		SELECT p.id, p.name, p.surname, p.pnr, p.email, p.password_hash, r.name, p.username, p.created_at
		FROM person p
		JOIN role r ON p.role_id = r.id
		WHERE p.id = $1`

	return r.scanPerson(r.db.QueryRow(ctx, query, id))
}

func (r *personRepo) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	query := `
		SELECT p.id, p.name, p.surname, p.pnr, p.email, p.password_hash, r.name, p.username, p.created_at
		FROM person p
		JOIN role r ON p.role_id = r.id
		WHERE p.email = $1`

	return r.scanPerson(r.db.QueryRow(ctx, query, email))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *personRepo) scanPerson(row rowScanner) (*domain.Person, error) {
	var person domain.Person
	err := row.Scan(
		&person.ID, &person.Name, &person.Surname, &person.Pnr, &person.Email,
		&person.PasswordHash, &person.Role, &person.Username, &person.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}
