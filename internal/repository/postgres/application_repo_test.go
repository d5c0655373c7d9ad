//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruit-portal-api/internal/domain"
	"recruit-portal-api/internal/repository/postgres"
	"recruit-portal-api/pkg/apperror"
	"recruit-portal-api/pkg/database"
)

// These tests run against a disposable database. Point TEST_DATABASE_URL
// at one and run with -tags integration; the suite skips itself otherwise.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, database.RunMigrations(dbURL))

	pool, err := pgxpool.New(context.Background(), dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createTestPerson(t *testing.T, pool *pgxpool.Pool) *domain.Person {
	t.Helper()

	n := time.Now().UnixNano()
	person := &domain.Person{
		Name:         "Test",
		Surname:      "Applicant",
		Pnr:          fmt.Sprintf("%08d-%04d", n%100000000, (n/100000000)%10000),
		Email:        fmt.Sprintf("applicant%d@example.test", n),
		PasswordHash: "not-a-real-hash",
		Role:         domain.RoleApplicant,
		Username:     fmt.Sprintf("test.applicant%d", n),
	}
	require.NoError(t, postgres.NewPersonRepository(pool).Create(context.Background(), person))

	t.Cleanup(func() {
		ctx := context.Background()
		pool.Exec(ctx, `DELETE FROM application WHERE person_id = $1`, person.ID)
		pool.Exec(ctx, `DELETE FROM person WHERE id = $1`, person.ID)
	})
	return person
}

func countRowsForPerson(t *testing.T, pool *pgxpool.Pool, personID int64) (apps, profiles, availabilities int) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM application WHERE person_id = $1`, personID).Scan(&apps))
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM competence_profile cp
		 JOIN application a ON cp.application_id = a.id
		 WHERE a.person_id = $1`, personID).Scan(&profiles))
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM availability av
		 JOIN application a ON av.application_id = a.id
		 WHERE a.person_id = $1`, personID).Scan(&availabilities))
	return apps, profiles, availabilities
}

func TestCreateWithChildren(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	repo := postgres.NewApplicationRepository(pool)
	person := createTestPerson(t, pool)

	catalog, err := postgres.NewCompetenceRepository(pool).List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, catalog)

	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("Should persist zero rows when a child row is invalid", func(t *testing.T) {
		app := &domain.Application{
			PersonID: person.ID,
			Competences: []domain.CompetenceProfile{
				{CompetenceID: catalog[0].ID, YearsOfExperience: 5},
			},
			Availabilities: []domain.Availability{
				{FromDate: from, ToDate: to},
				// violates the to_date > from_date check after the first
				// child rows have already been inserted
				{FromDate: to, ToDate: from},
			},
		}

		err := repo.CreateWithChildren(ctx, app)
		assert.Error(t, err)

		apps, profiles, availabilities := countRowsForPerson(t, pool, person.ID)
		assert.Zero(t, apps)
		assert.Zero(t, profiles)
		assert.Zero(t, availabilities)

		exists, err := repo.ExistsForPerson(ctx, person.ID)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Should commit the full aggregate once all rows are valid", func(t *testing.T) {
		app := &domain.Application{
			PersonID: person.ID,
			Competences: []domain.CompetenceProfile{
				{CompetenceID: catalog[0].ID, YearsOfExperience: 5},
			},
			Availabilities: []domain.Availability{
				{FromDate: from, ToDate: to},
			},
		}

		require.NoError(t, repo.CreateWithChildren(ctx, app))

		apps, profiles, availabilities := countRowsForPerson(t, pool, person.ID)
		assert.Equal(t, 1, apps)
		assert.Equal(t, 1, profiles)
		assert.Equal(t, 1, availabilities)

		stored, err := repo.GetByPersonID(ctx, person.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnhandled, stored.Status)
		assert.Len(t, stored.Competences, 1)
		assert.Equal(t, catalog[0].Name, stored.Competences[0].CompetenceName)
	})

	t.Run("Should report a conflict for a second submission by the same person", func(t *testing.T) {
		app := &domain.Application{
			PersonID: person.ID,
			Availabilities: []domain.Availability{
				{FromDate: from, ToDate: to},
			},
		}

		err := repo.CreateWithChildren(ctx, app)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)

		apps, _, _ := countRowsForPerson(t, pool, person.ID)
		assert.Equal(t, 1, apps)
	})
}
