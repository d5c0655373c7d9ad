package usecase

import (
	"context"
	"errors"

	"recruit-portal-api/internal/domain"
	"recruit-portal-api/pkg/apperror"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	personRepo      domain.PersonRepository
	competenceRepo  domain.CompetenceRepository
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	personRepo domain.PersonRepository,
	competenceRepo domain.CompetenceRepository,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		personRepo:      personRepo,
		competenceRepo:  competenceRepo,
	}
}

// Submit creates the application aggregate atomically: one application row
// plus all competence-profile and availability children, or nothing.
func (uc *applicationUsecase) Submit(ctx context.Context, personID int64, competences []domain.CompetenceEntry, availabilities []domain.AvailabilityEntry) (*domain.Application, error) {
	// 1. Person must exist
	if _, err := uc.personRepo.GetByID(ctx, personID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Person not found")
		}
		return nil, apperror.Internal(err)
	}

	// 2. One application per person. This check gives the friendly error;
	// the unique constraint on application.person_id closes the race when
	// two submissions pass it concurrently.
	exists, err := uc.applicationRepo.ExistsForPerson(ctx, personID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already submitted an application")
	}

	// 3. Every claimed competence must be in the catalog
	ids := make([]int64, 0, len(competences))
	seen := make(map[int64]bool, len(competences))
	for _, c := range competences {
		if !seen[c.CompetenceID] {
			seen[c.CompetenceID] = true
			ids = append(ids, c.CompetenceID)
		}
	}
	count, err := uc.competenceRepo.CountByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if count != len(ids) {
		return nil, apperror.BadRequest("One or more competences do not exist")
	}

	// 4. Atomic insert of the aggregate
	app := &domain.Application{
		PersonID: personID,
		Status:   domain.StatusUnhandled,
	}
	for _, c := range competences {
		app.Competences = append(app.Competences, domain.CompetenceProfile{
			CompetenceID:      c.CompetenceID,
			YearsOfExperience: c.YearsOfExperience,
		})
	}
	for _, a := range availabilities {
		app.Availabilities = append(app.Availabilities, domain.Availability{
			FromDate: a.FromDate,
			ToDate:   a.ToDate,
		})
	}

	if err := uc.applicationRepo.CreateWithChildren(ctx, app); err != nil {
		return nil, err
	}

	// 5. Return the hydrated aggregate with denormalized competence names
	return uc.GetByID(ctx, app.ID)
}

// GetMyApplication returns the caller's own aggregate
func (uc *applicationUsecase) GetMyApplication(ctx context.Context, personID int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByPersonID(ctx, personID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("No application found")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (uc *applicationUsecase) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (uc *applicationUsecase) ListAll(ctx context.Context) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.GetAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// UpdateStatus transitions an application to accepted or rejected. The
// transition is not guarded: a recruiter may revise a decision, so
// accepted and rejected remain freely re-transitionable.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Application, error) {
	if status != domain.StatusAccepted && status != domain.StatusRejected {
		return nil, apperror.BadRequest("Status must be accepted or rejected")
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	return uc.GetByID(ctx, id)
}

func (uc *applicationUsecase) ListCompetences(ctx context.Context) ([]domain.Competence, error) {
	competences, err := uc.competenceRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return competences, nil
}
