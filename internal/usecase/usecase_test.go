package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recruit-portal-api/internal/domain"
	"recruit-portal-api/internal/usecase"
	"recruit-portal-api/pkg/apperror"
	"recruit-portal-api/pkg/auth"
	"recruit-portal-api/pkg/hash"
)

// Mock Repositories
type MockPersonRepo struct {
	mock.Mock
}

func (m *MockPersonRepo) Create(ctx context.Context, person *domain.Person) error {
	return m.Called(ctx, person).Error(0)
}
func (m *MockPersonRepo) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}
func (m *MockPersonRepo) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) CreateWithChildren(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByPersonID(ctx context.Context, personID int64) (*domain.Application, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetAll(ctx context.Context) ([]domain.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ExistsForPerson(ctx context.Context, personID int64) (bool, error) {
	args := m.Called(ctx, personID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockCompetenceRepo struct {
	mock.Mock
}

func (m *MockCompetenceRepo) List(ctx context.Context) ([]domain.Competence, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Competence), args.Error(1)
}
func (m *MockCompetenceRepo) CountByIDs(ctx context.Context, ids []int64) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func newAuthUC(repo domain.PersonRepository) domain.AuthUsecase {
	return usecase.NewAuthUsecase(repo, hash.NewHasher(4), auth.NewTokenService("test-secret", time.Hour))
}

func TestRegister(t *testing.T) {
	t.Run("Should hash password and derive username before persisting", func(t *testing.T) {
		mockRepo := new(MockPersonRepo)
		uc := newAuthUC(mockRepo)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Person")).Return(nil).Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Person)
			assert.NotEmpty(t, p.PasswordHash)
			assert.NotEqual(t, "Password1", p.PasswordHash)
			assert.Equal(t, "john.doe", p.Username)
			assert.Equal(t, domain.RoleApplicant, p.Role)
		})

		person, err := uc.Register(context.Background(), domain.RegisterInput{
			Name:     "John",
			Surname:  "Doe",
			Pnr:      "19900101-1234",
			Email:    "John@x.se",
			Password: "Password1",
		})
		assert.NoError(t, err)
		assert.Equal(t, "john@x.se", person.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should surface repository conflict unchanged", func(t *testing.T) {
		mockRepo := new(MockPersonRepo)
		uc := newAuthUC(mockRepo)

		conflict := apperror.Conflict("A person with this email already exists")
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(conflict)

		_, err := uc.Register(context.Background(), domain.RegisterInput{
			Name: "John", Surname: "Doe", Pnr: "19900101-1234",
			Email: "john@x.se", Password: "Password1",
		})
		assert.ErrorIs(t, err, conflict)
	})
}

func TestLogin(t *testing.T) {
	hasher := hash.NewHasher(4)
	passwordHash, _ := hasher.Hash("Password1")
	stored := &domain.Person{
		ID:           1,
		Email:        "john@x.se",
		PasswordHash: passwordHash,
		Role:         domain.RoleApplicant,
	}

	t.Run("Should return a verifiable token for valid credentials", func(t *testing.T) {
		mockRepo := new(MockPersonRepo)
		tokens := auth.NewTokenService("test-secret", time.Hour)
		uc := usecase.NewAuthUsecase(mockRepo, hasher, tokens)

		mockRepo.On("GetByEmail", mock.Anything, "john@x.se").Return(stored, nil)

		token, person, err := uc.Login(context.Background(), "John@x.se", "Password1")
		assert.NoError(t, err)
		assert.Equal(t, stored.ID, person.ID)

		claims, err := tokens.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), claims.ID)
		assert.Equal(t, "john@x.se", claims.Email)
	})

	t.Run("Should fail with Authentication for wrong password", func(t *testing.T) {
		mockRepo := new(MockPersonRepo)
		uc := usecase.NewAuthUsecase(mockRepo, hasher, auth.NewTokenService("test-secret", time.Hour))

		mockRepo.On("GetByEmail", mock.Anything, "john@x.se").Return(stored, nil)

		_, _, err := uc.Login(context.Background(), "john@x.se", "wrong")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
	})

	t.Run("Should fail identically for unknown email", func(t *testing.T) {
		mockRepo := new(MockPersonRepo)
		uc := usecase.NewAuthUsecase(mockRepo, hasher, auth.NewTokenService("test-secret", time.Hour))

		mockRepo.On("GetByEmail", mock.Anything, "nobody@x.se").Return(nil, domain.ErrNotFound)

		_, _, err := uc.Login(context.Background(), "nobody@x.se", "Password1")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
		assert.Equal(t, "Invalid email or password", appErr.Message)
	})
}

func TestGetPerson(t *testing.T) {
	stored := &domain.Person{ID: 2, Email: "jane@x.se", Role: domain.RoleApplicant}

	t.Run("Should allow reading own profile", func(t *testing.T) {
		mockRepo := new(MockPersonRepo)
		uc := newAuthUC(mockRepo)

		mockRepo.On("GetByID", mock.Anything, int64(2)).Return(stored, nil)

		person, err := uc.GetPerson(context.Background(), 2, domain.RoleApplicant, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), person.ID)
	})

	t.Run("Should deny another person's profile to a non-recruiter", func(t *testing.T) {
		mockRepo := new(MockPersonRepo)
		uc := newAuthUC(mockRepo)

		_, err := uc.GetPerson(context.Background(), 1, domain.RoleApplicant, 2)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Should allow any profile to a recruiter", func(t *testing.T) {
		mockRepo := new(MockPersonRepo)
		uc := newAuthUC(mockRepo)

		mockRepo.On("GetByID", mock.Anything, int64(2)).Return(stored, nil)

		_, err := uc.GetPerson(context.Background(), 1, domain.RoleRecruiter, 2)
		assert.NoError(t, err)
	})
}

func submissionInput() ([]domain.CompetenceEntry, []domain.AvailabilityEntry) {
	competences := []domain.CompetenceEntry{
		{CompetenceID: 1, YearsOfExperience: 5},
		{CompetenceID: 2, YearsOfExperience: 0.5},
	}
	availabilities := []domain.AvailabilityEntry{
		{
			FromDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			ToDate:   time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}
	return competences, availabilities
}

func TestSubmit(t *testing.T) {
	person := &domain.Person{ID: 1, Email: "john@x.se", Role: domain.RoleApplicant}

	t.Run("Should create the full aggregate and return it hydrated", func(t *testing.T) {
		personRepo := new(MockPersonRepo)
		appRepo := new(MockApplicationRepo)
		compRepo := new(MockCompetenceRepo)
		uc := usecase.NewApplicationUsecase(appRepo, personRepo, compRepo)

		personRepo.On("GetByID", mock.Anything, int64(1)).Return(person, nil)
		appRepo.On("ExistsForPerson", mock.Anything, int64(1)).Return(false, nil)
		compRepo.On("CountByIDs", mock.Anything, []int64{1, 2}).Return(2, nil)

		appRepo.On("CreateWithChildren", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil).Run(func(args mock.Arguments) {
			app := args.Get(1).(*domain.Application)
			assert.Equal(t, int64(1), app.PersonID)
			assert.Equal(t, domain.StatusUnhandled, app.Status)
			assert.Len(t, app.Competences, 2)
			assert.Len(t, app.Availabilities, 1)
			app.ID = 42
		})

		hydrated := &domain.Application{ID: 42, PersonID: 1, Status: domain.StatusUnhandled}
		appRepo.On("GetByID", mock.Anything, int64(42)).Return(hydrated, nil)

		competences, availabilities := submissionInput()
		app, err := uc.Submit(context.Background(), 1, competences, availabilities)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), app.ID)
		appRepo.AssertExpectations(t)
	})

	t.Run("Should fail with Conflict when an application already exists", func(t *testing.T) {
		personRepo := new(MockPersonRepo)
		appRepo := new(MockApplicationRepo)
		compRepo := new(MockCompetenceRepo)
		uc := usecase.NewApplicationUsecase(appRepo, personRepo, compRepo)

		personRepo.On("GetByID", mock.Anything, int64(1)).Return(person, nil)
		appRepo.On("ExistsForPerson", mock.Anything, int64(1)).Return(true, nil)

		competences, availabilities := submissionInput()
		_, err := uc.Submit(context.Background(), 1, competences, availabilities)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		appRepo.AssertNotCalled(t, "CreateWithChildren")
	})

	t.Run("Should fail with NotFound for an unknown person", func(t *testing.T) {
		personRepo := new(MockPersonRepo)
		appRepo := new(MockApplicationRepo)
		compRepo := new(MockCompetenceRepo)
		uc := usecase.NewApplicationUsecase(appRepo, personRepo, compRepo)

		personRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

		competences, availabilities := submissionInput()
		_, err := uc.Submit(context.Background(), 99, competences, availabilities)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should reject competences missing from the catalog", func(t *testing.T) {
		personRepo := new(MockPersonRepo)
		appRepo := new(MockApplicationRepo)
		compRepo := new(MockCompetenceRepo)
		uc := usecase.NewApplicationUsecase(appRepo, personRepo, compRepo)

		personRepo.On("GetByID", mock.Anything, int64(1)).Return(person, nil)
		appRepo.On("ExistsForPerson", mock.Anything, int64(1)).Return(false, nil)
		compRepo.On("CountByIDs", mock.Anything, []int64{1, 2}).Return(1, nil)

		competences, availabilities := submissionInput()
		_, err := uc.Submit(context.Background(), 1, competences, availabilities)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		appRepo.AssertNotCalled(t, "CreateWithChildren")
	})

	t.Run("Should surface the storage-level duplicate as Conflict", func(t *testing.T) {
		// Two concurrent submissions can both pass the existence check; the
		// unique constraint turns the loser into this error.
		personRepo := new(MockPersonRepo)
		appRepo := new(MockApplicationRepo)
		compRepo := new(MockCompetenceRepo)
		uc := usecase.NewApplicationUsecase(appRepo, personRepo, compRepo)

		personRepo.On("GetByID", mock.Anything, int64(1)).Return(person, nil)
		appRepo.On("ExistsForPerson", mock.Anything, int64(1)).Return(false, nil)
		compRepo.On("CountByIDs", mock.Anything, []int64{1, 2}).Return(2, nil)

		conflict := apperror.Conflict("An application already exists for this person")
		appRepo.On("CreateWithChildren", mock.Anything, mock.Anything).Return(conflict)

		competences, availabilities := submissionInput()
		_, err := uc.Submit(context.Background(), 1, competences, availabilities)
		assert.ErrorIs(t, err, conflict)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("Should reject statuses outside accepted/rejected", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockPersonRepo), new(MockCompetenceRepo))

		_, err := uc.UpdateStatus(context.Background(), 1, "unhandled")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		appRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Should fail with NotFound for a missing application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockPersonRepo), new(MockCompetenceRepo))

		appRepo.On("UpdateStatus", mock.Anything, int64(7), domain.StatusAccepted).Return(domain.ErrNotFound)

		_, err := uc.UpdateStatus(context.Background(), 7, domain.StatusAccepted)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should allow revising a decision", func(t *testing.T) {
		// accept then reject: transitions are unguarded, the last decision wins
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockPersonRepo), new(MockCompetenceRepo))

		appRepo.On("UpdateStatus", mock.Anything, int64(1), domain.StatusAccepted).Return(nil).Once()
		appRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Application{ID: 1, Status: domain.StatusAccepted}, nil).Once()

		app, err := uc.UpdateStatus(context.Background(), 1, domain.StatusAccepted)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, app.Status)

		appRepo.On("UpdateStatus", mock.Anything, int64(1), domain.StatusRejected).Return(nil).Once()
		appRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Application{ID: 1, Status: domain.StatusRejected}, nil).Once()

		app, err = uc.UpdateStatus(context.Background(), 1, domain.StatusRejected)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, app.Status)
	})
}
