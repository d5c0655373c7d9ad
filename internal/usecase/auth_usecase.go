package usecase

import (
	"context"
	"errors"
	"strings"

	"recruit-portal-api/internal/domain"
	"recruit-portal-api/pkg/apperror"
	"recruit-portal-api/pkg/auth"
	"recruit-portal-api/pkg/hash"
)

type authUsecase struct {
	personRepo domain.PersonRepository
	hasher     *hash.Hasher
	tokens     *auth.TokenService
}

func NewAuthUsecase(personRepo domain.PersonRepository, hasher *hash.Hasher, tokens *auth.TokenService) domain.AuthUsecase {
	return &authUsecase{
		personRepo: personRepo,
		hasher:     hasher,
		tokens:     tokens,
	}
}

// Register creates a new applicant account. Password hashing and username
// derivation are explicit transformations applied here, before the storage
// layer ever sees the record.
func (u *authUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.Person, error) {
	passwordHash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	person := &domain.Person{
		Name:         input.Name,
		Surname:      input.Surname,
		Pnr:          input.Pnr,
		Email:        strings.ToLower(input.Email),
		PasswordHash: passwordHash,
		Role:         domain.RoleApplicant,
		Username:     DeriveUsername(input.Name, input.Surname),
	}

	if err := u.personRepo.Create(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

// Login authenticates by email and password and issues a bearer token.
// Unknown email and wrong password are indistinguishable to the caller.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *domain.Person, error) {
	person, err := u.personRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, apperror.Unauthorized("Invalid email or password")
		}
		return "", nil, apperror.Internal(err)
	}

	if !u.hasher.Verify(person.PasswordHash, password) {
		return "", nil, apperror.Unauthorized("Invalid email or password")
	}

	token, err := u.tokens.Issue(person.ID, person.Email)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	return token, person, nil
}

func (u *authUsecase) GetCurrentPerson(ctx context.Context, id int64) (*domain.Person, error) {
	person, err := u.personRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Person not found")
		}
		return nil, apperror.Internal(err)
	}
	return person, nil
}

// GetPerson returns a profile by id, allowed for the owner or a recruiter.
func (u *authUsecase) GetPerson(ctx context.Context, requesterID int64, requesterRole string, id int64) (*domain.Person, error) {
	if requesterID != id && requesterRole != domain.RoleRecruiter {
		return nil, apperror.Forbidden("You may only view your own profile")
	}
	return u.GetCurrentPerson(ctx, id)
}

// DeriveUsername builds the login-friendly username from a person's name.
// It is an explicit transformation, applied before persistence, so the call
// graph shows exactly when the derived field is set.
func DeriveUsername(name, surname string) string {
	return strings.ToLower(name + "." + surname)
}
