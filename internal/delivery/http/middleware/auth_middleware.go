package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-portal-api/internal/domain"
	"recruit-portal-api/pkg/apperror"
	"recruit-portal-api/pkg/auth"
)

// Authenticate verifies the bearer token and re-derives the caller's role
// from the database on every request. The token's identity claim is
// trusted; its role never is, since roles can change between requests.
// Failures are pushed onto the context for ErrorHandler to log and
// translate, so ErrorHandler must sit before this in the chain.
func Authenticate(tokens *auth.TokenService, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, apperror.Unauthorized("Authorization header required"))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			abortWith(c, apperror.Unauthorized("Authorization header must be of the form: Bearer <token>"))
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			abortWith(c, apperror.Unauthorized("Invalid or expired token"))
			return
		}

		// Fresh role lookup. A vanished person is an identity failure (401);
		// a storage failure keeps its wrapped cause so the façade logs it
		// at error severity.
		person, err := authUC.GetCurrentPerson(c.Request.Context(), claims.ID)
		if err != nil {
			if isNotFound(err) {
				abortWith(c, apperror.Unauthorized("Person not found"))
			} else {
				abortWith(c, err)
			}
			return
		}

		c.Set(string(domain.KeyPersonID), person.ID)
		c.Set(string(domain.KeyEmail), person.Email)
		c.Set(string(domain.KeyRole), person.Role)

		c.Next()
	}
}

// RequireRecruiter gates recruiter-only endpoints. It runs after
// Authenticate, so the role in context is fresh.
func RequireRecruiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyRole))
		if role != domain.RoleRecruiter {
			abortWith(c, apperror.Forbidden("Recruiter role required"))
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func isNotFound(err error) bool {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code == http.StatusNotFound
	}
	return errors.Is(err, domain.ErrNotFound)
}
