package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-portal-api/internal/delivery/http/response"
	"recruit-portal-api/internal/domain"
	"recruit-portal-api/pkg/apperror"
	"recruit-portal-api/pkg/validation"
)

type PersonHandler struct {
	authUC domain.AuthUsecase
}

// NewPersonHandler registers the account and profile routes. The public
// group carries registration and login; the protected group is behind the
// authentication middleware.
func NewPersonHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, loginLimiter gin.HandlerFunc) {
	handler := &PersonHandler{authUC: authUC}

	public.POST("/person/create-account", handler.CreateAccount)
	public.POST("/person/login", loginLimiter, handler.Login)

	protected.GET("/person/me", handler.Me)
	protected.GET("/person/id/:id", handler.GetByID)
}

// CreateAccountRequest is the registration payload
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50,person_name"`
	Surname  string `json:"surname" binding:"required,min=2,max=50,person_name"`
	Pnr      string `json:"pnr" binding:"required,pnr"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strong_password"`
}

// CreateAccount godoc
// @Summary      Register a new account
// @Description  Creates an applicant account with a hashed password and derived username
// @Tags         person
// @Accept       json
// @Produce      json
// @Param        body  body      CreateAccountRequest  true  "Registration data"
// @Success      201   {object}  response.Response{data=domain.Person}
// @Failure      400   {object}  response.Response
// @Router       /person/create-account [post]
func (h *PersonHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; ")))
		return
	}

	person, err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Pnr:      req.Pnr,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Account created", person)
}

// LoginRequest is the authentication payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token and the person
type LoginResponse struct {
	Token  string         `json:"token"`
	Person *domain.Person `json:"person"`
}

// Login godoc
// @Summary      Authenticate
// @Description  Verifies credentials and issues a signed, time-limited bearer token
// @Tags         person
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  response.Response{data=LoginResponse}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /person/login [post]
func (h *PersonHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; ")))
		return
	}

	token, person, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Logged in", LoginResponse{Token: token, Person: person})
}

// Me godoc
// @Summary      Own profile
// @Tags         person
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Person}
// @Failure      401  {object}  response.Response
// @Router       /person/me [get]
// @Security     BearerAuth
func (h *PersonHandler) Me(c *gin.Context) {
	personID := c.GetInt64(string(domain.KeyPersonID))

	person, err := h.authUC.GetCurrentPerson(c.Request.Context(), personID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", person)
}

// GetByID godoc
// @Summary      Profile by id
// @Description  A person may view their own profile; recruiters may view any
// @Tags         person
// @Produce      json
// @Param        id  path      int  true  "Person ID"
// @Success      200 {object}  response.Response{data=domain.Person}
// @Failure      400 {object}  response.Response
// @Failure      401 {object}  response.Response
// @Failure      403 {object}  response.Response
// @Router       /person/id/{id} [get]
// @Security     BearerAuth
func (h *PersonHandler) GetByID(c *gin.Context) {
	requesterID := c.GetInt64(string(domain.KeyPersonID))
	requesterRole := c.GetString(string(domain.KeyRole))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid person ID"))
		return
	}

	person, err := h.authUC.GetPerson(c.Request.Context(), requesterID, requesterRole, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", person)
}
