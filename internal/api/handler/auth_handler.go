package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
	"github.com/taskdeck/employee-task-api/internal/core/ports"
)

// AuthHandler handles registration, login and account introspection.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and returns a token for it.
//
// @Summary      Register a new user
// @Description  Role defaults to client. Only the first account ever created may self-register as admin.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  errorMessage
// @Failure      403   {object}  errorMessage
// @Failure      409   {object}  errorMessage
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserResponse(user),
	})
}

// Login authenticates username+password and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorMessage
// @Failure      401   {object}  errorMessage
// @Failure      429   {object}  errorMessage
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserResponse(user),
	})
}

// Me returns the authenticated identity's public representation.
//
// @Summary      Get the current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Success      200  {object}  userResponse
// @Failure      400  {object}  errorMessage
// @Failure      401  {object}  errorMessage
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id := identity(c)
	if !id.Active {
		return domain.ErrInactiveUser
	}
	return c.JSON(http.StatusOK, identityResponse(id))
}

// VerifyToken confirms the presented credential resolved to an identity.
//
// @Summary      Verify the current credential
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Success      200  {object}  verifyTokenResponse
// @Failure      400  {object}  errorMessage
// @Failure      401  {object}  errorMessage
// @Router       /auth/verify-token [get]
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	id := identity(c)
	if !id.Active {
		return domain.ErrInactiveUser
	}
	return c.JSON(http.StatusOK, verifyTokenResponse{
		Valid:    true,
		Username: id.Subject,
		Role:     id.Role,
		Message:  "Token is valid",
	})
}

// CreateAdmin creates an account with the admin role forced.
//
// @Summary      Create an admin user (admin only)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        body  body      registerRequest  true  "Admin account details (role is ignored and forced to admin)"
// @Success      201   {object}  userResponse
// @Failure      401   {object}  errorMessage
// @Failure      403   {object}  errorMessage
// @Failure      409   {object}  errorMessage
// @Router       /auth/create-admin [post]
func (h *AuthHandler) CreateAdmin(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.CreateAdmin(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// ListUsers returns every account.
//
// @Summary      List all users (admin only)
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorMessage
// @Failure      403  {object}  errorMessage
// @Router       /auth/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, out)
}
