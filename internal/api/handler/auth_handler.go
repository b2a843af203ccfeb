package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, err.Error(), nil)
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Answer:   req.Answer,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return fail(c, h.log, http.StatusConflict, "Already registered, please login", nil)
		case errors.Is(err, domain.ErrInvalidCredentials):
			return fail(c, h.log, http.StatusBadRequest, "All fields are required", nil)
		}
		return fail(c, h.log, http.StatusInternalServerError, "Error in Registration", err)
	}

	return c.JSON(http.StatusCreated, registerResponse{Success: true, Message: "User Registered Successfully", User: user})
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, http.StatusNotFound, "Invalid email or password", nil)
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return fail(c, h.log, http.StatusNotFound, "Invalid email or password", nil)
		case errors.Is(err, domain.ErrUserNotFound):
			return fail(c, h.log, http.StatusNotFound, "Email is not registered", nil)
		case errors.Is(err, domain.ErrWrongPassword):
			return fail(c, h.log, http.StatusUnauthorized, "Invalid password", nil)
		}
		return fail(c, h.log, http.StatusInternalServerError, "Error in login", err)
	}

	return c.JSON(http.StatusOK, loginResponse{Success: true, Message: "login successfully", User: user, Token: token})
}

// ForgotPassword resets the password when the security answer matches.
//
// @Summary      Reset password with the security answer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Email, answer and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, "invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, err.Error(), nil)
	}

	err := h.authService.ForgotPassword(c.Request().Context(), req.Email, req.Answer, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return fail(c, h.log, http.StatusNotFound, "Wrong email or answer", nil)
		case errors.Is(err, domain.ErrInvalidCredentials):
			return fail(c, h.log, http.StatusBadRequest, "email, answer and newPassword are required", nil)
		}
		return fail(c, h.log, http.StatusInternalServerError, "Something went wrong", err)
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Password Reset Successfully"})
}

// UserAuth lets the client probe whether its token is still accepted.
//
// @Summary      Signed-in probe
// @Tags         auth
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  okResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/user-auth [get]
func (h *AuthHandler) UserAuth(c echo.Context) error {
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// AdminAuth lets the client probe whether the caller is an administrator.
//
// @Summary      Administrator probe
// @Tags         auth
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  okResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/admin-auth [get]
func (h *AuthHandler) AdminAuth(c echo.Context) error {
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// UpdateProfile changes the caller's own profile.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, h.log, http.StatusBadRequest, "invalid payload", nil)
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		UserID:   principal.ID,
		Name:     req.Name,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWeakPassword):
			return fail(c, h.log, http.StatusBadRequest, "Password is required and 6 character long", nil)
		case errors.Is(err, domain.ErrUserNotFound):
			return fail(c, h.log, http.StatusBadRequest, "Error While Updating Profile", err)
		}
		return fail(c, h.log, http.StatusInternalServerError, "Error While Updating Profile", err)
	}

	return c.JSON(http.StatusOK, profileResponse{Success: true, Message: "Profile Updated Successfully", UpdatedUser: user})
}

// ListUsers returns every account.
//
// @Summary      List users
// @Tags         auth
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth/get-users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, h.log, http.StatusInternalServerError, "Error While Getting Users", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, usersResponse{Success: true, Users: users})
}
