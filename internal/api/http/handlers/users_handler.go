package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/phoenix-adventures/trip-service/internal/api/dto"
	"github.com/phoenix-adventures/trip-service/internal/auth"
	"github.com/phoenix-adventures/trip-service/internal/service"
	apperrors "github.com/phoenix-adventures/trip-service/pkg/util"
)

// UsersHandler exposes auth and self-account endpoints for travelers.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// Signup handles POST /api/v1/users/signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" {
		return apperrors.NewValidationError("first name, email and password are required", nil)
	}

	user, token, exp, err := h.auth.Signup(c.Context(), service.SignupInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /api/v1/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("please provide email and password", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// ForgotPassword handles POST /api/v1/users/forgotPassword.
func (h *UsersHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("please provide your email", nil)
	}

	if err := h.auth.ForgotPassword(c.Context(), req.Email, c.BaseURL()); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "token sent to email"},
	})
}

// ResetPassword handles PATCH /api/v1/users/resetPassword/:token.
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.auth.ResetPassword(c.Context(), c.Params("token"), req.Password, req.PasswordConfirm)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// UpdateMyPassword handles PATCH /api/v1/users/updateMyPassword.
func (h *UsersHandler) UpdateMyPassword(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("you are not logged in, please log in to get access")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	token, exp, err := h.auth.ChangePassword(c.Context(), user.ID, req.PasswordCurrent, req.Password, req.PasswordConfirm)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// MyAccount handles GET /api/v1/users/myAccount.
func (h *UsersHandler) MyAccount(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("you are not logged in, please log in to get access")
	}

	account, err := h.users.GetMe(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"user": dto.NewUserResponse(account)},
	})
}

// UpdateMyAccount handles PATCH /api/v1/users/myAccount.
func (h *UsersHandler) UpdateMyAccount(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("you are not logged in, please log in to get access")
	}

	// Reject credential fields up front; the JSON DTO would silently drop
	// them otherwise.
	var raw map[string]any
	if err := c.BodyParser(&raw); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	for _, field := range []string{"password", "password_confirm", "role"} {
		if _, present := raw[field]; present {
			return apperrors.NewValidationError(
				"this route is not for password or role updates, please use /updateMyPassword", nil)
		}
	}

	var req dto.UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	updated, err := h.users.UpdateMe(c.Context(), user.ID, service.UpdateMeInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"user": dto.NewUserResponse(updated)},
	})
}

// DeleteMyAccount handles DELETE /api/v1/users/myAccount.
func (h *UsersHandler) DeleteMyAccount(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("you are not logged in, please log in to get access")
	}

	if err := h.users.DeactivateMe(c.Context(), user.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
