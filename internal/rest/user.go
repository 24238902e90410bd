package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shopmate/business/user"
	"shopmate/domain"
	"shopmate/pkg/logger"
	"shopmate/pkg/response"
)

type UserService interface {
	Register(ctx context.Context, user *domain.User) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	GetUserByID(ctx context.Context, id uint) (domain.User, error)
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserRegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var reqUser UserRegisterRequest

	if err := c.Bind(&reqUser); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, response.Error("VALIDATION_ERROR", "All fields are required", nil))
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		logger.Error("Failed to validate user register", err)
		return c.JSON(http.StatusBadRequest, response.Error("VALIDATION_ERROR", "All fields are required", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newUser, token, err := h.userService.Register(ctx, &domain.User{
		Name:     reqUser.Name,
		Phone:    reqUser.Phone,
		Address:  reqUser.Address,
		Email:    reqUser.Email,
		Password: reqUser.Password,
	})
	if err != nil {
		logger.Error("Failed to register user", err)
		if errors.Is(err, user.ErrUserExists) {
			return c.JSON(http.StatusConflict, response.Error("USER_EXISTS", err.Error(), nil))
		}
		return c.JSON(http.StatusInternalServerError, response.Error("INTERNAL_ERROR", "Registration failed", nil))
	}

	return c.JSON(http.StatusCreated, response.Success("User registered successfully", map[string]interface{}{
		"user":  newUser,
		"token": token,
	}))
}

func (h *UserHandler) Login(c echo.Context) error {
	var reqUser UserLoginRequest

	if err := c.Bind(&reqUser); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, response.Error("VALIDATION_ERROR", "Email and password are required", nil))
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		logger.Error("Failed to validate user login", err)
		return c.JSON(http.StatusBadRequest, response.Error("VALIDATION_ERROR", "Email and password are required", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, loggedIn, err := h.userService.Login(ctx, reqUser.Email, reqUser.Password)
	if err != nil {
		logger.Error("Failed to login user", err)
		if errors.Is(err, user.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, response.Error("USER_NOT_FOUND", "User not found. Please register first.", nil))
		}
		if errors.Is(err, user.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, response.Error("INVALID_CREDENTIALS", "Invalid password", nil))
		}
		return c.JSON(http.StatusInternalServerError, response.Error("INTERNAL_ERROR", "Login failed", nil))
	}

	return c.JSON(http.StatusOK, response.Success("Login successful", map[string]interface{}{
		"user":  loggedIn,
		"token": token,
	}))
}

// Me returns the authenticated caller's record.
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("UNAUTHORIZED", "User not authenticated", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	me, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, response.Error("USER_NOT_FOUND", "User not found", nil))
		}
		logger.Error("Failed to get user", err)
		return c.JSON(http.StatusInternalServerError, response.Error("INTERNAL_ERROR", "Failed to retrieve user data", nil))
	}

	return c.JSON(http.StatusOK, response.Success("User data retrieved successfully", me))
}
