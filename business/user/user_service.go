package user

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"shopmate/domain"
	"shopmate/pkg/logger"
	"shopmate/pkg/utils"
)

var (
	ErrUserExists         = errors.New("user already exists with this phone or email")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid password")
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByPhoneOrEmail(ctx context.Context, phone, email string) (domain.User, error)
}

type UserService struct {
	userRepo  UserRepository
	validate  *validator.Validate
	jwtSecret string
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, jwtSecret string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		validate:  validate,
		jwtSecret: jwtSecret,
	}
}

// Register creates the user and returns it together with a session token, so
// a fresh registration is immediately signed in.
func (s *UserService) Register(ctx context.Context, user *domain.User) (domain.User, string, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, "", errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, "", errors.New("password must be at least 6 characters")
	}

	existingUser, err := s.userRepo.FindByPhoneOrEmail(ctx, user.Phone, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("User already exists", "email", user.Email)
		return domain.User{}, "", ErrUserExists
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, "", errors.New("failed to hash password")
	}

	newUser := domain.User{
		Name:     user.Name,
		Phone:    user.Phone,
		Address:  user.Address,
		Email:    user.Email,
		Password: passwordHash,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, "", err
	}

	token, err := utils.GenerateJWT(newUser.ID, newUser.Phone, newUser.Email, s.jwtSecret)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return domain.User{}, "", errors.New("failed to generate token")
	}

	newUser.Password = ""
	return newUser, token, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Login attempt for unknown email", "email", email)
		return "", domain.User{}, ErrUserNotFound
	}

	if ok := utils.CheckPassword(password, user.Password); !ok {
		logger.Error("User password incorrect", "email", email)
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Phone, user.Email, s.jwtSecret)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	user.Password = ""
	return token, user, nil
}

// GetUserByID backs GET /api/auth/me.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, ErrUserNotFound
	}

	user.Password = ""
	return user, nil
}
