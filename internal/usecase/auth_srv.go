package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error)
}

type authService struct {
	users           repository.UserRepository
	tokens          *utils.TokenManager
	comparePassword func(password, hash string) (bool, error)
	log             *zap.Logger
}

// dummyHash is verified against when the email is unknown, so that path costs
// as much as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	hash, err := utils.HashPassword("movie-catalog-placeholder")
	if err != nil {
		panic(fmt.Sprintf("hash placeholder password: %v", err))
	}
	return hash
})

func NewAuthService(
	users repository.UserRepository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:           users,
		tokens:          tokens,
		comparePassword: utils.ComparePassword,
		log:             log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Email must be unused
	existingUser, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, newError(ErrConflict, "Email already registered")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	// 4. Save; the unique index catches a concurrent registration
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, "Email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// Login answers unknown emails and wrong passwords with the same error.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	user, err := s.users.FindByEmail(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		_, _ = s.comparePassword(req.Password, dummyHash())
		s.log.Info("Login failed", zap.String("reason", "unknown email"))
		return nil, newError(ErrInvalidCredentials, "Invalid Credentials")
	}

	ok, err := s.comparePassword(req.Password, user.PasswordHash)
	if err != nil {
		// stored hash is unusable
		s.log.Error("Failed to verify password",
			zap.Error(err),
			zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.log.Info("Login failed",
			zap.String("reason", "wrong password"),
			zap.String("user_id", user.ID.String()))
		return nil, newError(ErrInvalidCredentials, "Invalid Credentials")
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", expiresAt))

	resp := response.NewBearerToken(token)
	return &resp, nil
}
