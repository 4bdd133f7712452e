package usecase

import (
	"context"
	"fmt"
	"time"

	"gezana/internal/data/entity"
	"gezana/internal/data/repository"
	"gezana/internal/dto/request"
	"gezana/internal/dto/response"
	"gezana/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	LogoutAll(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	role := entity.RoleSeeker
	if req.Role == string(entity.RoleProvider) {
		role = entity.RoleProvider
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hashed,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
	)

	return authResponse(user, session), nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to look up user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check credentials")
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid email or password")
	}
	if !user.IsActive {
		return nil, fmt.Errorf("unauthorized: account is deactivated")
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return authResponse(user, session), nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.repo.Session.Revoke(ctx, token)
}

func (s *authService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Session.RevokeAllUserSessions(ctx, userID)
}

func authResponse(user *entity.User, session *entity.Session) *response.AuthResponse {
	return &response.AuthResponse{
		UserID:    user.ID.String(),
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		Token:     session.Token.String(),
		ExpiresAt: &session.ExpiresAt,
	}
}
