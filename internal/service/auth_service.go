package service

import (
	"context"
	"time"

	"procureflow-be/internal/config"
	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/apperr"
	"procureflow-be/internal/pkg/logger"
	"procureflow-be/internal/repository/specification"
	"procureflow-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	cfg        *config.AuthConfig
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, audit IAuditService, cfg *config.AuthConfig, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		audit:      audit,
		cfg:        cfg,
		logger:     log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.Filter("email", req.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: &hashStr,
		FullName:     req.FullName,
		IsActive:     true,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &user.Id, entity.AuditActionCreate, "user", &user.Id, map[string]interface{}{
		"email": user.Email,
	})
	s.logger.Info("Auth", "User registered", map[string]interface{}{"user_id": user.Id.String()})

	return toUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOneWithRole(ctx, specification.Filter("email", req.Email))
	if err != nil {
		return nil, err
	}
	// Same error for unknown email and wrong password.
	if user == nil || user.PasswordHash == nil {
		return nil, apperr.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperr.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.TokenTTLHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub": user.Id.String(),
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &user.Id, entity.AuditActionLogin, "user", &user.Id, nil)

	return &dto.LoginResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        *toUserResponse(user),
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil || user.PasswordHash == nil {
		return apperr.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperr.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uow.UserRepository().UpdatePassword(ctx, userId, string(hash)); err != nil {
		return err
	}

	s.audit.Record(ctx, &userId, entity.AuditActionUpdate, "user", &userId, map[string]interface{}{
		"field": "password",
	})
	return nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOneWithRole(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	res := &dto.UserResponse{
		Id:          u.Id,
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
	if u.Role != nil {
		res.RoleName = u.Role.Name
	}
	return res
}
