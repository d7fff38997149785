package service

import (
	"context"
	"fmt"

	"marketplace-api/core/cache"
	"marketplace-api/core/constants"
	"marketplace-api/core/errors"
	"marketplace-api/core/logger"
	"marketplace-api/core/utils"
	"marketplace-api/modules/auth/dto"
	"marketplace-api/modules/auth/entity"
	"marketplace-api/modules/auth/repository"

	"github.com/google/uuid"
)

// AuthService handles account and session business logic
type AuthService struct {
	repo  repository.UserRepositoryInterface
	cache cache.Cache
}

// AuthServiceInterface defines the service contract
type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenPairResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
}

// NewAuthService creates a new auth service
func NewAuthService(repo repository.UserRepositoryInterface, c cache.Cache) AuthServiceInterface {
	return &AuthService{repo: repo, cache: c}
}

// Register creates a new account and returns a logged-in session
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, *errors.AppError) {
	role := req.Role
	switch role {
	case "":
		role = constants.RoleUser
	case constants.RoleUser, constants.RoleSeller:
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid role", nil)
	}

	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check email", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Email already registered", nil)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to hash password", err)
	}

	user, err := s.repo.CreateUser(ctx, &entity.User{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Role:     role,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create user", err)
	}

	tokens, appErr := s.issueTokenPair(user)
	if appErr != nil {
		return nil, appErr
	}

	return &dto.LoginResponse{User: *dto.ToUserResponse(user), Tokens: *tokens}, nil
}

// Login authenticates an email/password pair. Repeated failures for the same
// email are blocked for a cool-down window.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	loginKey := fmt.Sprintf("login:%s", req.Email)

	blocked, err := s.cache.IsLoginBlocked(ctx, loginKey)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check login attempts", err)
	}
	if blocked {
		// Keep the block window open while attempts continue
		if errExpire := s.cache.Expire(ctx, constants.RedisKeyLoginAttempt+loginKey, constants.BlockDuration); errExpire != nil {
			logger.Error("AuthService:Login:Expire", errExpire)
		}
		return nil, errors.NewAppError(errors.ErrForbidden, "Too many failed login attempts, try again later", nil)
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get user", err)
	}
	if user == nil || !utils.ComparePassword(user.Password, req.Password) {
		if errIncr := s.cache.IncrementLoginAttempt(ctx, loginKey); errIncr != nil {
			logger.Error("AuthService:Login:IncrementLoginAttempt", errIncr)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid email or password", nil)
	}
	if !user.IsActive {
		return nil, errors.NewAppError(errors.ErrForbidden, "Account is deactivated", nil)
	}

	if errDel := s.cache.Del(ctx, constants.RedisKeyLoginAttempt+loginKey); errDel != nil {
		logger.Error("AuthService:Login:Del", errDel)
	}

	tokens, appErr := s.issueTokenPair(user)
	if appErr != nil {
		return nil, appErr
	}

	return &dto.LoginResponse{User: *dto.ToUserResponse(user), Tokens: *tokens}, nil
}

// RefreshToken rotates a refresh token: the old token is blacklisted and a
// fresh pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenPairResponse, *errors.AppError) {
	blacklisted, err := s.cache.IsTokenBlacklisted(ctx, req.RefreshToken)
	if err != nil {
		logger.Error("AuthService:RefreshToken:IsTokenBlacklisted", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check token blacklist", err)
	}
	if blacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Token has been revoked", nil)
	}

	claims, err := utils.ValidateAndParseToken(req.RefreshToken)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid refresh token", nil)
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token scope", nil)
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get user", err)
	}
	if user == nil || !user.IsActive {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Account no longer valid", nil)
	}

	if errBl := s.cache.AddToTokenBlacklist(ctx, req.RefreshToken); errBl != nil {
		logger.Error("AuthService:RefreshToken:AddToBlacklist", errBl)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to revoke old token", errBl)
	}

	return s.issueTokenPair(user)
}

// Logout revokes the presented access token
func (s *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	if err := s.cache.AddToTokenBlacklist(ctx, token); err != nil {
		logger.Error("AuthService:Logout:AddToBlacklist", err)
		return errors.NewAppError(errors.ErrInternalServer, "Failed to revoke token", err)
	}
	return nil
}

// Me retrieves the caller's account
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}
	return dto.ToUserResponse(user), nil
}

func (s *AuthService) issueTokenPair(user *entity.User) (*dto.TokenPairResponse, *errors.AppError) {
	accessToken, err := utils.GenerateToken(user.ID, user.Email, user.Role, constants.ScopeTokenAccess)
	if err != nil {
		logger.Error("AuthService:issueTokenPair:Access", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate token", err)
	}

	refreshToken, err := utils.GenerateToken(user.ID, user.Email, user.Role, constants.ScopeTokenRefresh)
	if err != nil {
		logger.Error("AuthService:issueTokenPair:Refresh", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate token", err)
	}

	return &dto.TokenPairResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
