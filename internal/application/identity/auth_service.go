package identity

import (
	"context"
	"errors"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/homefinder/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var errInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password")

// AuthService handles registration and session tokens
type AuthService struct {
	userRepo    identity.UserRepository
	roleRepo    identity.RoleRepository
	profileRepo identity.ProfileRepository
	txManager   shared.TransactionManager
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	profileRepo identity.ProfileRepository,
	txManager shared.TransactionManager,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		profileRepo: profileRepo,
		txManager:   txManager,
		jwtService:  jwtService,
		blacklist:   blacklist,
		logger:      logger,
	}
}

// Register creates an account and signs it in.
// The first account becomes admin; every later one starts as basic.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	user, err := identity.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.userRepo.ExistsByEmail(txCtx, user.Email)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(shared.CodeAlreadyExists, "An account with this email already exists")
		}

		count, err := s.userRepo.Count(txCtx)
		if err != nil {
			return err
		}
		roleName := identity.RoleBasic
		if count == 0 {
			roleName = identity.RoleAdmin
		}
		role, err := s.ensureRole(txCtx, roleName)
		if err != nil {
			return err
		}

		if err := s.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		if err := s.roleRepo.Assign(txCtx, user.ID, role.ID); err != nil {
			return err
		}
		user.Roles = append(user.Roles, *role)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.Strings("roles", user.RoleNames()))

	return s.issue(user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	email := identity.NormalizeEmail(req.Email)
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email")
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

// Refresh exchanges a refresh token for a new pair.
// Roles are re-read so an upgrade shows up without logging in again.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, err
	}
	if revoked {
		return nil, tokenError(auth.ErrTokenBlacklisted)
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeUnauthorized, "Account no longer exists")
		}
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.RoleNames())
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, tokenError(err)
	}

	// the old refresh token must not be exchanged twice
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke used refresh token", zap.Error(err))
	}

	s.logger.Info("Token refreshed", zap.String("user_id", userID.String()))
	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

// Logout revokes the access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, access *auth.Claims, req LogoutRequest) error {
	if err := s.blacklist.AddToBlacklist(ctx, access.ID, access.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke access token", zap.Error(err))
		return err
	}

	if req.RefreshToken != "" {
		refresh, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
		if err == nil && refresh.UserID == access.UserID {
			if err := s.blacklist.AddToBlacklist(ctx, refresh.ID, refresh.GetRemainingTTL()); err != nil {
				s.logger.Error("Failed to revoke refresh token", zap.Error(err))
				return err
			}
		}
	}

	s.logger.Info("User logged out", zap.String("user_id", access.UserID))
	return nil
}

// Me returns the session user with roles and profile
func (s *AuthService) Me(ctx context.Context, session identity.Session) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	info := toUserInfo(user)
	profile, err := s.profileRepo.FindByUserID(ctx, user.ID)
	switch {
	case err == nil:
		info.Profile = toProfileInfo(profile)
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}
	return info, nil
}

func (s *AuthService) issue(user *identity.User) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.RoleNames(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.WrapDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens", err)
	}
	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

// ensureRole loads a role by name, creating it when reference data was not seeded
func (s *AuthService) ensureRole(ctx context.Context, name string) (*identity.Role, error) {
	role, err := s.roleRepo.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	role = identity.NewRole(name, "")
	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}
	s.logger.Warn("Created missing role", zap.String("role", name), zap.String("role_id", role.ID.String()))
	return role, nil
}

// tokenError maps JWT failures to domain errors
func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.WrapDomainError(shared.CodeUnauthorized, "Refresh token has expired", err)
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.WrapDomainError(shared.CodeUnauthorized, "Maximum token refresh count exceeded. Please log in again", err)
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.WrapDomainError(shared.CodeUnauthorized, "Refresh token has been revoked", err)
	default:
		return shared.WrapDomainError(shared.CodeUnauthorized, "Invalid refresh token", err)
	}
}

