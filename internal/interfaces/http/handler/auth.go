package handler

import (
	"context"

	appidentity "github.com/homefinder/backend/internal/application/identity"
	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/infrastructure/auth"
	"github.com/homefinder/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthUseCase is the session provider used by AuthHandler
type AuthUseCase interface {
	Register(ctx context.Context, req appidentity.RegisterRequest) (*appidentity.AuthResult, error)
	Login(ctx context.Context, req appidentity.LoginRequest) (*appidentity.AuthResult, error)
	Refresh(ctx context.Context, req appidentity.RefreshRequest) (*appidentity.AuthResult, error)
	Logout(ctx context.Context, access *auth.Claims, req appidentity.LogoutRequest) error
	Me(ctx context.Context, session identity.Session) (*appidentity.UserInfo, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthUseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthUseCase) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @Summary      Register an account
// @Description  Create a basic account and sign it in. The first account becomes admin.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.RegisterRequest true "Account details"
// @Success      201 {object} dto.Response{data=appidentity.AuthResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result, "Account created")
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=appidentity.AuthResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Exchange a refresh token for a new token pair. Refresh tokens are single use.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.RefreshRequest true "Refresh token"
// @Success      200 {object} dto.Response{data=appidentity.AuthResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout godoc
// @Summary      Logout
// @Description  Revoke the access token and, when given, the refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appidentity.LogoutRequest false "Refresh token to revoke"
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	// the body is optional
	var req appidentity.LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.authService.Logout(c.Request.Context(), claims, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, nil, "Logged out")
}

// Me godoc
// @Summary      Current user
// @Description  Return the caller's account, roles and professional profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=appidentity.UserInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	info, err := h.authService.Me(c.Request.Context(), session)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}
