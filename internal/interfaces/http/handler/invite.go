package handler

import (
	"context"

	appidentity "github.com/homefinder/backend/internal/application/identity"
	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InviteUseCase is the role upgrade flow used by InviteHandler
type InviteUseCase interface {
	Issue(ctx context.Context, session identity.Session, req appidentity.IssueInviteRequest) (*appidentity.InviteResponse, error)
	ListMine(ctx context.Context, session identity.Session) ([]appidentity.InviteResponse, error)
	Verify(ctx context.Context, session identity.Session, token string) (*appidentity.VerifyInviteResponse, error)
	Redeem(ctx context.Context, session identity.Session, req appidentity.RedeemInviteRequest) (*appidentity.RedeemInviteResponse, error)
	Delete(ctx context.Context, session identity.Session, inviteID uuid.UUID) error
}

// InviteHandler handles invite tokens and their redemption
type InviteHandler struct {
	BaseHandler
	invites InviteUseCase
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(invites InviteUseCase) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// Issue godoc
// @Summary      Issue an invite
// @Description  Agents may invite agents; only admins may invite admins
// @Tags         invites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appidentity.IssueInviteRequest true "Invitee and role"
// @Success      201 {object} dto.Response{data=appidentity.InviteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invite-tokens [post]
func (h *InviteHandler) Issue(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req appidentity.IssueInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	invite, err := h.invites.Issue(c.Request.Context(), session, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invite, "Invite created")
}

// ListMine godoc
// @Summary      My invites
// @Tags         invites
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]appidentity.InviteResponse}
// @Router       /invite-tokens [get]
func (h *InviteHandler) ListMine(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	invites, err := h.invites.ListMine(c.Request.Context(), session)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if invites == nil {
		invites = []appidentity.InviteResponse{}
	}
	h.Success(c, invites)
}

// Delete godoc
// @Summary      Delete an unused invite
// @Tags         invites
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Invite ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invite-tokens/{id} [delete]
func (h *InviteHandler) Delete(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id", "Invite")
	if !ok {
		return
	}

	if err := h.invites.Delete(c.Request.Context(), session, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, nil, "Invite deleted")
}

// Verify godoc
// @Summary      Verify an invite token
// @Description  Checks that the token exists, is unused, belongs to the caller's email and has not expired
// @Tags         invites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appidentity.VerifyInviteRequest true "Invite token"
// @Success      200 {object} dto.Response{data=appidentity.VerifyInviteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      410 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invites/verify [post]
func (h *InviteHandler) Verify(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req appidentity.VerifyInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.invites.Verify(c.Request.Context(), session, req.Token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Accept godoc
// @Summary      Redeem an invite
// @Description  Grants the invited role and creates the professional profile. Sign in again to refresh roles.
// @Tags         invites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appidentity.RedeemInviteRequest true "Invite and profile"
// @Success      200 {object} dto.Response{data=appidentity.RedeemInviteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      410 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invites/accept [post]
func (h *InviteHandler) Accept(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req appidentity.RedeemInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.invites.Redeem(c.Request.Context(), session, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, result, "Role granted")
}
