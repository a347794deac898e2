package identity

import (
	"time"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterRequest contains the input for account registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest contains the input for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest contains the refresh token to exchange
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally carries the refresh token so it is revoked too
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResult contains the tokens issued at registration, login or refresh
type AuthResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  *UserInfo `json:"user,omitempty"`
}

// UserInfo contains the account details returned to its owner
type UserInfo struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	EmailVerified bool         `json:"emailVerified"`
	Image         string       `json:"image,omitempty"`
	Roles         []string     `json:"roles"`
	Profile       *ProfileInfo `json:"profile,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// ProfileInfo is the professional profile of an upgraded user
type ProfileInfo struct {
	Phone        string `json:"phone"`
	WhatsApp     string `json:"whatsapp,omitempty"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	BusinessName string `json:"businessName,omitempty"`
}

func toUserInfo(u *identity.User) *UserInfo {
	return &UserInfo{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Image:         u.Image,
		Roles:         u.RoleNames(),
		CreatedAt:     u.CreatedAt,
	}
}

func toProfileInfo(p *identity.ProfessionalProfile) *ProfileInfo {
	return &ProfileInfo{
		Phone:        p.Phone,
		WhatsApp:     p.WhatsApp,
		Email:        p.Email,
		Address:      p.Address,
		BusinessName: p.BusinessName,
	}
}

// IssueInviteRequest contains the input for issuing an invite
type IssueInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=agent admin"`
}

// InviteResponse represents an invite in API responses.
// Token is only shown to the invite's creator.
type InviteResponse struct {
	ID           uuid.UUID  `json:"id"`
	Token        string     `json:"token"`
	InvitedEmail string     `json:"invitedEmail"`
	Role         string     `json:"role"`
	Status       string     `json:"status"`
	Used         bool       `json:"used"`
	RedeemedAt   *time.Time `json:"redeemedAt,omitempty"`
	ExpiresAt    time.Time  `json:"expiresAt"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Invite statuses shown to the issuer
const (
	InviteStatusActive  = "active"
	InviteStatusUsed    = "used"
	InviteStatusExpired = "expired"
)

func toInviteResponse(t *identity.InviteToken, now time.Time) InviteResponse {
	status := InviteStatusActive
	switch {
	case t.Used:
		status = InviteStatusUsed
	case t.IsExpired(now):
		status = InviteStatusExpired
	}
	return InviteResponse{
		ID:           t.ID,
		Token:        t.Token,
		InvitedEmail: t.InvitedEmail,
		Role:         t.Role,
		Status:       status,
		Used:         t.Used,
		RedeemedAt:   t.RedeemedAt,
		ExpiresAt:    t.ExpiresAt,
		CreatedAt:    t.CreatedAt,
	}
}

// VerifyInviteRequest contains the token to check
type VerifyInviteRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyInviteResponse describes a redeemable invite
type VerifyInviteResponse struct {
	InviteID  uuid.UUID `json:"inviteId"`
	RoleID    uuid.UUID `json:"roleId"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RedeemInviteRequest contains the invite to redeem and the profile to create
type RedeemInviteRequest struct {
	InviteID     uuid.UUID `json:"inviteId" binding:"required"`
	Phone        string    `json:"phone" binding:"required"`
	WhatsApp     string    `json:"whatsapp"`
	Address      string    `json:"address" binding:"required"`
	BusinessName string    `json:"businessName"`
}

// ProfileInput converts the request to the domain profile input
func (r RedeemInviteRequest) ProfileInput() identity.ProfileInput {
	return identity.ProfileInput{
		Phone:        r.Phone,
		WhatsApp:     r.WhatsApp,
		Address:      r.Address,
		BusinessName: r.BusinessName,
	}
}

// RedeemInviteResponse reports the granted role
type RedeemInviteResponse struct {
	Role            string `json:"role"`
	AlreadyRedeemed bool   `json:"alreadyRedeemed"`
}
