package identity

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Invite error codes
const (
	CodeInviteInvalid       = "INVITE_INVALID"
	CodeInviteUsed          = "INVITE_USED"
	CodeInviteEmailMismatch = "INVITE_EMAIL_MISMATCH"
	CodeInviteExpired       = "INVITE_EXPIRED"
)

// Invite errors
var (
	ErrInviteInvalid       = shared.NewDomainError(CodeInviteInvalid, "Invalid invite token")
	ErrInviteUsed          = shared.NewDomainError(CodeInviteUsed, "Invite token has already been used")
	ErrInviteEmailMismatch = shared.NewDomainError(CodeInviteEmailMismatch, "Invite is not valid for this account")
	ErrInviteExpired       = shared.NewDomainError(CodeInviteExpired, "Invite token has expired")
)

// InviteToken is a single-use credential that grants a role to the invited email.
// It moves from active to redeemed exactly once; expiry is detected lazily.
type InviteToken struct {
	ID           uuid.UUID
	Token        string
	CreatedBy    uuid.UUID
	InvitedEmail string
	RoleID       uuid.UUID
	Role         string
	Used         bool
	RedeemedAt   *time.Time
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// NewInviteToken creates an unused invite expiring ttl after now
func NewInviteToken(createdBy uuid.UUID, invitedEmail string, role Role, token string, ttl time.Duration, now time.Time) (*InviteToken, error) {
	if createdBy == uuid.Nil {
		return nil, shared.NewValidationError("Invite must have a creator")
	}
	invitedEmail = NormalizeEmail(invitedEmail)
	if err := validateEmail(invitedEmail); err != nil {
		return nil, err
	}
	if !IsInvitable(role.Name) {
		return nil, shared.NewValidationError("Role cannot be granted by invite: " + role.Name)
	}
	if strings.TrimSpace(token) == "" {
		return nil, shared.NewValidationError("Invite token cannot be empty")
	}
	if ttl <= 0 {
		return nil, shared.NewValidationError("Invite lifetime must be positive")
	}
	return &InviteToken{
		ID:           uuid.New(),
		Token:        token,
		CreatedBy:    createdBy,
		InvitedEmail: invitedEmail,
		RoleID:       role.ID,
		Role:         role.Name,
		ExpiresAt:    now.Add(ttl),
		CreatedAt:    now,
	}, nil
}

// IsExpired reports whether the invite has expired at now
func (t *InviteToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// IsActive reports whether the invite can still be redeemed
func (t *InviteToken) IsActive(now time.Time) bool {
	return !t.Used && !t.IsExpired(now)
}

// IsFor reports whether the invite targets email
func (t *InviteToken) IsFor(email string) bool {
	return t.InvitedEmail == NormalizeEmail(email)
}

// Check validates the invite for email at now.
// The checks run in order: used, email mismatch, expiry.
func (t *InviteToken) Check(email string, now time.Time) error {
	if t.Used {
		return ErrInviteUsed
	}
	if !t.IsFor(email) {
		return ErrInviteEmailMismatch
	}
	if t.IsExpired(now) {
		return ErrInviteExpired
	}
	return nil
}

// MarkRedeemed flips the invite to used
func (t *InviteToken) MarkRedeemed(now time.Time) error {
	if t.Used {
		return ErrInviteUsed
	}
	t.Used = true
	t.RedeemedAt = &now
	return nil
}

// CanDelete reports whether userID may delete the invite
func (t *InviteToken) CanDelete(userID uuid.UUID) error {
	if t.CreatedBy != userID {
		return shared.NewNotFoundError("Invite")
	}
	if t.Used {
		return shared.NewDomainError(shared.CodeInvalidState, "Used invites cannot be deleted")
	}
	return nil
}

// NewRandomToken returns n cryptographically random bytes, hex-encoded
func NewRandomToken(n int) (string, error) {
	if n <= 0 {
		n = 24
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
