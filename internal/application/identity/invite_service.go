package identity

import (
	"context"
	"errors"
	"time"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/homefinder/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InviteServiceConfig holds invite issuance settings
type InviteServiceConfig struct {
	// Expiry is how long an invite stays redeemable
	Expiry time.Duration
	// TokenBytes is the number of random bytes in a token
	TokenBytes int
	// MaxAttempts bounds token regeneration on collision
	MaxAttempts int
}

// DefaultInviteServiceConfig returns the default configuration
func DefaultInviteServiceConfig() InviteServiceConfig {
	return InviteServiceConfig{
		Expiry:      48 * time.Hour,
		TokenBytes:  24,
		MaxAttempts: 5,
	}
}

// InviteService issues and redeems role upgrade invites
type InviteService struct {
	inviteRepo  identity.InviteTokenRepository
	userRepo    identity.UserRepository
	roleRepo    identity.RoleRepository
	profileRepo identity.ProfileRepository
	txManager   shared.TransactionManager
	config      InviteServiceConfig
	metrics     *telemetry.BusinessMetrics
	logger      *zap.Logger

	now      func() time.Time
	newToken func(n int) (string, error)
}

// NewInviteService creates a new InviteService
func NewInviteService(
	inviteRepo identity.InviteTokenRepository,
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	profileRepo identity.ProfileRepository,
	txManager shared.TransactionManager,
	config InviteServiceConfig,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *InviteService {
	defaults := DefaultInviteServiceConfig()
	if config.Expiry <= 0 {
		config.Expiry = defaults.Expiry
	}
	if config.TokenBytes <= 0 {
		config.TokenBytes = defaults.TokenBytes
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	return &InviteService{
		inviteRepo:  inviteRepo,
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		profileRepo: profileRepo,
		txManager:   txManager,
		config:      config,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
		newToken:    identity.NewRandomToken,
	}
}

// Issue creates an invite granting role to an existing account
func (s *InviteService) Issue(ctx context.Context, session identity.Session, req IssueInviteRequest) (*InviteResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invite", "issue")
	defer span.End()

	if !session.HasAnyRole(identity.ListingRoles...) {
		return nil, shared.NewDomainError(shared.CodeForbidden, "Only agents and admins can issue invites")
	}
	if !identity.IsInvitable(req.Role) {
		return nil, shared.NewValidationError("Invites can grant the agent or admin role only")
	}
	if req.Role == identity.RoleAdmin && !session.IsAdmin() {
		return nil, shared.NewDomainError(shared.CodeForbidden, "Only admins can issue admin invites")
	}

	email := identity.NormalizeEmail(req.Email)
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "No account is registered with this email")
		}
		return nil, err
	}

	role, err := s.roleRepo.FindByName(ctx, req.Role)
	if err != nil {
		return nil, err
	}

	now := s.now()
	active, err := s.inviteRepo.HasActive(ctx, email, role.ID, now)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, shared.NewDomainError(shared.CodeConflict, "An active invite already exists for this email and role")
	}

	token, err := s.uniqueToken(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	invite, err := identity.NewInviteToken(session.UserID, email, *role, token, s.config.Expiry, now)
	if err != nil {
		return nil, err
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, err
	}

	s.metrics.RecordInviteIssued(ctx, role.Name)
	telemetry.SetAttributes(span, telemetry.SpanAttrInviteID, invite.ID.String())
	telemetry.SetOK(span)
	s.logger.Info("Invite issued",
		zap.String("invite_id", invite.ID.String()),
		zap.String("created_by", session.UserID.String()),
		zap.String("role", role.Name),
		zap.Time("expires_at", invite.ExpiresAt))

	resp := toInviteResponse(invite, now)
	return &resp, nil
}

// ListMine returns the invites issued by the caller, newest first
func (s *InviteService) ListMine(ctx context.Context, session identity.Session) ([]InviteResponse, error) {
	if !session.HasAnyRole(identity.ListingRoles...) {
		return nil, shared.NewDomainError(shared.CodeForbidden, "Only agents and admins can list invites")
	}

	invites, err := s.inviteRepo.ListByCreator(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]InviteResponse, len(invites))
	for i := range invites {
		out[i] = toInviteResponse(&invites[i], now)
	}
	return out, nil
}

// Verify checks that a token can be redeemed by the caller. It writes nothing.
func (s *InviteService) Verify(ctx context.Context, session identity.Session, token string) (*VerifyInviteResponse, error) {
	if !session.HasRole(identity.RoleBasic) {
		return nil, shared.NewDomainError(shared.CodeForbidden, "Only basic accounts can accept invites")
	}

	invite, err := s.inviteRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, identity.ErrInviteInvalid
		}
		return nil, err
	}
	if err := invite.Check(session.Email, s.now()); err != nil {
		return nil, err
	}

	return &VerifyInviteResponse{
		InviteID:  invite.ID,
		RoleID:    invite.RoleID,
		Role:      invite.Role,
		ExpiresAt: invite.ExpiresAt,
	}, nil
}

// Redeem grants the invite's role to the caller and creates their profile.
// Redeeming an already used invite again by its invitee only re-asserts the role.
func (s *InviteService) Redeem(ctx context.Context, session identity.Session, req RedeemInviteRequest) (*RedeemInviteResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invite", "redeem")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrInviteID, req.InviteID.String(),
		telemetry.SpanAttrUserID, session.UserID.String())

	invite, err := s.inviteRepo.FindByID(ctx, req.InviteID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, identity.ErrInviteInvalid
		}
		return nil, err
	}
	if !invite.IsFor(session.Email) {
		return nil, identity.ErrInviteEmailMismatch
	}

	if invite.Used {
		if err := s.roleRepo.Assign(ctx, session.UserID, invite.RoleID); err != nil {
			return nil, err
		}
		s.logger.Info("Invite already redeemed, role re-asserted",
			zap.String("invite_id", invite.ID.String()),
			zap.String("user_id", session.UserID.String()))
		return &RedeemInviteResponse{Role: invite.Role, AlreadyRedeemed: true}, nil
	}

	now := s.now()
	if invite.IsExpired(now) {
		return nil, identity.ErrInviteExpired
	}

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.roleRepo.Assign(txCtx, session.UserID, invite.RoleID); err != nil {
			return err
		}
		if err := s.ensureProfile(txCtx, session, req); err != nil {
			return err
		}

		marked, err := s.inviteRepo.MarkUsed(txCtx, invite.ID, now)
		if err != nil {
			return err
		}
		if !marked {
			return shared.NewDomainError(shared.CodeConflict, "Invite was redeemed concurrently")
		}

		basic, err := s.roleRepo.FindByName(txCtx, identity.RoleBasic)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
		return s.roleRepo.Revoke(txCtx, session.UserID, basic.ID)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.RecordInviteRedeemed(ctx, invite.Role)
	telemetry.SetOK(span)
	s.logger.Info("Invite redeemed",
		zap.String("invite_id", invite.ID.String()),
		zap.String("user_id", session.UserID.String()),
		zap.String("role", invite.Role))

	return &RedeemInviteResponse{Role: invite.Role}, nil
}

// Delete removes an unused invite created by the caller
func (s *InviteService) Delete(ctx context.Context, session identity.Session, inviteID uuid.UUID) error {
	invite, err := s.inviteRepo.FindByID(ctx, inviteID)
	if err != nil {
		return err
	}
	if err := invite.CanDelete(session.UserID); err != nil {
		return err
	}

	deleted, err := s.inviteRepo.DeleteUnused(ctx, inviteID, session.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return shared.NewDomainError(shared.CodeInvalidState, "Used invites cannot be deleted")
	}

	s.logger.Info("Invite deleted",
		zap.String("invite_id", inviteID.String()),
		zap.String("user_id", session.UserID.String()))
	return nil
}

// ensureProfile creates the caller's profile unless one exists
func (s *InviteService) ensureProfile(ctx context.Context, session identity.Session, req RedeemInviteRequest) error {
	_, err := s.profileRepo.FindByUserID(ctx, session.UserID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	profile, err := identity.NewProfessionalProfile(session.UserID, session.Email, req.ProfileInput())
	if err != nil {
		return err
	}
	return s.profileRepo.Create(ctx, profile)
}

// uniqueToken draws tokens until one is unused or the attempts run out
func (s *InviteService) uniqueToken(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		token, err := s.newToken(s.config.TokenBytes)
		if err != nil {
			return "", err
		}
		taken, err := s.inviteRepo.ExistsByToken(ctx, token)
		if err != nil {
			return "", err
		}
		if !taken {
			return token, nil
		}
		s.logger.Warn("Invite token collision, regenerating", zap.Int("attempt", attempt))
	}
	return "", shared.NewDomainError(shared.CodeConflict, "Could not generate a unique invite token")
}
