package listing

import (
	"context"

	locationapp "github.com/homefinder/backend/internal/application/location"
	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/domain/location"
	"github.com/google/uuid"
)

// ChainResolver validates and names location chains.
// It is implemented by the location application service.
type ChainResolver interface {
	ValidateChain(ctx context.Context, chain location.Chain) error
	Names(ctx context.Context, chain location.Chain) locationapp.ChainNames
}

// AgentReader loads the account behind a listing
type AgentReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error)
}

// ProfileReader loads the professional profile of an agent
type ProfileReader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.ProfessionalProfile, error)
}

var _ ChainResolver = (*locationapp.Service)(nil)
