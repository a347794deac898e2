package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9 ()\-]{6,20}$`)

// ProfessionalProfile holds the public contact details of an upgraded user.
// A user has at most one profile, created when an invite is redeemed.
type ProfessionalProfile struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Phone        string
	WhatsApp     string
	Email        string
	Address      string
	BusinessName string
	CreatedAt    time.Time
}

// ProfileInput carries the contact details submitted at redemption
type ProfileInput struct {
	Phone        string
	WhatsApp     string
	Address      string
	BusinessName string
}

// NewProfessionalProfile creates a profile for userID; email is taken from the account
func NewProfessionalProfile(userID uuid.UUID, email string, in ProfileInput) (*ProfessionalProfile, error) {
	phone := strings.TrimSpace(in.Phone)
	if !phoneRegex.MatchString(phone) {
		return nil, shared.NewValidationError("A valid phone number is required")
	}
	whatsapp := strings.TrimSpace(in.WhatsApp)
	if whatsapp != "" && !phoneRegex.MatchString(whatsapp) {
		return nil, shared.NewValidationError("Invalid WhatsApp number")
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, shared.NewValidationError("Address is required")
	}
	return &ProfessionalProfile{
		ID:           uuid.New(),
		UserID:       userID,
		Phone:        phone,
		WhatsApp:     whatsapp,
		Email:        NormalizeEmail(email),
		Address:      address,
		BusinessName: strings.TrimSpace(in.BusinessName),
		CreatedAt:    time.Now(),
	}, nil
}
