package persistence

import (
	"errors"

	"github.com/homefinder/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM sentinel errors to domain errors.
// resource names the entity in NOT_FOUND messages.
func translateError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.WrapDomainError(shared.CodeAlreadyExists, resource+" already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.WrapDomainError(shared.CodeInvalidInput, resource+" references a missing record", err)
	}
	return err
}
