package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 12, 1},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{100, 1, 100},
		{101, 100, 2},
		{5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.pageSize), func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.pageSize))
		})
	}
}

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := NewNotFoundError("Listing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))

	wrapped := fmt.Errorf("lookup: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestWrapDomainError_Unwrap(t *testing.T) {
	cause := errors.New("s3 timeout")
	err := WrapDomainError(CodeExternalService, "Image upload failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrExternalService)
	assert.Equal(t, "Image upload failed", err.Error())
}
