package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates_MatchWrappedErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		typ   ErrorType
	}{
		{"validation", NewValidationError("bad input"), IsValidationError, ErrorTypeValidation},
		{"field validation", NewFieldValidationError("description", "too_short", "too short"), IsValidationError, ErrorTypeValidation},
		{"not found", NewNotFoundError("missing"), IsNotFoundError, ErrorTypeNotFound},
		{"conflict", NewConflictError("dup"), IsConflictError, ErrorTypeConflict},
		{"unauthorized", NewUnauthorizedError("expired"), IsUnauthorizedError, ErrorTypeUnauthorized},
		{"forbidden", NewForbiddenError("nope"), IsForbiddenError, ErrorTypeForbidden},
		{"storage", NewStorageError("write failed", errors.New("disk full")), IsStorageError, ErrorTypeStorage},
		{"corrupt", NewCorruptDataError("tickets", errors.New("eof")), IsCorruptDataError, ErrorTypeCorruptData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, tt.check(wrapped))
			assert.Equal(t, tt.typ, TypeOf(wrapped))
		})
	}
}

func TestTypeOf_ForeignError(t *testing.T) {
	assert.Equal(t, ErrorTypeInternal, TypeOf(errors.New("plain")))
	assert.False(t, IsAppError(errors.New("plain")))
}

func TestStorageError_UnwrapsCause(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := NewStorageError("failed to save collection", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestFieldValidationError_CarriesFieldAndReason(t *testing.T) {
	err := NewFieldValidationError("discordId", "invalid_format", "discord ID must have 17-19 digits")

	appErr := GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "discordId", appErr.Field)
	assert.Equal(t, "invalid_format", appErr.Reason)
}
