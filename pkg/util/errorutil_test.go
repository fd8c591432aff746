package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewValidationError("missing fields", nil), CodeValidationFailed, http.StatusBadRequest},
		{"duplicate email", NewDuplicateEmail(), CodeDuplicateEmail, http.StatusBadRequest},
		{"invalid credentials", NewInvalidCredentials(), CodeInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", NewUnauthorized("invalid token"), CodeUnauthorized, http.StatusUnauthorized},
		{"not found", NewNotFound("user", nil), CodeNotFound, http.StatusNotFound},
		{"store failure", NewStoreFailure(errors.New("conn refused")), CodeStoreFailure, http.StatusInternalServerError},
		{"rate limited", NewTooManyRequests("slow down"), CodeRateLimited, http.StatusTooManyRequests},
		{"internal", NewInternalError(nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
			assert.True(t, IsCode(tt.err, tt.code))
		})
	}
}

func TestStoreFailureIsNotValidation(t *testing.T) {
	err := NewStoreFailure(errors.New("timeout"))
	assert.False(t, IsCode(err, CodeValidationFailed))
}

func TestToDomainError_WrappedAndForeign(t *testing.T) {
	cause := errors.New("boom")
	storeErr := NewStoreFailure(cause)
	wrapped := fmt.Errorf("register: %w", storeErr)

	de := ToDomainError(wrapped)
	assert.Equal(t, CodeStoreFailure, de.Code)
	assert.ErrorIs(t, de, cause)

	de = ToDomainError(fiber.NewError(http.StatusBadRequest, "invalid payload"))
	assert.Equal(t, CodeValidationFailed, de.Code)
	assert.Equal(t, "invalid payload", de.Message)

	de = ToDomainError(cause)
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)

	assert.Nil(t, ToDomainError(nil))
}
