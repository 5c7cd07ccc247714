package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "companycrm/internal/errors"
)

// AssertAppError requires err to be, or wrap, an *AppError with the given code
// and returns it for further checks.
func AssertAppError(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()
	require.Error(t, err, "expected AppError %s", code)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected *AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, "message: %s", appErr.Message)
	return appErr
}

// AssertNoError fails the test immediately on a non-nil error.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	require.NoError(t, err)
}
