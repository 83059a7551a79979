package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WithDetailsDoesNotMutateShared(t *testing.T) {
	detailed := ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "city"})

	assert.Equal(t, "city", detailed.Details["field"])
	assert.Empty(t, ErrInvalidRequest.Details)
	assert.ErrorIs(t, detailed, ErrInvalidRequest)
}

func TestAs_UnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("load stamp: %w", ErrStampNotFound)

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
	assert.Equal(t, "STAMP_NOT_FOUND: Stamp not found", appErr.Error())

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}
