package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// Париж - Берлин около 878 км
	assert.InDelta(t, 878, HaversineDistance(48.8566, 2.3522, 52.5200, 13.4050), 5)
	assert.Equal(t, 0.0, HaversineDistance(10, 10, 10, 10))
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(0, 0))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.False(t, ValidateCoordinates(91, 0))
	assert.False(t, ValidateCoordinates(0, -181))
	assert.False(t, ValidateCoordinates(math.NaN(), 0))
}
