package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinFloat(t *testing.T) {
	assert.Equal(t, 1.0, MinFloat(1, 2.5))
	assert.Equal(t, -3.0, MinFloat(4, -3))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, Clamp(12.5, 0, 10))
	assert.Equal(t, 4.2, Clamp(4.2, 0, 10))
}

func TestNearlyZero(t *testing.T) {
	assert.True(t, NearlyZero(0.001, 0.01))
	assert.True(t, NearlyZero(-0.001, 0.01))
	assert.False(t, NearlyZero(0.5, 0.01))
}
