package holiday_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/effortlog/internal/holiday"
)

func TestLoad(t *testing.T) {
	byDate, err := holiday.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, byDate)

	h, ok := byDate["2024-10-29"]
	require.True(t, ok)
	assert.Equal(t, "Cumhuriyet Bayramı", h.Name)

	_, ok = byDate["2024-10-30"]
	assert.False(t, ok)
}
