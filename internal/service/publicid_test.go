package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublicIDFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		id, err := NewPublicID("LSN")
		require.NoError(t, err)
		assert.Regexp(t, `^LSN-[A-Z0-9]{8,10}$`, id)
	}
}

func TestNewPublicIDUsesTag(t *testing.T) {
	id, err := NewPublicID("GRP")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "GRP-"))
}

func TestNewPublicIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id, err := NewPublicID("LSN")
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
