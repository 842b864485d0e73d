package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_ErrorReplacesLoading(t *testing.T) {
	c := NewCenter(4 * time.Second)

	id := c.Loading("Creating meeting...")
	current := c.Current()
	require.NotNil(t, current)
	assert.Equal(t, KindLoading, current.Kind)
	assert.Nil(t, current.ExpiresAt)

	c.Error("API route not found.")
	current = c.Current()
	require.NotNil(t, current)
	assert.Equal(t, KindError, current.Kind)
	assert.Equal(t, "API route not found.", current.Message)

	c.Dismiss(id)
	assert.NotNil(t, c.Current(), "stale dismiss must not remove the newer notification")
}

func TestCenter_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCenter(4 * time.Second)
	c.now = func() time.Time { return now }

	c.Success("Meeting started!")
	require.NotNil(t, c.Current())

	now = now.Add(5 * time.Second)
	assert.Nil(t, c.Current())
}

func TestCenter_DismissMatching(t *testing.T) {
	c := NewCenter(time.Second)
	id := c.Loading("Signing in...")
	c.Dismiss(id)
	assert.Nil(t, c.Current())
}
