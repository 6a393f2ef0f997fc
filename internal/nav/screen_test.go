package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenRoundTrip(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range AllScreens() {
		name := s.String()
		assert.False(t, seen[name], "duplicate screen name %s", name)
		seen[name] = true

		parsed, err := ParseScreen(name)
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	assert.Len(t, seen, 7)
}

func TestParseScreenRejectsUnknown(t *testing.T) {
	_, err := ParseScreen("loading")
	assert.Error(t, err)
}

func TestScreenIsResult(t *testing.T) {
	assert.True(t, ScreenResultRisk.IsResult())
	assert.True(t, ScreenResultSafe.IsResult())
	assert.False(t, ScreenAnalyzing.IsResult())
	assert.Equal(t, "screen(99)", Screen(99).String())
}
