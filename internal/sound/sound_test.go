package sound

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryCueHasFallbackTone(t *testing.T) {
	t.Parallel()

	for _, c := range Cues {
		assert.NotEmpty(t, fallbackTones[c], "cue %s", c)
	}
}

func TestMutedManagerIsSilent(t *testing.T) {
	t.Parallel()

	m := NewManager(t.TempDir(), true)
	assert.NoError(t, m.Init())
	assert.True(t, m.Muted())

	// 静音时不触碰扬声器
	for _, c := range Cues {
		m.Play(c)
	}
	m.Close()
}
