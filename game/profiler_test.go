package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTPSMonitorSteadyRate(t *testing.T) {
	m := NewTPSMonitor(54)
	for i := 0; i < 60*20; i++ {
		assert.False(t, m.Observe(time.Second/60))
	}
	assert.InDelta(t, 60, m.TPS(), 1)
}

func TestTPSMonitorReportsDropsAfterWarmupWithCooldown(t *testing.T) {
	m := NewTPSMonitor(54)
	var drops []int
	for i := 1; i <= 400; i++ {
		if m.Observe(50 * time.Millisecond) {
			drops = append(drops, i)
		}
	}
	// 20 TPS: first drop when warmup ends at 3s, the next after the 10s cooldown.
	assert.Equal(t, []int{60, 260}, drops)
	assert.InDelta(t, 20, m.TPS(), 0.01)
}

func TestTPSMonitorSeesFullStall(t *testing.T) {
	m := NewTPSMonitor(54)
	m.Warmup = 0
	for i := 0; i < 20; i++ {
		require.False(t, m.Observe(time.Second/60))
	}
	assert.True(t, m.Observe(time.Second))
	// 21 frames over 1.333s, not the 0.433s a clamped delta would give.
	assert.InDelta(t, 21/(1+20.0/60), m.TPS(), 0.01)
}

func TestStepDeltaCapsPuzzleAdvance(t *testing.T) {
	assert.Equal(t, 16*time.Millisecond, stepDelta(16*time.Millisecond))
	assert.Equal(t, maxStep, stepDelta(time.Second))
}

func TestNewProfilerCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles")
	p, err := NewProfiler(dir)
	require.NoError(t, err)
	assert.False(t, p.IsProfiling())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
