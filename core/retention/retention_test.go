package retention

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Disabled(t *testing.T) {
	p := NewPolicy(0)
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	assert.False(t, p.IsEnabled())
	assert.True(t, p.CutoffAt(now).IsZero())
	assert.False(t, p.ShouldDelete(now.AddDate(-5, 0, 0), now))
}

func TestPolicy_Cutoff(t *testing.T) {
	p := NewPolicy(30)
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	cutoff := p.CutoffAt(now)
	assert.Equal(t, time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC), cutoff)
	assert.True(t, p.ShouldDelete(cutoff.Add(-time.Second), now))
	assert.False(t, p.ShouldDelete(cutoff, now))
}

func TestPolicy_CutoffKeepsLookback(t *testing.T) {
	p := &Policy{RetentionDays: 1, Lookback: 48 * time.Hour}
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(-48*time.Hour), p.CutoffAt(now))
	assert.False(t, p.ShouldDelete(now.Add(-47*time.Hour), now))
}
