package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 30*time.Second, parseDuration("30s", time.Minute))
}

func TestParseIntsSkipsInvalidEntries(t *testing.T) {
	assert.Equal(t, []int{5, 10, 50}, parseInts("5, 10,abc,-1,0, 50"))
	assert.Empty(t, parseInts(""))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HISTORY_PAGE_SIZES", "10,25")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, []int{10, 25}, cfg.History.PageSizes)
	assert.Equal(t, 10*time.Second, cfg.Platform.Timeout)
	assert.Equal(t, 5, cfg.Dashboard.RecentLimit)
}
