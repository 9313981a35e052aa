package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aiz-project/ai-z/internal/config"
	"github.com/aiz-project/ai-z/internal/i18n"
	"github.com/aiz-project/ai-z/internal/timeline"
)

func TestBarClampsOutOfRangeValues(t *testing.T) {
	cfg := config.Default()
	tl := timeline.New(10)

	low := bar(-5, 100, tl, cfg)
	assert.Contains(t, low, "-5.0%")
	assert.NotContains(t, low, "#")

	high := bar(500, 100, tl, cfg)
	assert.Contains(t, high, "500.0%")
	assert.Equal(t, strings.Count(high, "#"), 30)
}

func TestBarShowsPeakWhenEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.ShowPeakValues = true
	tl := timeline.New(10)
	tl.Push(10)
	tl.Push(90)

	line := bar(50, 100, tl, cfg)
	assert.Contains(t, line, "PEAK")
}

func TestMetricColorFallsBackToCyan(t *testing.T) {
	assert.NotNil(t, metricColor(config.MetricNameColor("bogus")))
}

func TestNewScreenBuildsOneTimelinePerGPU(t *testing.T) {
	cfg := config.Default()
	s := NewScreen(cfg, []string{"GPU A", "GPU B"})
	assert.Len(t, s.gpuLines, 2)
	assert.Equal(t, i18n.English, s.lang)
}

func TestHandleKeyQuitsOnQ(t *testing.T) {
	a := &App{cfg: config.Default(), screen: NewScreen(config.Default(), nil)}
	assert.True(t, a.handleKey('q'))
	assert.False(t, a.handleKey('x'))
}

func TestHandleKeyAdjustsRefresh(t *testing.T) {
	cfg := config.Default()
	cfg.RefreshMs = 500
	a := &App{cfg: cfg, screen: NewScreen(cfg, nil)}
	a.handleKey('+')
	assert.Equal(t, uint32(600), a.cfg.RefreshMs)
	a.handleKey('-')
	a.handleKey('-')
	assert.Equal(t, uint32(400), a.cfg.RefreshMs)
}
