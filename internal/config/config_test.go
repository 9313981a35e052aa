package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")

	cfg := Default()
	require.NoError(t, cfg.SaveTo(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)
	assert.Contains(t, contents, "showCpu=true")
	assert.Contains(t, contents, "refreshMs=500")
	assert.Contains(t, contents, "timelineGraphStyle=braille")

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(filepath.Join(dir, "config.ini"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLegacyDiskToggle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("showDisk=false\n"), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.False(t, cfg.ShowDiskRead)
	assert.False(t, cfg.ShowDiskWrite)
	assert.True(t, cfg.ShowDiskReadBars)
	assert.True(t, cfg.ShowDiskWriteBars)
}

func TestLegacyKeysNeverWritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	cfg := Default()
	cfg.ShowDiskRead = false
	require.NoError(t, cfg.SaveTo(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "showDisk=")
	assert.Contains(t, string(data), "showDiskRead=false")
}

func TestClampRefreshMs(t *testing.T) {
	assert.Equal(t, uint32(200), ClampRefreshMs(10))
	assert.Equal(t, uint32(5000), ClampRefreshMs(99999))
	assert.Equal(t, uint32(1000), ClampRefreshMs(1000))
}

func TestParseBoolVocabulary(t *testing.T) {
	for _, s := range []string{"1", "true", "yes", "on"} {
		b, ok := parseBool(s)
		assert.True(t, ok)
		assert.True(t, b)
	}
	for _, s := range []string{"0", "false", "no", "off"} {
		b, ok := parseBool(s)
		assert.True(t, ok)
		assert.False(t, b)
	}
	_, ok := parseBool("maybe")
	assert.False(t, ok)
}

func TestTimelineAggAliases(t *testing.T) {
	assert.Equal(t, AggMax, parseTimelineAgg("peak"))
	assert.Equal(t, AggMax, parseTimelineAgg("highest"))
	assert.Equal(t, AggAvg, parseTimelineAgg("mean"))
	assert.Equal(t, AggAvg, parseTimelineAgg("average"))
}
