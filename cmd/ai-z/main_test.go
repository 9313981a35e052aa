package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aiz-project/ai-z/internal/i18n"
)

func TestExtractSnapshotLoopDefaultWhenBare(t *testing.T) {
	remaining, ms, set := extractSnapshotLoop([]string{"ai-z", "--snapshot", "--snapshot-loop"})
	assert.True(t, set)
	assert.Equal(t, defaultSnapshotLoopMs, ms)
	assert.Equal(t, []string{"ai-z", "--snapshot"}, remaining)
}

func TestExtractSnapshotLoopDefaultWhenFollowedByFlag(t *testing.T) {
	_, ms, set := extractSnapshotLoop([]string{"ai-z", "--snapshot-loop", "--debug"})
	assert.True(t, set)
	assert.Equal(t, defaultSnapshotLoopMs, ms)
}

func TestExtractSnapshotLoopExplicitValue(t *testing.T) {
	_, ms, set := extractSnapshotLoop([]string{"ai-z", "--snapshot-loop", "2000"})
	assert.True(t, set)
	assert.Equal(t, 2000, ms)
}

func TestExtractSnapshotLoopEqualsForm(t *testing.T) {
	_, ms, set := extractSnapshotLoop([]string{"ai-z", "--snapshot-loop=50"})
	assert.True(t, set)
	assert.Equal(t, 50, ms)
}

func TestExtractSnapshotLoopClampsBelowFloor(t *testing.T) {
	_, ms, _ := extractSnapshotLoop([]string{"--snapshot-loop", "1"})
	assert.Equal(t, 10, ms)
}

func TestExtractSnapshotLoopInvalidFallsBackToDefault(t *testing.T) {
	_, ms, _ := extractSnapshotLoop([]string{"--snapshot-loop", "not-a-number"})
	assert.Equal(t, defaultSnapshotLoopMs, ms)
}

func TestExtractSnapshotLoopNotSet(t *testing.T) {
	remaining, _, set := extractSnapshotLoop([]string{"ai-z", "--hardware"})
	assert.False(t, set)
	assert.Equal(t, []string{"ai-z", "--hardware"}, remaining)
}

func TestResolveLangPrefersFlag(t *testing.T) {
	assert.Equal(t, i18n.SimplifiedChinese, resolveLang("zh-CN"))
	assert.Equal(t, i18n.English, resolveLang(""))
}

func TestParseDriverSemverStripsLeadingZeros(t *testing.T) {
	v, err := parseDriverSemver("535.104.05")
	assert.NoError(t, err)
	assert.Equal(t, uint64(535), v.Major)
	assert.Equal(t, uint64(104), v.Minor)
	assert.Equal(t, uint64(5), v.Patch)
}

func TestParseDriverSemverPadsMissingComponents(t *testing.T) {
	v, err := parseDriverSemver("470")
	assert.NoError(t, err)
	assert.Equal(t, uint64(470), v.Major)
	assert.Equal(t, uint64(0), v.Minor)
	assert.Equal(t, uint64(0), v.Patch)
}

func TestParseDriverSemverRejectsGarbage(t *testing.T) {
	_, err := parseDriverSemver("not-a-version")
	assert.Error(t, err)
}
