package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKnownTags(t *testing.T) {
	assert.Equal(t, English, Resolve("en"))
	assert.Equal(t, English, Resolve(""))
	assert.Equal(t, SimplifiedChinese, Resolve("zh-CN"))
	assert.Equal(t, SimplifiedChinese, Resolve("zh_CN.UTF-8"))
	assert.Equal(t, English, Resolve("fr"))
}

func TestResolveEnvPrecedence(t *testing.T) {
	env := map[string]string{"LC_ALL": "zh-CN", "LANG": "en"}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	assert.Equal(t, SimplifiedChinese, ResolveEnv(lookup))
}

func TestResolveEnvFallsBackToLang(t *testing.T) {
	env := map[string]string{"LANG": "zh_CN.UTF-8"}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	assert.Equal(t, SimplifiedChinese, ResolveEnv(lookup))
}

func TestResolveEnvNoneSet(t *testing.T) {
	lookup := func(string) (string, bool) { return "", false }
	assert.Equal(t, English, ResolveEnv(lookup))
}

func TestTFallsBackToEnglishThenKey(t *testing.T) {
	assert.NotEmpty(t, T(SimplifiedChinese, "banner.hint"))
	assert.Equal(t, T(English, "banner.hint"), T(Tag("fr"), "banner.hint"))
	assert.Equal(t, "unknown.key", T(English, "unknown.key"))
}
