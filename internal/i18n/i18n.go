// Package i18n resolves ai-z's UI language tag from --lang or the
// AI_Z_LANG/LC_ALL/LANG environment variables, per spec.md section 6, and
// holds the small message catalog the TUI banner draws from. No example
// repo in this pack carries a translation library (gpud's UI strings are
// all hardcoded English), so this stays a hand-rolled lookup table rather
// than reaching for an ecosystem i18n package -- see DESIGN.md.
package i18n

import "strings"

// Tag identifies a resolved UI language. Unrecognized tags fall back to
// English rather than erroring, since --lang is an ergonomic nicety, not
// a correctness-critical input.
type Tag string

const (
	English            Tag = "en"
	SimplifiedChinese  Tag = "zh-CN"
)

// Resolve normalizes a raw --lang value or environment variable into a
// known Tag. It accepts the exact forms spec.md section 6 lists as
// examples ("en", "zh-CN", "zh_CN.UTF-8") plus any value sharing the same
// "zh" language prefix.
func Resolve(raw string) Tag {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return English
	}
	norm := strings.ToLower(strings.ReplaceAll(raw, "_", "-"))
	if strings.HasPrefix(norm, "zh") {
		return SimplifiedChinese
	}
	return English
}

// ResolveEnv walks AI_Z_LANG, LC_ALL, LANG in priority order per spec.md
// section 6, returning the first non-empty value's resolved Tag.
func ResolveEnv(lookup func(string) (string, bool)) Tag {
	for _, key := range []string{"AI_Z_LANG", "LC_ALL", "LANG"} {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return Resolve(v)
		}
	}
	return English
}

var catalog = map[Tag]map[string]string{
	English: {
		"banner.hint": "press q to quit, b to run all benchmarks, r to refresh config",
	},
	SimplifiedChinese: {
		"banner.hint": "按 q 退出，按 b 运行全部基准测试，按 r 重新加载配置",
	},
}

// T looks up key in tag's catalog, falling back to English and finally to
// key itself so a missing translation never renders blank.
func T(tag Tag, key string) string {
	if msgs, ok := catalog[tag]; ok {
		if v, ok := msgs[key]; ok {
			return v
		}
	}
	if v, ok := catalog[English][key]; ok {
		return v
	}
	return key
}
