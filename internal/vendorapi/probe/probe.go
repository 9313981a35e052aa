// Package probe provides the "lazily init exactly once, remember the
// failure reason, never retry" accessor pattern shared by every
// internal/vendorapi/* package, per spec.md section 4.1: "Failure reason is
// cached; subsequent calls return None without retrying."
package probe

import (
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// failures records the human-readable reason each vendor probe failed, for
// the lifetime of the process. LastFailure reads it without re-probing the
// hardware.
var failures = gocache.New(gocache.NoExpiration, gocache.NoExpiration)

// LastFailure returns the cached failure reason for a vendor name, if any
// probe has run and failed.
func LastFailure(vendor string) (string, bool) {
	v, ok := failures.Get(vendor)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Once returns an accessor that lazily runs init exactly once and
// thereafter returns the cached *T (success) or failure string, matching
// every vendor package's `func Get() (*Api, string)` shape.
func Once[T any](vendor string, init func() (*T, error)) func() (*T, string) {
	var (
		once   sync.Once
		api    *T
		errMsg string
	)
	return func() (*T, string) {
		once.Do(func() {
			a, err := init()
			if err != nil {
				errMsg = err.Error()
				failures.Set(vendor, errMsg, gocache.NoExpiration)
				return
			}
			api = a
		})
		return api, errMsg
	}
}
