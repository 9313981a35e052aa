//go:build !windows

package sources

// WindowsOnly is empty on non-Windows platforms; the merger's priority
// list simply has no Windows-only contributors there.
func WindowsOnly(pdhDisabled bool) []Source { return nil }
