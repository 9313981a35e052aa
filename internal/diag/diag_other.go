//go:build !windows

package diag

import "fmt"

// run prints the stub message spec.md section 6 requires for every
// `--diag-*` flag on non-Windows builds.
func run(f Flag) int {
	fmt.Printf("--diag-%s is only available on Windows\n", f)
	return 0
}
