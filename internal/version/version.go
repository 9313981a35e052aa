// Package version holds ai-z's build identity, grounded on the teacher's
// version.Version package-level string used by --version and the update
// checker (gpud/version). ai-z has no update channel to check against, so
// only the version string itself is carried over.
package version

import "github.com/blang/semver"

// Version is printed by --version. Overridable at link time with
// -ldflags "-X github.com/aiz-project/ai-z/internal/version.Version=...".
var Version = "0.1.0"

// MinTestedNVMLDriverVersion is the oldest NVIDIA driver this build has been
// exercised against. Grounded on the teacher's
// nvml.ClockEventsSupportedVersion(major int) bool, which gates a feature on
// "versions 535 and above" because older drivers lack the symbol entirely;
// ai-z doesn't gate any single call on this, but --version surfaces the same
// kind of "your driver predates what this build expects" signal the teacher
// logs a warning for.
var MinTestedNVMLDriverVersion = semver.Version{Major: 450}
