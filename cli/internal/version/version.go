package version

import (
	"errors"
	"fmt"
	"runtime"

	goversion "github.com/hashicorp/go-version"
)

var (
	// Version is the version of the CLI
	Version = "0.1.0"
	// BuildDate is the build date
	BuildDate = "unknown"
	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// ErrVersionMismatch is returned when the running CLI does not satisfy the
// configured required_version constraint.
var ErrVersionMismatch = errors.New("prisma-cascade version does not satisfy required_version")

// Info holds version information
type Info struct {
	Version   string
	BuildDate string
	GitCommit string
	GoVersion string
	Platform  string
}

// Get returns version information
func Get() Info {
	return Info{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a formatted version string
func (i Info) String() string {
	return fmt.Sprintf("prisma-cascade version %s (%s %s)", i.Version, i.Platform, i.GoVersion)
}

// FullString returns a detailed version string
func (i Info) FullString() string {
	return fmt.Sprintf(`prisma-cascade version %s
Build Date: %s
Git Commit: %s
Platform: %s
Go Version: %s`, i.Version, i.BuildDate, i.GitCommit, i.Platform, i.GoVersion)
}

// Satisfies checks current against a constraint such as ">= 0.1, < 1.0".
// An empty constraint is always satisfied.
func Satisfies(current, constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := goversion.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid required_version %q: %w", constraint, err)
	}
	v, err := goversion.NewVersion(current)
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: have %s, want %s", ErrVersionMismatch, v, c)
	}
	return nil
}
