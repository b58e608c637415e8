package version

import (
	"fmt"
	"os"
	"strings"
)

// Set at build time with -ldflags "-X ott-manager.app/api/internal/version.Version=1.2.0".
var (
	Version = "dev"
	Commit  = ""
)

// Load overrides Version with the contents of a VERSION file when one
// exists, and returns the effective version.
func Load(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return Version
	}
	if v := strings.TrimSpace(string(data)); v != "" {
		Version = v
	}
	return Version
}

func String() string {
	if Commit == "" {
		return Version
	}
	short := Commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, short)
}
