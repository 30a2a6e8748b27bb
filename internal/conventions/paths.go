package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default habits data directory name (relative to home).
	DefaultDataDir = ".habits"
	// SeedFile is the filename of the user seed that overrides the embedded one.
	SeedFile = "seed.yaml"
)

// SeedPath returns the user seed path inside a home directory.
func SeedPath(homeDir string) string {
	return filepath.Join(homeDir, DefaultDataDir, SeedFile)
}
