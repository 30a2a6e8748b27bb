package habits

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/slok/habits/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "habits"
	}

	// go test changes the CWD to the package directory, relative paths would
	// not point where the caller expects.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("HABITS_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("habits binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "HABITS_INTEGRATION"
		envBinary     = "HABITS_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{Binary: os.Getenv(envBinary)}
	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// isolatedEnv points HOME to a temp dir so a user seed never leaks into the tests.
func isolatedEnv(t *testing.T) []string {
	t.Helper()
	return []string{"HOME=" + t.TempDir()}
}

// Run runs a habits command without logs.
func Run(ctx context.Context, t *testing.T, config Config, args string, stdin io.Reader) (stdout, stderr []byte, err error) {
	t.Helper()
	return testutils.RunHabits(ctx, isolatedEnv(t), config.Binary, args, stdin, true)
}

// RunWithEnv runs a habits command without logs and with extra env vars.
func RunWithEnv(ctx context.Context, t *testing.T, config Config, env []string, args string, stdin io.Reader) (stdout, stderr []byte, err error) {
	t.Helper()
	return testutils.RunHabits(ctx, append(isolatedEnv(t), env...), config.Binary, args, stdin, true)
}
