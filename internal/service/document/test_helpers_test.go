package document

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/docformat/internal/config"
	"github.com/oshokin/docformat/internal/constants"
	"github.com/oshokin/docformat/internal/formatter"
)

// newTestConfig returns a validated configuration with the progress bar disabled.
func newTestConfig(t *testing.T, overrides ...func(*config.Config)) *config.Config {
	t.Helper()

	cfg := config.Defaults()
	cfg.ShowProgress = false

	for _, override := range overrides {
		override(cfg)
	}

	require.NoError(t, config.ValidateConfig(cfg))

	return cfg
}

// newTestService creates a service backed by the real format engine.
func newTestService(t *testing.T, stdin string, overrides ...func(*config.Config)) *ServiceImpl {
	t.Helper()

	var reader io.Reader = strings.NewReader(stdin)

	service := NewService(newTestConfig(t, overrides...), formatter.New(), nil, reader)

	impl, ok := service.(*ServiceImpl)
	require.True(t, ok, "Service should be of type *ServiceImpl")

	impl.progressWriter = io.Discard

	return impl
}

// writeTestFile writes content to name inside dir and returns the full path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), constants.DefaultFilePermissions))

	return path
}

// readTestFile returns the content of path.
func readTestFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}
