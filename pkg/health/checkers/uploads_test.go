package checkers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadDirChecker(t *testing.T) {
	dir := t.TempDir()
	c := NewUploadDirChecker(dir)

	require.NoError(t, c.Check(context.Background()))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file must be removed")

	missing := NewUploadDirChecker(filepath.Join(dir, "missing"))
	assert.Error(t, missing.Check(context.Background()))
}
