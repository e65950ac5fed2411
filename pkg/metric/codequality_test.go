package metric

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/modelscore/pkg/resource"
)

func TestLocalQualityScore(t *testing.T) {
	t.Run("empty dir", func(t *testing.T) {
		assert.Equal(t, 0.0, localQualityScore(t.TempDir()))
	})

	t.Run("partial", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("torch\n"), 0600))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "tests"), 0700))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM python:3.12\n"), 0600))

		assert.Equal(t, 0.75, localQualityScore(dir))
	})

	t.Run("all checks", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[project]\n"), 0600))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "tests"), 0700))
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".github"), 0700))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM scratch\n"), 0600))

		assert.Equal(t, 1.0, localQualityScore(dir))
	})
}

func TestCodeQualityLocalDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("numpy\n"), 0600))

	d := resource.Parse("https://github.com/org/repo")
	d.LocalDir = dir

	s := &Scorer{}
	res := s.CodeQuality(context.Background(), d)

	assert.Equal(t, 0.25, res.Score)
	assert.GreaterOrEqual(t, res.Latency, int64(0))
}

func TestFractionTrue(t *testing.T) {
	assert.Equal(t, 0.0, fractionTrue([]bool{false, false}))
	assert.Equal(t, 0.5, fractionTrue([]bool{true, false}))
	assert.Equal(t, 1.0, fractionTrue([]bool{true, true, true}))
}
