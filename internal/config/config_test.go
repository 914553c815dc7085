package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProjectPrefersExplicit(t *testing.T) {
	t.Setenv(EnvProjectID, "env-project")

	id, err := ResolveProject("  flag-project  ")
	require.NoError(t, err)
	assert.Equal(t, "flag-project", id)
}

func TestResolveProjectFallsBackToEnv(t *testing.T) {
	t.Setenv(EnvProjectID, "env-project")

	id, err := ResolveProject("")
	require.NoError(t, err)
	assert.Equal(t, "env-project", id)
}

func TestResolveProjectMissing(t *testing.T) {
	t.Setenv(EnvProjectID, "")

	_, err := ResolveProject("   ")
	assert.ErrorIs(t, err, ErrProjectMissing)
}

func TestSaveProjectWritesEnvFile(t *testing.T) {
	t.Setenv(EnvProjectID, "")
	path := filepath.Join(t.TempDir(), ".env")

	require.NoError(t, SaveProject(path, "my-project"))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "my-project", env[EnvProjectID])
	assert.Equal(t, "my-project", os.Getenv(EnvProjectID))
}

func TestSaveProjectPreservesOtherKeys(t *testing.T) {
	t.Setenv(EnvProjectID, "")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, godotenv.Write(map[string]string{"OTHER_KEY": "kept"}, path))

	require.NoError(t, SaveProject(path, "my-project"))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "kept", env["OTHER_KEY"])
	assert.Equal(t, "my-project", env[EnvProjectID])
}

func TestSaveProjectRejectsEmptyID(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	assert.Error(t, SaveProject(path, "  "))
}

func TestLoadEnvFileMissingIsNoError(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(t.TempDir()))

	assert.NoError(t, LoadEnvFile())
}
