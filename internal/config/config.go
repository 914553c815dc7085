package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// EnvProjectID is the environment variable Google's SDKs use for the
	// billing/resource scope of API calls.
	EnvProjectID = "GOOGLE_CLOUD_PROJECT"

	DefaultLocation = "us-central1"
	DefaultModel    = "imagen-4.0-generate-preview-05-20"

	// EnvFileName is the local key=value file the setup wizard persists
	// the project ID into.
	EnvFileName = ".env"
)

// ErrProjectMissing signals that no project ID was found in the explicit
// flag value or the environment; callers fall back to interactive entry.
var ErrProjectMissing = errors.New("project ID must be provided either as a flag or via the GOOGLE_CLOUD_PROJECT environment variable")

// LoadEnvFile loads .env from the working directory into the process
// environment. A missing file is not an error.
func LoadEnvFile() error {
	if _, err := os.Stat(EnvFileName); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(EnvFileName)
}

// ProjectFromEnv returns the project ID from the environment, or "".
func ProjectFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvProjectID))
}

// ResolveProject picks the project ID to use: an explicit value wins,
// otherwise the environment. ErrProjectMissing when neither is set.
func ResolveProject(explicit string) (string, error) {
	if id := strings.TrimSpace(explicit); id != "" {
		return id, nil
	}
	if id := ProjectFromEnv(); id != "" {
		return id, nil
	}
	return "", ErrProjectMissing
}

// SaveProject persists the project ID to the env file at path, preserving
// any other keys already stored there, and updates the process environment.
func SaveProject(path, projectID string) error {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return errors.New("project ID is required")
	}
	if path == "" {
		path = EnvFileName
	}

	env := map[string]string{}
	if existing, err := godotenv.Read(path); err == nil {
		env = existing
	}
	env[EnvProjectID] = projectID

	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return os.Setenv(EnvProjectID, projectID)
}
