//go:build prod

package database

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// GetDefaultDBPath returns the database path for production mode.
// In production, the database is stored in the user's config directory.
func GetDefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Warnf("Failed to get user config dir: %v. Using fallback.", err)
		return "imagenctl.db"
	}

	appDir := filepath.Join(configDir, "imagenctl")

	err = os.MkdirAll(appDir, 0755)
	if err != nil {
		log.Warnf("Failed to create app config dir: %v. Using fallback.", err)
		return "imagenctl.db"
	}

	return filepath.Join(appDir, "imagenctl.db")
}

func IsDevelopment() bool {
	return false
}
