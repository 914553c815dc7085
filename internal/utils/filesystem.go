package utils

import "os"

func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && info.IsDir()
}

// EnsureDirectory creates path (including parents) when it does not exist yet.
func EnsureDirectory(path string) error {
	if DirectoryExists(path) {
		return nil
	}
	return os.MkdirAll(path, 0755)
}
