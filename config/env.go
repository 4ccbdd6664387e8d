package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

var errEnvFileNotFound = errors.New("env file not found")

// findEnvFile walks up from the working directory until it finds name.
func findEnvFile(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errEnvFileNotFound
		}
		dir = parent
	}
}

// loadEnvFile loads name from the nearest enclosing directory. Variables already
// set in the environment win over file values.
func loadEnvFile(name string) error {
	path, err := findEnvFile(name)
	if err != nil {
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}
