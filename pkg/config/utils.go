package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultEnvFile = ".env"

// FindEnvFile resolves name to an existing env file. Absolute paths are
// checked as given. Relative names are looked up in the working directory
// and then in each parent, so tests in nested packages find the repo's file.
func FindEnvFile(name string) (string, error) {
	if name == "" {
		name = defaultEnvFile
	}
	if filepath.IsAbs(name) {
		return existing(name)
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	for {
		if path, err := existing(filepath.Join(dir, name)); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s: %w", name, os.ErrNotExist)
		}
		dir = parent
	}
}

func existing(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory: %w", path, os.ErrNotExist)
	}
	return path, nil
}
