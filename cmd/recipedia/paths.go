package main

import (
	"os"
	"path/filepath"
)

const appDirName = ".recipedia"

func appDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, appDirName), nil
}

func defaultConfigPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.yaml"), nil
}

func defaultLogPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "recipedia.log"), nil
}
