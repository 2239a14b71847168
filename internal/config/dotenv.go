package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loadDotenv loads key=value pairs from a dotenv file into the process
// environment. The path is taken from the ENV_FILE variable when set and
// defaults to ".env" in the working directory otherwise.
//
// Variables already present in the environment are never overwritten, so
// real environment values keep priority over file values. A missing file
// is silently ignored.
func loadDotenv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading dotenv file %q: %w", path, err)
	}

	return nil
}
