package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables recognized by ApplyEnv.
const (
	EnvInputPath      = "GLYPHMASK_INPUT_PATH"
	EnvOutputBasePath = "GLYPHMASK_OUTPUT_BASE_PATH"
	EnvFontPath       = "GLYPHMASK_FONT_PATH"
	EnvBatchLimit     = "GLYPHMASK_BATCH_LIMIT"
	EnvSeed           = "GLYPHMASK_SEED"
)

// ApplyEnv loads the given .env files (".env" when none are given) into the
// process environment and then overrides settings from GLYPHMASK_*
// variables. Missing .env files are ignored; variables already set in the
// environment take precedence over file values.
func (s *Settings) ApplyEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}

	if v := os.Getenv(EnvInputPath); v != "" {
		s.InputPath = v
	}
	if v := os.Getenv(EnvOutputBasePath); v != "" {
		s.OutputBasePath = v
	}
	if v := os.Getenv(EnvFontPath); v != "" {
		s.FontPath = v
	}
	if v := os.Getenv(EnvBatchLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBatchLimit, err)
		}
		s.BatchLimit = n
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		s.Seed = n
	}

	return nil
}
