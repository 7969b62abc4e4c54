// Package config provides configuration management for glyphmask.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Environment overrides, optionally read from a .env file
//   - Validation before a batch starts
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Reads jobs from ./input, writes to ./output
//	// 1024x1024 canvases, 10 jobs per batch
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/glyphmask.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
// ApplyEnv reads a .env file (if present) and the GLYPHMASK_* variables:
//
//	GLYPHMASK_INPUT_PATH=jobs
//	GLYPHMASK_OUTPUT_BASE_PATH=out
//	GLYPHMASK_FONT_PATH=font/Fresh Juice.ttf
//	GLYPHMASK_BATCH_LIMIT=4
//	GLYPHMASK_SEED=42
//
// # Configuration Options
//
// Settings includes options for:
//   - Input root, output root and metadata file name
//   - Font, canvas size and per-category padding
//   - Batch size (jobs started together before waiting)
//   - Random seed
package config
