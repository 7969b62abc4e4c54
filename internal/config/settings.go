package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/handiism/glyphmask/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Paths
	InputPath      string `json:"input_path"`
	OutputBasePath string `json:"output_base_path"`
	InfoFileName   string `json:"info_file_name"`

	// Rendering
	FontPath     string        `json:"font_path"`
	CanvasWidth  int           `json:"canvas_width"`
	CanvasHeight int           `json:"canvas_height"`
	Padding      model.Padding `json:"padding"`

	// Batching
	BatchLimit int `json:"batch_limit"`

	// Seed for texture selection and transforms. Zero picks a fresh seed
	// for every run.
	Seed int64 `json:"seed"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		InputPath:      "input",
		OutputBasePath: "output",
		InfoFileName:   model.DefaultInfoFileName,

		FontPath:     filepath.Join("font", "Fresh Juice.ttf"),
		CanvasWidth:  1024,
		CanvasHeight: 1024,
		Padding:      model.DefaultPadding(),

		BatchLimit: 10,
	}
}

// Load reads settings from a JSON file. Missing keys keep their default
// values; a missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports every invalid option at once.
func (s *Settings) Validate() error {
	var errs []error
	if s.InputPath == "" {
		errs = append(errs, errors.New("input_path is required"))
	}
	if s.OutputBasePath == "" {
		errs = append(errs, errors.New("output_base_path is required"))
	}
	if s.InfoFileName == "" {
		errs = append(errs, errors.New("info_file_name is required"))
	}
	if s.BatchLimit < 1 {
		errs = append(errs, fmt.Errorf("batch_limit must be at least 1, got %d", s.BatchLimit))
	}
	if s.CanvasWidth < 1 || s.CanvasHeight < 1 {
		errs = append(errs, fmt.Errorf("canvas must be at least 1x1, got %dx%d", s.CanvasWidth, s.CanvasHeight))
	}
	for _, c := range model.Categories {
		p := s.Padding.For(c)
		if p < 0 {
			errs = append(errs, fmt.Errorf("padding for %s must not be negative, got %d", c, p))
			continue
		}
		if 2*p >= s.CanvasWidth || 2*p >= s.CanvasHeight {
			errs = append(errs, fmt.Errorf("padding for %s (%d) leaves no room on a %dx%d canvas",
				c, p, s.CanvasWidth, s.CanvasHeight))
		}
	}
	return errors.Join(errs...)
}
