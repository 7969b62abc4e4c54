package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultInfoFileName is the metadata file expected inside every job folder.
const DefaultInfoFileName = "__INFO.txt"

// metadataSeparator splits the fields on the first line of a metadata file.
const metadataSeparator = " - "

// ErrMalformedMetadata is returned when a metadata file does not follow the
// "Title - Subtitle - RotationFlag" layout.
var ErrMalformedMetadata = errors.New("malformed metadata")

// Metadata describes one job folder.
//
// It is read from a plain text file whose first line is
//
//	Title - Subtitle - RotationFlag
//
// and whose last non-blank line holds free-form keywords. The rotation flag
// is parsed into Rotate at read time; any spelling of "true" enables it.
type Metadata struct {
	// Title names the output folder.
	Title string

	// Subtitle is carried as data only.
	Subtitle string

	// Rotate enables random rotation and flipping of textures.
	Rotate bool

	// Keywords is the last non-blank line of the file.
	Keywords string
}

// ParseMetadata reads metadata from r.
//
// Returns ErrMalformedMetadata (wrapped) if the input is empty, the first line
// does not contain exactly three " - " separated fields, or the title is blank.
func ParseMetadata(r io.Reader) (*Metadata, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedMetadata)
	}

	first := strings.TrimSpace(strings.TrimPrefix(lines[0], "\uFEFF"))
	fields := strings.Split(first, metadataSeparator)
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: first line %q needs 3 fields separated by %q, got %d",
			ErrMalformedMetadata, first, metadataSeparator, len(fields))
	}

	meta := &Metadata{
		Title:    strings.TrimSpace(fields[0]),
		Subtitle: strings.TrimSpace(fields[1]),
		Rotate:   ParseFlag(fields[2]),
	}
	if meta.Title == "" {
		return nil, fmt.Errorf("%w: title is empty", ErrMalformedMetadata)
	}

	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			meta.Keywords = line
			break
		}
	}

	return meta, nil
}

// ReadMetadata opens and parses the metadata file at path.
func ReadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata: %w", err)
	}
	defer f.Close()

	meta, err := ParseMetadata(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return meta, nil
}

// ParseFlag reports whether s spells "true", ignoring case and surrounding
// whitespace.
func ParseFlag(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
