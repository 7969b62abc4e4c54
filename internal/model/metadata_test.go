package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Metadata
		wantErr bool
	}{
		{
			name:  "three fields with keywords",
			input: "Demo - Sub - true\n\nsome text\nfloral, vintage, grunge\n\n",
			want:  Metadata{Title: "Demo", Subtitle: "Sub", Rotate: true, Keywords: "floral, vintage, grunge"},
		},
		{
			name:  "rotation flag is case-insensitive",
			input: "Demo - Sub - TrUe\r\nkw\r\n",
			want:  Metadata{Title: "Demo", Subtitle: "Sub", Rotate: true, Keywords: "kw"},
		},
		{
			name:  "false flag",
			input: "Demo - Sub - False\nkw",
			want:  Metadata{Title: "Demo", Subtitle: "Sub", Rotate: false, Keywords: "kw"},
		},
		{
			name:  "unknown flag disables rotation",
			input: "Demo - Sub - yes\nkw",
			want:  Metadata{Title: "Demo", Subtitle: "Sub", Rotate: false, Keywords: "kw"},
		},
		{
			name:  "single line doubles as keywords",
			input: "Demo - Sub - true",
			want:  Metadata{Title: "Demo", Subtitle: "Sub", Rotate: true, Keywords: "Demo - Sub - true"},
		},
		{
			name:  "byte order mark is ignored",
			input: "\uFEFFDemo - Sub - true\nkw",
			want:  Metadata{Title: "Demo", Subtitle: "Sub", Rotate: true, Keywords: "kw"},
		},
		{name: "empty file", input: "", wantErr: true},
		{name: "no separator", input: "Demo Sub true\nkw", wantErr: true},
		{name: "two fields", input: "Demo - Sub\nkw", wantErr: true},
		{name: "four fields", input: "Demo - Sub - true - extra\nkw", wantErr: true},
		{name: "blank title", input: " - Sub - true\nkw", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetadata(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				if !errors.Is(err, ErrMalformedMetadata) {
					t.Errorf("error %v does not wrap ErrMalformedMetadata", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("ParseMetadata() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestReadMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultInfoFileName)
	if err := os.WriteFile(path, []byte("Demo - Sub - true\nkw\n"), 0644); err != nil {
		t.Fatal(err)
	}

	meta, err := ReadMetadata(path)
	if err != nil {
		t.Fatalf("ReadMetadata() error: %v", err)
	}
	if meta.Title != "Demo" || !meta.Rotate {
		t.Errorf("unexpected metadata %+v", meta)
	}

	if _, err := ReadMetadata(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestParseFlag(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{" True ", true},
		{"false", false},
		{"FALSE", false},
		{"", false},
		{"1", false},
	}
	for _, tt := range tests {
		if got := ParseFlag(tt.input); got != tt.want {
			t.Errorf("ParseFlag(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
