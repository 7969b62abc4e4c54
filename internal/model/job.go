package model

import "path/filepath"

// Job is one input folder processed end to end into one output tree.
//
// Metadata and Textures are filled in when the job starts and are not
// modified afterwards.
type Job struct {
	// Index is the position of the job in the batch, starting at 0.
	Index int

	// Dir is the input folder.
	Dir string

	// InfoPath is the metadata file inside Dir.
	InfoPath string

	// Metadata is parsed from InfoPath.
	Metadata *Metadata

	// Textures are candidate texture image paths found under Dir.
	Textures []string

	// OutputDir is the output tree created for the job.
	OutputDir string
}

// NewJob creates a Job for dir with the metadata file name infoFileName.
func NewJob(index int, dir, infoFileName string) *Job {
	if infoFileName == "" {
		infoFileName = DefaultInfoFileName
	}
	return &Job{
		Index:    index,
		Dir:      dir,
		InfoPath: filepath.Join(dir, infoFileName),
	}
}

// Name returns the base name of the input folder.
func (j *Job) Name() string {
	return filepath.Base(j.Dir)
}

// CategoryDir returns the output subfolder for category c.
func (j *Job) CategoryDir(c Category) string {
	return filepath.Join(j.OutputDir, c.Folder())
}

// OutputPath returns the PNG path for character r, or "" if r is not part of
// the alphabet.
func (j *Job) OutputPath(r rune) string {
	c, ok := Classify(r)
	if !ok {
		return ""
	}
	return filepath.Join(j.CategoryDir(c), string(r)+".png")
}
