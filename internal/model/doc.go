// Package model defines the core data structures used throughout
// the glyphmask application.
//
// # Alphabet and Categories
//
// Every job renders the same 62 characters. Each character belongs to one
// Category, which picks its output subfolder and canvas padding:
//
//	c, _ := model.Classify('q')
//	fmt.Println(c.Folder())         // "a-z lower"
//	fmt.Println(c.DefaultPadding()) // 200
//
// # Metadata
//
// Metadata is parsed from the info file inside each input folder:
//
//	meta, err := model.ReadMetadata("input/demo/__INFO.txt")
//	if errors.Is(err, model.ErrMalformedMetadata) {
//	    // first line is not "Title - Subtitle - RotationFlag"
//	}
//
// # Job
//
// Job ties an input folder to its metadata, textures and output tree:
//
//	job := model.NewJob(0, "input/demo", model.DefaultInfoFileName)
//	job.OutputDir = "output/Demo"
//	fmt.Println(job.OutputPath('A')) // "output/Demo/A-Z UPPER/A.png"
package model
