// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - File copying
//   - Filename sanitization for cross-platform compatibility
//   - Collision-free output folder creation
//   - Job folder and texture discovery
//   - Image decoding, resampling and PNG encoding
//
// # File Operations
//
//	// Copy a file
//	err := ioutils.CopyFile(ctx, "input/demo/__INFO.txt", "output/Demo/__INFO.txt")
//
//	// Claim a fresh output folder ("Demo", "Demo_1", "Demo_2", ...)
//	dir, err := ioutils.CreateUniqueDir("output", "Demo")
//
//	// Find every texture below a job folder
//	textures, err := ioutils.FindImages("input/demo")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from folder names:
//
//	safe := ioutils.SanitizeFileName("Rust: Vol 1/2") // Returns "Rust_ Vol 1_2"
//
// # Image Processing
//
// The ImageService handles texture and glyph images:
//
//	svc := ioutils.NewImageService()
//
//	// Decode PNG, JPEG or WebP into NRGBA
//	tex, _ := svc.Load("input/demo/wood.webp")
//
//	// Resize to fit within 824x824, maintaining aspect ratio
//	fitted := svc.Fit(tex, 824, 824)
package ioutils
