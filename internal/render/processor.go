package render

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	ioutils "github.com/handiism/glyphmask/internal/io"
	"github.com/handiism/glyphmask/internal/model"
)

// ErrNoTextures is returned for job folders without any texture image.
var ErrNoTextures = errors.New("no texture images found")

// ProcessFolder runs one job end to end.
//
// The steps are:
//  1. Read the metadata file and discover the textures
//  2. Resolve the font size for the canvas
//  3. Create the output tree and copy the metadata file into it
//  4. For every alphabet character: pick a texture, render the glyph,
//     composite the texture through the glyph mask and save the PNG
//
// Output written before a failure is left in place.
func (m *Manager) ProcessFolder(ctx context.Context, job *model.Job) error {
	meta, err := model.ReadMetadata(job.InfoPath)
	if err != nil {
		return err
	}
	job.Metadata = meta

	textures, err := ioutils.FindImages(job.Dir)
	if err != nil {
		return fmt.Errorf("find textures: %w", err)
	}
	if len(textures) == 0 {
		return fmt.Errorf("%w in %s", ErrNoTextures, job.Dir)
	}
	job.Textures = textures

	width, height := m.rasterizer.Size()
	size, err := m.sizer.MaxSize(m.settings.FontPath, width, height)
	if err != nil {
		return err
	}

	if err := m.createOutputTree(ctx, job); err != nil {
		return err
	}
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Rendering %q (%d textures, font size %d) into %s", meta.Title, len(textures), size, job.OutputDir),
		Level:   LevelVerbose,
		Job:     job.Dir,
		Output:  job.OutputDir,
	})

	rng := m.rngFor(job)
	for _, ch := range model.Alphabet {
		if err := ctx.Err(); err != nil {
			return err
		}

		category, _ := model.Classify(ch)
		tex := textures[rng.IntN(len(textures))]

		canvas, err := m.rasterizer.Render(ch, m.settings.FontPath, size, m.settings.Padding.For(category))
		if err != nil {
			return fmt.Errorf("render %q: %w", ch, err)
		}

		img, err := m.compositor.Apply(canvas, tex, meta.Rotate, rng)
		if err != nil {
			return fmt.Errorf("composite %q with %s: %w", ch, tex, err)
		}

		if err := m.images.SavePNG(ctx, job.OutputPath(ch), img); err != nil {
			return fmt.Errorf("save %q: %w", ch, err)
		}
		atomic.AddInt64(&m.imagesWritten, 1)
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Processed %s -> %s", job.Dir, job.OutputDir),
		Level:   LevelSuccess,
		Job:     job.Dir,
		Output:  job.OutputDir,
	})
	return nil
}

// createOutputTree claims a fresh folder named after the job title, creates
// the category subfolders and copies the metadata file into it.
func (m *Manager) createOutputTree(ctx context.Context, job *model.Job) error {
	out, err := ioutils.CreateUniqueDir(m.settings.OutputBasePath, job.Metadata.Title)
	if err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}
	job.OutputDir = out

	for _, c := range model.Categories {
		if err := ioutils.EnsureDir(job.CategoryDir(c)); err != nil {
			return fmt.Errorf("create %s folder: %w", c.Folder(), err)
		}
	}

	dst := filepath.Join(out, filepath.Base(job.InfoPath))
	if err := ioutils.CopyFile(ctx, job.InfoPath, dst); err != nil {
		return fmt.Errorf("copy metadata: %w", err)
	}
	return nil
}
