package render

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/handiism/glyphmask/internal/config"
	"github.com/handiism/glyphmask/internal/glyph"
	ioutils "github.com/handiism/glyphmask/internal/io"
	"github.com/handiism/glyphmask/internal/model"
	"github.com/handiism/glyphmask/internal/texture"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a batch progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	// Job is the input folder the event refers to, if any.
	Job string

	// Output is the output folder the event refers to, if any.
	Output string
}

// Result is the outcome of one job.
type Result struct {
	Job *model.Job
	Err error
}

// Manager coordinates a batch of folder jobs.
type Manager struct {
	settings   *config.Settings
	images     *ioutils.ImageService
	library    *glyph.Library
	sizer      *glyph.Sizer
	rasterizer *glyph.Rasterizer
	compositor *texture.Compositor
	seed       uint64

	jobs          []*model.Job
	doneJobs      int32
	failedJobs    int32
	imagesWritten int64

	// process handles one job; it is ProcessFolder unless replaced in tests.
	process func(ctx context.Context, job *model.Job) error

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a new Manager.
//
// The font size cache is created here and shared by every job the Manager
// runs. Use NewManagerWithCache to share one cache between managers.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return NewManagerWithCache(settings, glyph.NewSizeCache(), onProgress)
}

// NewManagerWithCache creates a new Manager using cache for font sizes.
func NewManagerWithCache(settings *config.Settings, cache *glyph.SizeCache, onProgress func(ProgressEvent)) *Manager {
	images := ioutils.NewImageService()
	library := glyph.NewLibrary()

	seed := uint64(settings.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	m := &Manager{
		settings:   settings,
		images:     images,
		library:    library,
		sizer:      glyph.NewSizer(library, cache),
		rasterizer: glyph.NewRasterizer(library, images, settings.CanvasWidth, settings.CanvasHeight),
		compositor: texture.NewCompositor(images),
		seed:       seed,
		onProgress: onProgress,
	}
	m.process = m.ProcessFolder
	return m
}

// Initialize discovers the job folders under the input root.
func (m *Manager) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirs, err := ioutils.ListSubdirs(m.settings.InputPath)
	if err != nil {
		return fmt.Errorf("list input folders: %w", err)
	}

	m.jobs = make([]*model.Job, 0, len(dirs))
	for i, dir := range dirs {
		job := model.NewJob(i, dir, m.settings.InfoFileName)
		m.jobs = append(m.jobs, job)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Found job folder: %s", dir), Level: LevelVerbose, Job: dir})
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found %d job folder(s) in %s", len(m.jobs), m.settings.InputPath),
		Level:   LevelInfo,
	})
	return nil
}

// Run processes all initialized jobs in groups of settings.BatchLimit.
//
// Each group runs concurrently and must finish completely before the next
// group starts. A failed job is reported and recorded in its Result; it
// never stops other jobs. The returned error is non-nil only when ctx was
// cancelled.
func (m *Manager) Run(ctx context.Context) ([]Result, error) {
	limit := m.settings.BatchLimit
	groups := (len(m.jobs) + max(limit, 1) - 1) / max(limit, 1)
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Processing %d job(s) in %d group(s) of up to %d", len(m.jobs), groups, limit),
		Level:   LevelVerbose,
	})

	errs := RunGroups(ctx, m.jobs, limit, func(ctx context.Context, job *model.Job) error {
		err := recovered(func() error { return m.process(ctx, job) })
		if err != nil {
			atomic.AddInt32(&m.failedJobs, 1)
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("Failed %s: %v", job.Dir, err),
				Level:   LevelError,
				Job:     job.Dir,
				Output:  job.OutputDir,
			})
		}
		atomic.AddInt32(&m.doneJobs, 1)
		return err
	})

	results := make([]Result, len(m.jobs))
	for i, job := range m.jobs {
		results[i] = Result{Job: job, Err: errs[i]}
	}

	return results, ctx.Err()
}

// GetProgress returns current batch progress.
func (m *Manager) GetProgress() (done, failed, total int32, images int64) {
	return atomic.LoadInt32(&m.doneJobs), atomic.LoadInt32(&m.failedJobs),
		int32(len(m.jobs)), atomic.LoadInt64(&m.imagesWritten)
}

// GetJobNames returns the input folder names of all initialized jobs.
func (m *Manager) GetJobNames() []string {
	names := make([]string, len(m.jobs))
	for i, job := range m.jobs {
		names[i] = filepath.Base(job.Dir)
	}
	return names
}

// Jobs returns the initialized jobs.
func (m *Manager) Jobs() []*model.Job {
	return m.jobs
}

// rngFor returns the random source for a job. Jobs get independent streams
// so results do not depend on scheduling.
func (m *Manager) rngFor(job *model.Job) *rand.Rand {
	return rand.New(rand.NewPCG(m.seed, uint64(job.Index)))
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onProgress(event)
}
