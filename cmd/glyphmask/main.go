package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/glyphmask/internal/config"
	"github.com/handiism/glyphmask/internal/render"
	log "github.com/sirupsen/logrus"
)

const appName = "glyphmask"

func main() {
	// Command line flags
	var (
		inputFlag   = flag.String("input", "", "Input root containing one folder per job (overrides config)")
		outputFlag  = flag.String("output", "", "Output base directory (overrides config)")
		fontFlag    = flag.String("font", "", "Path to a TrueType/OpenType font (overrides config)")
		batchFlag   = flag.Int("batch", 0, "Number of jobs processed together (overrides config)")
		seedFlag    = flag.Int64("seed", 0, "Random seed for texture choice and transforms (0 = time based)")
		configFlag  = flag.String("config", "", "Path to config file")
		envFlag     = flag.String("env", ".env", "Path to a .env file with GLYPHMASK_* overrides")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag  = flag.Bool("dry-run", false, "List job folders without rendering")
	)

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "glyphmask - Render textured alphabet images from job folders")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  glyphmask [options]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "For interactive mode, use: glyphmask-tui")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verboseFlag {
		log.SetLevel(log.DebugLevel)
	}

	// Load config, then env, then flags
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			log.WithFields(log.Fields{"app.name": appName, "config": *configFlag, "error": err.Error()}).
				Fatal("could not load config")
		}
	}
	if err := settings.ApplyEnv(*envFlag); err != nil {
		log.WithFields(log.Fields{"app.name": appName, "env": *envFlag, "error": err.Error()}).
			Fatal("could not apply environment overrides")
	}

	if *inputFlag != "" {
		settings.InputPath = *inputFlag
	}
	if *outputFlag != "" {
		settings.OutputBasePath = *outputFlag
	}
	if *fontFlag != "" {
		settings.FontPath = *fontFlag
	}
	if *batchFlag > 0 {
		settings.BatchLimit = *batchFlag
	}
	if *seedFlag != 0 {
		settings.Seed = *seedFlag
	}

	if err := settings.Validate(); err != nil {
		log.WithFields(log.Fields{"app.name": appName, "error": err.Error()}).Fatal("invalid settings")
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("interrupted, finishing current group")
		cancel()
	}()

	manager := render.NewManager(settings, logEvent)

	log.WithFields(log.Fields{
		"input":  settings.InputPath,
		"output": settings.OutputBasePath,
		"font":   settings.FontPath,
		"batch":  settings.BatchLimit,
	}).Info("starting")

	if err := manager.Initialize(ctx); err != nil {
		log.WithFields(log.Fields{"app.name": appName, "error": err.Error()}).Fatal("could not initialize")
	}

	if *dryRunFlag {
		for _, name := range manager.GetJobNames() {
			log.WithField("job", name).Info("would process")
		}
		return
	}

	results, err := manager.Run(ctx)
	done, failed, total, images := manager.GetProgress()
	summary := log.WithFields(log.Fields{
		"done":   done,
		"failed": failed,
		"total":  total,
		"images": images,
	})

	if err != nil {
		summary.Warn("cancelled")
		os.Exit(130)
	}

	for _, r := range results {
		if r.Err != nil {
			summary.Error("completed with failures")
			os.Exit(1)
		}
	}
	summary.Info("complete")
}

// logEvent forwards manager progress to the logger.
func logEvent(event render.ProgressEvent) {
	entry := log.NewEntry(log.StandardLogger())
	if event.Job != "" {
		entry = entry.WithField("job", event.Job)
	}
	if event.Output != "" {
		entry = entry.WithField("output", event.Output)
	}

	switch event.Level {
	case render.LevelVerbose:
		entry.Debug(event.Message)
	case render.LevelWarning:
		entry.Warn(event.Message)
	case render.LevelError:
		entry.Error(event.Message)
	default:
		entry.Info(event.Message)
	}
}
