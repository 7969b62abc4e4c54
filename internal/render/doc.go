// Package render provides the batch orchestration that turns job folders
// into textured glyph images.
//
// # Manager
//
// The Manager coordinates the entire batch:
//
//  1. Discover job folders under the input root
//  2. Read each folder's metadata file and texture images
//  3. Resolve the font size for the canvas (cached per font and canvas)
//  4. Create a uniquely named output folder with one subfolder per category
//  5. Render, texture and save one PNG per alphanumeric character
//
// # Basic Usage
//
//	manager := render.NewManager(settings, func(event render.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := manager.Run(ctx)
//
// # Concurrency
//
// Jobs run in groups of settings.BatchLimit. A group runs concurrently and
// finishes completely before the next one starts, see RunGroups. Within a
// job the characters are processed in order.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	    Job     string
//	    Output  string
//	}
//
// A failed job produces an Error event and a Result with Err set; it never
// stops the other jobs.
package render
