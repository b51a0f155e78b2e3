// Package cli implements the sunwheel command-line interface.
//
// This package provides commands for computing sunburst layouts from mind-map
// files, validating and inspecting the resulting geometry, managing saved
// documents, and running the HTTP layout server. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute sunburst geometry from a mind-map file
//   - validate: Check a layout for angular and radial consistency
//   - hittest: Resolve a screen coordinate to the sector under it
//   - inspect: Print the placed sectors as a table
//   - docs: Manage saved mind-map documents
//   - serve: Run the HTTP layout and document server
//   - cache: Manage the layout result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// carried on the [CLI] value and handed to the pipeline runner, so command
// output (stdout) stays separate from log output (stderr).
//
// # Example
//
//	import "github.com/sunwheel-labs/sunwheel/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat renders timestamps as "HH:MM:SS.cs", e.g. "14:32:01.45".
const logTimeFormat = "15:04:05.00"

// newLogger builds the logger every command shares. It writes to w, filters
// at level, and stamps each line with a short timestamp.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	}
	return log.NewWithOptions(w, opts)
}

// stopwatch measures one command phase for verbose logging. Start it before
// the phase and call done with the result fields when it finishes; elapsed
// time is appended automatically.
//
// Not safe for concurrent use; each phase gets its own stopwatch.
type stopwatch struct {
	log   *log.Logger
	what  string
	start time.Time
}

func startTimer(l *log.Logger, what string) *stopwatch {
	return &stopwatch{log: l, what: what, start: time.Now()}
}

// done emits a debug line for the phase. Fields are key-value pairs in the
// charmbracelet/log style; "elapsed" is reserved.
func (sw *stopwatch) done(fields ...any) {
	fields = append(fields, "elapsed", time.Since(sw.start).Round(time.Millisecond))
	sw.log.Debug(sw.what, fields...)
}
