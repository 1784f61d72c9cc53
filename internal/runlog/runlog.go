// Package runlog redirects the global logger to a timestamped run log
// file. In debug mode output stays on the console instead.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at a run log file under logPath and
// returns a release function that restores console logging and closes
// the file. With debug set, logging stays on the console with a
// human-readable writer and the release function is a no-op close.
func Setup(logPath string, debug bool) (func() error, error) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(logPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("run_%s.log", time.Now().Format("20060102_150405"))
	file, err := os.Create(filepath.Join(logPath, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	previous := log.Logger
	log.Logger = zerolog.New(file).With().Timestamp().Logger()

	release := func() error {
		log.Logger = previous
		return file.Close()
	}
	return release, nil
}
