// internal/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Requests is the access logger used by Middleware. Init points it at the
// console and, when a log directory is configured, at request.log.
var Requests = log.Logger

// Init sets up the global logger and the access logger. When dir is not
// empty, access entries are appended to dir/request.log and warn+ entries
// of the global logger to dir/error.log. The returned func closes the files.
func Init(level, dir string) (func(), error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		lvl = parsed
	}

	// Use ConsoleWriter for human-readable, colorized output in development
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	appWriters := []io.Writer{console}
	reqWriters := []io.Writer{console}
	closeFn := func() {}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		reqFile, err := openLog(filepath.Join(dir, "request.log"))
		if err != nil {
			return nil, err
		}
		errFile, err := openLog(filepath.Join(dir, "error.log"))
		if err != nil {
			reqFile.Close()
			return nil, err
		}

		reqWriters = append(reqWriters, reqFile)
		appWriters = append(appWriters, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: errFile},
			Level:  zerolog.WarnLevel,
		})
		closeFn = func() {
			reqFile.Close()
			errFile.Close()
		}
	}

	zerolog.SetGlobalLevel(lvl)

	// Add a hook to include the caller's file and line number
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(appWriters...)).
		With().Timestamp().Caller().Logger()
	Requests = zerolog.New(zerolog.MultiLevelWriter(reqWriters...)).
		With().Timestamp().Logger()

	return closeFn, nil
}

func openLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
