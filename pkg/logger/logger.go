// Package logger holds the process-wide zerolog logger.
//
// Call Init once from main; everything else either receives the returned
// logger through its constructor or calls Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is a zerolog level name ("debug", "info", "warn", ...). "warning"
	// is accepted as an alias. Empty or unknown values mean info.
	Level string
	// Pretty switches to zerolog.ConsoleWriter. Production keeps JSON.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service is attached to every line as the "service" field when set.
	Service string
}

var (
	mu     sync.RWMutex
	root   *zerolog.Logger
	initMu sync.Mutex
)

// Init builds the process logger. Only the first call since start (or since
// Reset) has any effect; later calls return the existing logger.
func Init(opts Options) zerolog.Logger {
	initMu.Lock()
	defer initMu.Unlock()

	if l, ok := current(); ok {
		return l
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	l := build(opts, lvl)
	mu.Lock()
	root = &l
	mu.Unlock()
	return l
}

func build(opts Options, lvl zerolog.Level) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	fields := zerolog.New(out).Level(lvl).With().Timestamp().Caller()
	if opts.Service != "" {
		fields = fields.Str("service", opts.Service)
	}
	return fields.Logger()
}

// Get returns the process logger. It panics when Init has not run, since a
// silently discarded log is worse than a crash at startup.
func Get() zerolog.Logger {
	l, ok := current()
	if !ok {
		panic("logger: Get() called before Init()")
	}
	return l
}

func current() (zerolog.Logger, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if root == nil {
		return zerolog.Logger{}, false
	}
	return *root, true
}

// Reset forgets the process logger so the next Init rebuilds it. Tests only.
func Reset() {
	mu.Lock()
	root = nil
	mu.Unlock()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
