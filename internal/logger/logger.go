// Package logger is the structured log sink of a generation run. Entries go
// to stderr as JSON lines, or through zerolog's console writer when a person
// is watching the terminal, so stdout only ever carries progress output.
package logger

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

const (
	defaultLevel      = zerolog.InfoLevel
	consoleTimeFormat = "15:04:05"
)

// Options configure New. The zero value logs JSON at info level to stderr.
type Options struct {
	// Level is a zerolog level name such as "debug" or "warn".
	Level string
	// HumanReadable switches to the colored console format.
	HumanReadable bool
	Writer        io.Writer
}

// Logger carries the fields of a run (run id, component) into every entry.
// A nil *Logger discards everything.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger from opts. An unknown level name is an error.
func New(opts Options) (*Logger, error) {
	level := defaultLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	var sink io.Writer = os.Stderr
	if opts.Writer != nil {
		sink = opts.Writer
	}
	if opts.HumanReadable {
		sink = zerolog.ConsoleWriter{Out: sink, TimeFormat: consoleTimeFormat}
	}

	return &Logger{z: zerolog.New(sink).Level(level).With().Timestamp().Logger()}, nil
}

// Nop discards every entry. Services fall back to it when no logger is set.
func Nop() *Logger {
	return &Logger{z: zerolog.Nop()}
}

// WithFields returns a child logger stamping fields on each entry. Keys are
// added in sorted order so JSON lines are stable.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	ctx := l.z.With()
	for _, key := range keys {
		ctx = ctx.Interface(key, fields[key])
	}
	return &Logger{z: ctx.Logger()}
}

// With adds a single field.
func (l *Logger) With(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

func (l *Logger) Debug(msg string) { l.event(zerolog.DebugLevel).Msg(msg) }

func (l *Logger) Info(msg string) { l.event(zerolog.InfoLevel).Msg(msg) }

func (l *Logger) Warn(msg string) { l.event(zerolog.WarnLevel).Msg(msg) }

// Error logs msg with err attached under the "error" key.
func (l *Logger) Error(err error, msg string) {
	e := l.event(zerolog.ErrorLevel)
	if err != nil {
		e = e.Err(err)
	}
	e.Msg(msg)
}

// event returns nil for a nil receiver; zerolog events ignore calls on nil.
func (l *Logger) event(level zerolog.Level) *zerolog.Event {
	if l == nil {
		return nil
	}
	return l.z.WithLevel(level)
}
