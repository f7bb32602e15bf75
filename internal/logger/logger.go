// Package logger provides the structured logging interface shared by the
// smoother driver, the CLI and the shutdown manager.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Logger is implemented by every component that reports structured events.
// Fields are free-form key/value pairs, not a fixed schema.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warning(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

// Structured is the zerolog-backed implementation the CLI builds; Nop below
// is the no-op alternative.
type Structured struct {
	logger zerolog.Logger
	level  Level
}

func toZerologLevel(l Level) zerolog.Level {
	switch l {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// NewConsole returns a human-readable console logger for interactive CLI use.
func NewConsole(level Level) *Structured {
	w := zerolog.ConsoleWriter{Out: os.Stdout}
	return New(w, level)
}

// New returns a Structured logger writing JSON lines to w, for files or pipes.
func New(w io.Writer, level Level) *Structured {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &Structured{logger: zl, level: level}
}

func (s *Structured) with(e *zerolog.Event, fields map[string]interface{}) *zerolog.Event {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	return e
}

func (s *Structured) Debug(msg string, fields map[string]interface{}) {
	s.with(s.logger.Debug(), fields).Msg(msg)
}

func (s *Structured) Info(msg string, fields map[string]interface{}) {
	s.with(s.logger.Info(), fields).Msg(msg)
}

func (s *Structured) Warning(msg string, fields map[string]interface{}) {
	s.with(s.logger.Warn(), fields).Msg(msg)
}

func (s *Structured) Error(msg string, err error, fields map[string]interface{}) {
	s.with(s.logger.Error().Err(err), fields).Msg(msg)
}

// Nop discards everything; used where a Logger is required but output isn't.
type Nop struct{}

func (Nop) Debug(string, map[string]interface{})        {}
func (Nop) Info(string, map[string]interface{})         {}
func (Nop) Warning(string, map[string]interface{})      {}
func (Nop) Error(string, error, map[string]interface{}) {}
