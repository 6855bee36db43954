// Package comm implements the out-of-band endpoints behind communicator
// cells: bit streams on disk for file communicators and a logging screen.
// The engine itself only ever sees the transmit flag and logic level of the
// cell; these objects live and die with the caller.
package comm

import (
	"bufio"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// Source drives a communicator cell's transmit flag, one bit per step.
type Source interface {
	Next() (bool, error)
}

// Sink receives a communicator cell's logic level, one bit per step.
type Sink interface {
	Put(level bool) error
}

// FileSource reads '0'/'1' bits from a file. Whitespace is skipped; past end
// of file the source keeps yielding LOW.
type FileSource struct {
	f    *os.File
	r    *bufio.Reader
	done bool
}

// OpenFileSource opens path as a bit stream for a file-input communicator.
func OpenFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open communicator input")
	}
	return &FileSource{f: f, r: bufio.NewReader(f)}, nil
}

// Next returns the next bit of the stream.
func (s *FileSource) Next() (bool, error) {
	if s.done {
		return false, nil
	}
	for {
		b, err := s.r.ReadByte()
		if err == io.EOF {
			s.done = true
			return false, nil
		}
		if err != nil {
			return false, errors.Wrap(err, "read communicator bit")
		}
		switch b {
		case '0':
			return false, nil
		case '1':
			return true, nil
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return false, errors.Errorf("unexpected byte %q in bit stream", b)
		}
	}
}

// Close releases the underlying file.
func (s *FileSource) Close() error { return s.f.Close() }

// FileSink writes one '0' or '1' byte per step for a file-output
// communicator.
type FileSink struct {
	f *os.File
	w *bufio.Writer
}

// CreateFileSink creates (or truncates) path as a bit stream sink.
func CreateFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create communicator output")
	}
	return &FileSink{f: f, w: bufio.NewWriter(f)}, nil
}

// Put appends one bit to the stream.
func (s *FileSink) Put(level bool) error {
	b := byte('0')
	if level {
		b = '1'
	}
	if err := s.w.WriteByte(b); err != nil {
		return errors.Wrap(err, "write communicator bit")
	}
	return nil
}

// Close flushes buffered bits and releases the file.
func (s *FileSink) Close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return errors.Wrap(err, "flush communicator output")
	}
	return s.f.Close()
}

// Screen logs the level transitions of a screen communicator cell.
type Screen struct {
	label  string
	logger *log.Logger
	last   bool
	seen   bool
}

// NewScreen returns a screen endpoint labelled for the given cell. A nil
// logger falls back to the package default.
func NewScreen(label string, logger *log.Logger) *Screen {
	if logger == nil {
		logger = log.Default()
	}
	return &Screen{label: label, logger: logger}
}

// Put records the level, logging only when it changes.
func (s *Screen) Put(level bool) error {
	if s.seen && level == s.last {
		return nil
	}
	s.seen = true
	s.last = level
	s.logger.Info("screen", "cell", s.label, "level", level)
	return nil
}

// Level returns the last level put to the screen.
func (s *Screen) Level() bool { return s.last }
