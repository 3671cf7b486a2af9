package goschematron

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Source abstracts over polymorphic XML inputs. A source is opened for
// exactly one read pass; the returned stream is released on every exit path.
// An Open error means the resource is absent, which callers surface as an
// INVALID verdict or an absent result rather than a failure.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// XMLFile wraps a filesystem path as a Source.
func XMLFile(path string) Source { return fileSource(path) }

type fileSource string

func (s fileSource) Name() string { return string(s) }

func (s fileSource) Open() (io.ReadCloser, error) {
	f, err := os.Open(string(s))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// XMLBytes wraps a byte slice as a Source. The slice is not copied.
func XMLBytes(name string, b []byte) Source { return &bytesSource{name: name, b: b} }

type bytesSource struct {
	name string
	b    []byte
}

func (s *bytesSource) Name() string { return s.name }

func (s *bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.b)), nil
}

// XMLReader wraps an io.Reader as a one-shot Source. Opening it a second time
// reports the resource as absent.
func XMLReader(name string, r io.Reader) Source { return &readerSource{name: name, r: r} }

type readerSource struct {
	name string
	r    io.Reader
}

func (s *readerSource) Name() string { return s.name }

func (s *readerSource) Open() (io.ReadCloser, error) {
	if s.r == nil {
		return nil, fmt.Errorf("source %q was already consumed", s.name)
	}
	r := s.r
	s.r = nil
	if rc, ok := r.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(r), nil
}
