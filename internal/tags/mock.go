package tags

import (
	"fmt"
	"path/filepath"
)

// Mock is an in-memory Store for tests.
type Mock struct {
	files      map[string]*Fields
	readErrs   map[string]error
	writeErrs  map[string]error
	writeCalls []string
}

// NewMock creates an empty mock store.
func NewMock() *Mock {
	return &Mock{
		files:     make(map[string]*Fields),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

// Compile-time check that Mock implements Store.
var _ Store = (*Mock)(nil)

// Add registers a decodable file. The mock keeps its own copy of f.
func (m *Mock) Add(path string, f *Fields) {
	m.files[path] = f.Clone()
}

// Remove forgets a file, so later reads and writes fail as if it were deleted.
func (m *Mock) Remove(path string) {
	delete(m.files, path)
}

// SetReadError makes reads of path fail with err.
func (m *Mock) SetReadError(path string, err error) {
	m.readErrs[path] = err
}

// SetWriteError makes writes to path fail with err. A nil err clears it.
func (m *Mock) SetWriteError(path string, err error) {
	if err == nil {
		delete(m.writeErrs, path)
		return
	}
	m.writeErrs[path] = err
}

func (m *Mock) Read(path string) (*Fields, error) {
	if err, ok := m.readErrs[path]; ok {
		return nil, err
	}
	f, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNotAudio)
	}
	return f.Clone(), nil
}

func (m *Mock) Write(path string, f *Fields) error {
	m.writeCalls = append(m.writeCalls, path)
	if err, ok := m.writeErrs[path]; ok {
		return &WriteError{Path: path, Err: err}
	}
	if _, ok := m.files[path]; !ok {
		return &WriteError{Path: path, Err: fmt.Errorf("file not found: %s", path)}
	}
	m.files[path] = f.Clone()
	return nil
}

// Stored returns a copy of the fields last written for path, or nil.
func (m *Mock) Stored(path string) *Fields {
	f, ok := m.files[path]
	if !ok {
		return nil
	}
	return f.Clone()
}

// WriteCalls returns the paths passed to Write, in call order.
func (m *Mock) WriteCalls() []string {
	return m.writeCalls
}

// ResetCalls clears the recorded write calls.
func (m *Mock) ResetCalls() {
	m.writeCalls = nil
}
