// Package record binds music files to their decoded tag fields.
package record

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/llehouerou/tagedit/internal/logging"
	"github.com/llehouerou/tagedit/internal/tags"
)

var (
	// ErrDirectoryRead reports that a directory could not be listed.
	ErrDirectoryRead = errors.New("cannot read directory")
	// ErrNotFile reports a path that is not a regular file.
	ErrNotFile = errors.New("not a file")
)

// Record is one file and its editable fields. Size and Info are display-only.
type Record struct {
	Path   string
	Fields *tags.Fields
	Size   int64
	Info   *tags.AudioInfo
}

// Name returns the file name of the record.
func (r *Record) Name() string {
	return filepath.Base(r.Path)
}

// Load reads the file at path through store. The returned error wraps
// tags.ErrNotAudio when the file cannot be decoded.
func Load(store tags.Store, path string) (*Record, error) {
	f, err := store.Read(path)
	if err != nil {
		return nil, err
	}
	r := &Record{Path: path, Fields: f}
	if info, err := os.Stat(path); err == nil {
		r.Size = info.Size()
	}
	return r, nil
}

// Loader builds record sets from directories and explicit paths.
type Loader struct {
	Store tags.Store
	// NaturalSort orders directory entries so "2.mp3" precedes "10.mp3".
	NaturalSort bool
	// AudioInfo reads stream properties for each loaded file.
	AudioInfo bool
	// Skipped is called for every path left out of an explicit path list.
	Skipped func(path string, err error)
	Log     logrus.FieldLogger
}

func (l *Loader) logger() logrus.FieldLogger {
	return logging.Or(l.Log)
}

// LoadFile loads a single regular file.
func (l *Loader) LoadFile(path string) (*Record, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFile)
	}
	r, err := Load(l.Store, path)
	if err != nil {
		return nil, err
	}
	l.attachInfo(r)
	return r, nil
}

// LoadDir loads every non-directory entry of dir the store can decode.
// Undecodable files are skipped; only an unreadable directory is an error.
func (l *Loader) LoadDir(dir string) ([]*Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDirectoryRead, dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	l.sortNames(names)

	records := make([]*Record, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		r, err := Load(l.Store, path)
		if err != nil {
			l.logger().WithError(err).WithField("path", path).Debug("skip undecodable file")
			continue
		}
		l.attachInfo(r)
		records = append(records, r)
	}
	return records, nil
}

// LoadPaths loads each path in order, reporting and skipping those that are
// not files or cannot be decoded.
func (l *Loader) LoadPaths(paths []string) []*Record {
	records := make([]*Record, 0, len(paths))
	for _, path := range paths {
		r, err := l.LoadFile(path)
		if err != nil {
			l.logger().WithError(err).WithField("path", path).Info("skip path")
			if l.Skipped != nil {
				l.Skipped(path, err)
			}
			continue
		}
		records = append(records, r)
	}
	return records
}

func (l *Loader) sortNames(names []string) {
	if !l.NaturalSort {
		slices.Sort(names)
		return
	}
	collate.New(language.Und, collate.Numeric).SortStrings(names)
}

func (l *Loader) attachInfo(r *Record) {
	if !l.AudioInfo {
		return
	}
	info, err := tags.ReadAudioInfo(r.Path)
	if err != nil {
		l.logger().WithError(err).WithField("path", r.Path).Warn("read audio info")
		return
	}
	r.Info = info
}
