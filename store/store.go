package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/ZacxDev/commands-site/content"
)

// DataStore persists the content document as a single JSON file.
type DataStore struct {
	path string
}

func New(path string) *DataStore {
	return &DataStore{path: path}
}

func (s *DataStore) Path() string {
	return s.path
}

// Read returns the stored record. A missing, unreadable or non-object file
// reads as an empty record.
func (s *DataStore) Read() gjson.Result {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return content.Parse(nil)
	}
	return content.Parse(data)
}

// Write replaces the file with payload encoded as indented JSON. Writers are
// serialized through an exclusive lock on a sidecar file, and the content is
// swapped in with a rename so readers never see a partial file.
func (s *DataStore) Write(payload any) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o775); err != nil {
		return errors.Wrapf(err, "create data directory %s", dir)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	// Encode terminates the document with a newline.
	if err := enc.Encode(payload); err != nil {
		return errors.Wrap(err, "encode payload")
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return errors.Wrapf(err, "lock %s", s.path)
	}
	defer lock.Unlock()

	if err := atomic.WriteFile(s.path, &buf); err != nil {
		return errors.Wrapf(err, "write %s", s.path)
	}
	return nil
}

// LastModified formats the file's modification time with layout, or the
// current time when the file cannot be inspected.
func (s *DataStore) LastModified(layout string) string {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Now().Format(layout)
	}
	return info.ModTime().Format(layout)
}
