package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rogersnm/rptodo/internal/model"
)

var emptyList = []byte("[]")

// FileStore implements Store on a single JSON file holding the full task
// list. Every call opens, uses and closes the file; nothing is cached.
type FileStore struct {
	Path string
}

// compile-time check
var _ Store = (*FileStore)(nil)

func New(path string) *FileStore {
	return &FileStore{Path: path}
}

// Init creates the database file holding an empty list, replacing any
// existing contents.
func (s *FileStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return classify(ErrWrite, s.Path, err)
	}
	if err := os.WriteFile(s.Path, emptyList, 0644); err != nil {
		return classify(ErrWrite, s.Path, err)
	}
	return nil
}

// Load returns every task in file order. On failure the slice is nil and
// the error wraps ErrRead or ErrFormat.
func (s *FileStore) Load() ([]model.Task, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, classify(ErrRead, s.Path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, classify(ErrRead, s.Path, err)
	}
	return decode(s.Path, data)
}

// Save replaces the file with tasks. The data goes to a temp file in the
// same directory which is then renamed over the database, so a failed
// save leaves the previous contents intact.
func (s *FileStore) Save(tasks []model.Task) error {
	data, err := encode(tasks)
	if err != nil {
		return classify(ErrWrite, s.Path, err)
	}
	return s.replace(data)
}

// DeleteAll truncates the collection to an empty list. The database must
// already exist.
func (s *FileStore) DeleteAll() error {
	f, err := os.OpenFile(s.Path, os.O_RDWR, 0)
	if err != nil {
		return classify(ErrRead, s.Path, err)
	}
	defer f.Close()

	if err := f.Truncate(0); err != nil {
		return classify(ErrWrite, s.Path, err)
	}
	if _, err := f.WriteAt(emptyList, 0); err != nil {
		return classify(ErrWrite, s.Path, err)
	}
	if err := f.Sync(); err != nil {
		return classify(ErrWrite, s.Path, err)
	}
	return nil
}

// DeleteByID removes the first task whose ID matches. A missing ID is not
// an error and leaves the file untouched.
func (s *FileStore) DeleteByID(taskID string) error {
	tasks, err := s.Load()
	if err != nil {
		return err
	}
	idx := IndexOf(tasks, taskID)
	if idx < 0 {
		return nil
	}
	return s.Save(append(tasks[:idx], tasks[idx+1:]...))
}

// IndexOf returns the position of the first task with taskID, or -1.
func IndexOf(tasks []model.Task, taskID string) int {
	for i := range tasks {
		if tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// rename is swapped out in tests.
var rename = os.Rename

// replace writes data next to the database and renames it into place. A
// symlinked database path keeps its link; the target file is replaced.
func (s *FileStore) replace(data []byte) error {
	target := s.Path
	if resolved, err := filepath.EvalSymlinks(s.Path); err == nil {
		target = resolved
	}
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return classify(ErrWrite, s.Path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return classify(ErrWrite, s.Path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return classify(ErrWrite, s.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return classify(ErrWrite, s.Path, err)
	}
	perm := os.FileMode(0644)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return classify(ErrWrite, s.Path, err)
	}
	if err := rename(tmpPath, target); err != nil {
		return classify(ErrWrite, s.Path, err)
	}
	return nil
}

func encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return data, nil
}

func decode(path string, data []byte) ([]model.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, classify(ErrFormat, path, fmt.Errorf("empty file"))
	}
	var tasks []model.Task
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&tasks); err != nil {
		return nil, classify(ErrFormat, path, err)
	}
	if dec.More() {
		return nil, classify(ErrFormat, path, fmt.Errorf("trailing data after task list"))
	}
	if tasks == nil {
		// "null" is valid JSON but not a task list.
		return nil, classify(ErrFormat, path, fmt.Errorf("expected a JSON array"))
	}
	return tasks, nil
}
