package repofile

import (
	"os"
	"path/filepath"
	"strings"
)

// FileName marks a directory tree as using its own to-do database.
const FileName = ".rptodo-db"

// Find walks up from startDir looking for a .rptodo-db file.
// Returns the database path it names and the directory containing the
// file. Returns ("", "", nil) if not found.
func Find(startDir string) (dbPath, dir string, err error) {
	dir = startDir
	for {
		p, err := Read(dir)
		if err != nil {
			return "", "", err
		}
		if p != "" {
			return p, dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", nil
		}
		dir = parent
	}
}

// Write records dbPath in dir/.rptodo-db.
func Write(dir, dbPath string) error {
	return os.WriteFile(filepath.Join(dir, FileName), []byte(dbPath+"\n"), 0644)
}

// Read returns the database path named in dir/.rptodo-db. Relative paths
// resolve against dir. Returns ("", nil) if the file does not exist.
func Read(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	p := strings.TrimSpace(string(data))
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Join(dir, p), nil
}

// Remove deletes dir/.rptodo-db. A missing file is not an error.
func Remove(dir string) error {
	err := os.Remove(filepath.Join(dir, FileName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
