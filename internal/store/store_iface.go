package store

import "github.com/rogersnm/rptodo/internal/model"

// Store is the whole-collection record store. FileStore implements it
// over a single JSON file.
type Store interface {
	Init() error
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
	DeleteAll() error
	DeleteByID(taskID string) error
}
