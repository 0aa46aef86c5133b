// Package todo implements the task operations exposed to the CLI on top of
// a whole-collection record store.
package todo

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/rogersnm/rptodo/internal/id"
	"github.com/rogersnm/rptodo/internal/model"
	"github.com/rogersnm/rptodo/internal/store"
)

var (
	ErrEmptyDescription = errors.New("task description is empty")
	ErrEmptyID          = errors.New("task id is empty")
	ErrNotFound         = errors.New("task not found")
)

// TaskUpdate holds the fields to change; nil fields are left alone.
type TaskUpdate struct {
	Description *string
	Priority    *int
	Done        *bool
}

// Service is stateless: every call reads the collection fresh from the
// store.
type Service struct {
	store  store.Store
	logger *log.Logger
	newID  func() (string, error)
}

func New(st store.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{store: st, logger: logger, newID: id.New}
}

// CreateTask builds a task from the description words and appends it. The
// task is returned even when it could not be saved, so callers can report
// what was attempted.
func (s *Service) CreateTask(parts []string, priority int) (model.Task, error) {
	t := model.Task{
		Description: model.NormalizeDescription(parts),
		Priority:    priority,
	}
	if t.Description == "" {
		return t, ErrEmptyDescription
	}
	tid, err := s.newID()
	if err != nil {
		return t, err
	}
	t.ID = tid

	tasks, err := s.store.Load()
	if err != nil {
		s.logger.Debug("task not added", "id", t.ID, "err", err)
		return t, err
	}
	tasks = append(tasks, t)
	if err := s.store.Save(tasks); err != nil {
		return t, err
	}
	s.logger.Debug("task added", "id", t.ID, "count", len(tasks))
	return t, nil
}

func (s *Service) ListAll() ([]model.Task, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	s.logger.Debug("tasks loaded", "count", len(tasks))
	return tasks, nil
}

func (s *Service) DeleteAll() error {
	if err := s.store.DeleteAll(); err != nil {
		return err
	}
	s.logger.Debug("all tasks deleted")
	return nil
}

// DeleteByID succeeds whether or not the task exists.
func (s *Service) DeleteByID(taskID string) error {
	if taskID == "" {
		return ErrEmptyID
	}
	if err := s.store.DeleteByID(taskID); err != nil {
		return err
	}
	s.logger.Debug("delete by id", "id", taskID)
	return nil
}

// Get returns the task with taskID, or ErrNotFound.
func (s *Service) Get(taskID string) (model.Task, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return model.Task{}, err
	}
	idx := store.IndexOf(tasks, taskID)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrNotFound, taskID)
	}
	return tasks[idx], nil
}

// Complete marks a task done.
func (s *Service) Complete(taskID string) (model.Task, error) {
	done := true
	return s.Update(taskID, TaskUpdate{Done: &done})
}

// Update applies upd to the task with taskID and saves the collection.
func (s *Service) Update(taskID string, upd TaskUpdate) (model.Task, error) {
	if taskID == "" {
		return model.Task{}, ErrEmptyID
	}
	tasks, err := s.store.Load()
	if err != nil {
		return model.Task{}, err
	}
	idx := store.IndexOf(tasks, taskID)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrNotFound, taskID)
	}

	t := tasks[idx]
	if upd.Description != nil {
		t.Description = model.NormalizeDescription([]string{*upd.Description})
		if t.Description == "" {
			return model.Task{}, ErrEmptyDescription
		}
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.Done != nil {
		t.Done = *upd.Done
	}
	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}

	tasks[idx] = t
	if err := s.store.Save(tasks); err != nil {
		return model.Task{}, err
	}
	s.logger.Debug("task updated", "id", t.ID)
	return t, nil
}
