package todo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogersnm/rptodo/internal/logging"
	"github.com/rogersnm/rptodo/internal/model"
	"github.com/rogersnm/rptodo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Init() error {
	return m.Called().Error(0)
}

func (m *mockStore) Load() ([]model.Task, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *mockStore) Save(tasks []model.Task) error {
	return m.Called(tasks).Error(0)
}

func (m *mockStore) DeleteAll() error {
	return m.Called().Error(0)
}

func (m *mockStore) DeleteByID(taskID string) error {
	return m.Called(taskID).Error(0)
}

func newTestService(t *testing.T) (*Service, *store.FileStore) {
	t.Helper()
	fs := store.New(filepath.Join(t.TempDir(), "todo.json"))
	require.NoError(t, fs.Init())
	return New(fs, logging.Discard()), fs
}

func TestCreateTask_WashTheCar(t *testing.T) {
	svc, fs := newTestService(t)

	task, err := svc.CreateTask([]string{"Wash", "the", "car"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "Wash the car.", task.Description)
	assert.Equal(t, 2, task.Priority)
	assert.False(t, task.Done)
	assert.NotEmpty(t, task.ID)

	tasks, err := fs.Load()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task, tasks[0])
}

func TestCreateTask_AppendsToExisting(t *testing.T) {
	svc, fs := newTestService(t)
	contents := `[{"Description": "Get some milk.", "Priority": 2, "Done": false}]`
	require.NoError(t, os.WriteFile(fs.Path, []byte(contents), 0644))

	task, err := svc.CreateTask([]string{"Clean", "the", "house"}, 1)
	require.NoError(t, err)

	tasks, err := fs.Load()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Get some milk.", tasks[0].Description)
	assert.Equal(t, task, tasks[1])
}

func TestCreateTask_SinglePeriod(t *testing.T) {
	svc, _ := newTestService(t)
	inputs := [][]string{
		{"Wash the car"},
		{"Wash the car."},
		{"Wash", "the", "car."},
		{"Call", "mom"},
	}
	for p := model.MinPriority; p <= model.MaxPriority; p++ {
		for _, in := range inputs {
			task, err := svc.CreateTask(in, p)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(task.Description, "."))
			assert.False(t, strings.HasSuffix(task.Description, ".."), "got %q", task.Description)
			assert.Equal(t, p, task.Priority)
		}
	}
}

func TestCreateTask_UniqueIDs(t *testing.T) {
	svc, fs := newTestService(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		task, err := svc.CreateTask([]string{fmt.Sprintf("task %d", i)}, 2)
		require.NoError(t, err)
		assert.False(t, seen[task.ID], "collision: %s", task.ID)
		seen[task.ID] = true
	}
	tasks, err := fs.Load()
	require.NoError(t, err)
	assert.Len(t, tasks, 50)
}

func TestCreateTask_EmptyDescription(t *testing.T) {
	m := new(mockStore)
	svc := New(m, logging.Discard())

	_, err := svc.CreateTask([]string{" ", ""}, 2)
	assert.ErrorIs(t, err, ErrEmptyDescription)
	m.AssertNotCalled(t, "Load")
	m.AssertNotCalled(t, "Save", mock.Anything)
}

func TestCreateTask_ReadErrorReturnsTask(t *testing.T) {
	m := new(mockStore)
	readErr := fmt.Errorf("%w: boom", store.ErrRead)
	m.On("Load").Return(nil, readErr)
	svc := New(m, logging.Discard())

	task, err := svc.CreateTask([]string{"Buy", "bread"}, 3)
	assert.ErrorIs(t, err, store.ErrRead)
	assert.Equal(t, "Buy bread.", task.Description)
	assert.Equal(t, 3, task.Priority)
	assert.NotEmpty(t, task.ID)
	m.AssertNotCalled(t, "Save", mock.Anything)
	m.AssertExpectations(t)
}

func TestCreateTask_FormatErrorDoesNotOverwrite(t *testing.T) {
	svc, fs := newTestService(t)
	require.NoError(t, os.WriteFile(fs.Path, []byte("{{broken"), 0644))

	task, err := svc.CreateTask([]string{"Buy", "bread"}, 2)
	assert.ErrorIs(t, err, store.ErrFormat)
	assert.Equal(t, "Buy bread.", task.Description)

	data, err := os.ReadFile(fs.Path)
	require.NoError(t, err)
	assert.Equal(t, "{{broken", string(data))
}

func TestCreateTask_WriteError(t *testing.T) {
	m := new(mockStore)
	m.On("Load").Return([]model.Task{}, nil)
	m.On("Save", mock.AnythingOfType("[]model.Task")).Return(fmt.Errorf("%w: disk full", store.ErrWrite))
	svc := New(m, logging.Discard())

	task, err := svc.CreateTask([]string{"Buy", "bread"}, 2)
	assert.ErrorIs(t, err, store.ErrWrite)
	assert.Equal(t, "Buy bread.", task.Description)
	m.AssertExpectations(t)
}

func TestCreateTask_IDGeneratorFailure(t *testing.T) {
	m := new(mockStore)
	svc := New(m, logging.Discard())
	svc.newID = func() (string, error) { return "", errors.New("no entropy") }

	_, err := svc.CreateTask([]string{"x"}, 2)
	assert.EqualError(t, err, "no entropy")
	m.AssertNotCalled(t, "Load")
}

func TestListAll(t *testing.T) {
	svc, _ := newTestService(t)
	tasks, err := svc.ListAll()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	a, _ := svc.CreateTask([]string{"A"}, 1)
	b, _ := svc.CreateTask([]string{"B"}, 2)

	tasks, err = svc.ListAll()
	require.NoError(t, err)
	assert.Equal(t, []model.Task{a, b}, tasks)
}

func TestListAll_Errors(t *testing.T) {
	svc := New(store.New(filepath.Join(t.TempDir(), "nope.json")), logging.Discard())
	tasks, err := svc.ListAll()
	assert.ErrorIs(t, err, store.ErrRead)
	assert.Empty(t, tasks)

	svc, fs := newTestService(t)
	require.NoError(t, os.WriteFile(fs.Path, []byte("bad"), 0644))
	tasks, err = svc.ListAll()
	assert.ErrorIs(t, err, store.ErrFormat)
	assert.Empty(t, tasks)
}

func TestDeleteAll(t *testing.T) {
	svc, _ := newTestService(t)
	svc.CreateTask([]string{"A"}, 1)
	svc.CreateTask([]string{"B"}, 2)

	require.NoError(t, svc.DeleteAll())

	tasks, err := svc.ListAll()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDeleteAll_PassesThroughError(t *testing.T) {
	m := new(mockStore)
	m.On("DeleteAll").Return(fmt.Errorf("%w: gone", store.ErrRead))
	svc := New(m, logging.Discard())

	assert.ErrorIs(t, svc.DeleteAll(), store.ErrRead)
	m.AssertExpectations(t)
}

func TestDeleteByID(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.CreateTask([]string{"A"}, 1)
	b, _ := svc.CreateTask([]string{"B"}, 2)
	c, _ := svc.CreateTask([]string{"C"}, 3)

	require.NoError(t, svc.DeleteByID(b.ID))

	tasks, err := svc.ListAll()
	require.NoError(t, err)
	assert.Equal(t, []model.Task{a, c}, tasks)
}

func TestDeleteByID_MissingIsSuccess(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.CreateTask([]string{"A"}, 1)

	require.NoError(t, svc.DeleteByID("99999999-9999-4999-8999-999999999999"))

	tasks, err := svc.ListAll()
	require.NoError(t, err)
	assert.Equal(t, []model.Task{a}, tasks)
}

func TestDeleteByID_EmptyID(t *testing.T) {
	m := new(mockStore)
	svc := New(m, logging.Discard())
	assert.ErrorIs(t, svc.DeleteByID(""), ErrEmptyID)
	m.AssertNotCalled(t, "DeleteByID", mock.Anything)
}

func TestGet(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.CreateTask([]string{"A"}, 1)

	got, err := svc.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = svc.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComplete(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.CreateTask([]string{"A"}, 1)
	b, _ := svc.CreateTask([]string{"B"}, 2)

	done, err := svc.Complete(b.ID)
	require.NoError(t, err)
	assert.True(t, done.Done)

	tasks, err := svc.ListAll()
	require.NoError(t, err)
	assert.False(t, tasks[0].Done)
	assert.Equal(t, a, tasks[0])
	assert.True(t, tasks[1].Done)
}

func TestComplete_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Complete("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.CreateTask([]string{"A"}, 1)

	desc := "Something else"
	pri := 3
	got, err := svc.Update(a.ID, TaskUpdate{Description: &desc, Priority: &pri})
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "Something else.", got.Description)
	assert.Equal(t, 3, got.Priority)

	stored, err := svc.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestUpdate_Invalid(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.CreateTask([]string{"A"}, 1)

	pri := 7
	_, err := svc.Update(a.ID, TaskUpdate{Priority: &pri})
	assert.Error(t, err)

	blank := "  "
	_, err = svc.Update(a.ID, TaskUpdate{Description: &blank})
	assert.ErrorIs(t, err, ErrEmptyDescription)

	_, err = svc.Update("", TaskUpdate{})
	assert.ErrorIs(t, err, ErrEmptyID)

	stored, err := svc.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, stored)
}
