// Package memory provides the default, process-lifetime implementation of
// storage.Storage: a map from id to record plus a slice remembering the
// insertion order, so name scans see records in the order they were added.
package memory

import (
	"slices"
	"sync"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Memory is an insertion-ordered in-memory record store. Each method is
// atomic; sequences of calls are not.
type Memory struct {
	mu    sync.RWMutex
	data  map[int64]types.Student
	order []int64
}

// New returns an empty store.
func New() *Memory {
	return &Memory{data: make(map[int64]types.Student)}
}

func (m *Memory) GetStudentByID(id int64) (types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	student, ok := m.data[id]
	if !ok {
		return types.Student{}, storage.ErrNotFound
	}
	return student, nil
}

func (m *Memory) SetStudent(id int64, student types.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[id]; !ok {
		m.order = append(m.order, id)
	}
	m.data[id] = student
	return nil
}

func (m *Memory) DeleteStudentByID(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[id]; !ok {
		return false, nil
	}
	delete(m.data, id)
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return true, nil
}

func (m *Memory) HasStudent(id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.data[id]
	return ok, nil
}

func (m *Memory) GetStudents() ([]types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	students := make([]types.Student, 0, len(m.order))
	for _, id := range m.order {
		students = append(students, m.data[id])
	}
	return students, nil
}

func (m *Memory) CountStudents() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data), nil
}
