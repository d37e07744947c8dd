// Package storage defines the Storage interface: the contract a record
// store backend must satisfy to work with this application.
//
// Handlers depend only on this interface, so the in-memory store and the
// SQLite store are interchangeable and tests can run against either.
package storage

import (
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-records/internal/types"
)

// ErrNotFound is returned by GetStudentByID when no record has the given id.
var ErrNotFound = errors.New("student not found")

// Storage is the record store contract.
type Storage interface {
	// GetStudentByID returns the record stored under id, or ErrNotFound.
	GetStudentByID(id int64) (types.Student, error)

	// SetStudent inserts or overwrites the record stored under id.
	// Overwriting keeps the record's position in iteration order.
	SetStudent(id int64, student types.Student) error

	// DeleteStudentByID removes the record and reports whether it existed.
	DeleteStudentByID(id int64) (bool, error)

	// HasStudent reports whether a record is stored under id.
	HasStudent(id int64) (bool, error)

	// GetStudents returns every record in insertion order.
	// Returns an empty slice (not nil) if the store is empty.
	GetStudents() ([]types.Student, error)

	// CountStudents returns the number of stored records.
	CountStudents() (int, error)
}

// SeedStudents are the records every store starts with.
var SeedStudents = []struct {
	ID      int64
	Student types.Student
}{
	{ID: 1, Student: types.Student{Name: "anurag adarsh", Age: 20, Year: "year 26"}},
	{ID: 2, Student: types.Student{Name: "mohit", Age: 22, Year: "year 26"}},
}

// Seed writes SeedStudents into s.
func Seed(s Storage) error {
	for _, rec := range SeedStudents {
		if err := s.SetStudent(rec.ID, rec.Student); err != nil {
			return fmt.Errorf("seed student %d: %w", rec.ID, err)
		}
	}
	return nil
}
