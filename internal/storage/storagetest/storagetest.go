// Package storagetest holds the behaviour every storage.Storage backend
// must share. Backend packages call Run from their own tests.
package storagetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Run exercises a fresh store returned by newStore in each subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	t.Run("empty store", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetStudentByID(1)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		ok, err := s.HasStudent(1)
		require.NoError(t, err)
		assert.False(t, ok)

		students, err := s.GetStudents()
		require.NoError(t, err)
		assert.NotNil(t, students)
		assert.Empty(t, students)

		n, err := s.CountStudents()
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("seed", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, storage.Seed(s))

		got, err := s.GetStudentByID(2)
		require.NoError(t, err)
		assert.Equal(t, types.Student{Name: "mohit", Age: 22, Year: "year 26"}, got)

		n, err := s.CountStudents()
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		want := types.Student{Name: "riya", Age: 19, Year: "year 27"}
		require.NoError(t, s.SetStudent(-7, want))

		got, err := s.GetStudentByID(-7)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		ok, err := s.HasStudent(-7)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("overwrite keeps position", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, storage.Seed(s))
		require.NoError(t, s.SetStudent(1, types.Student{Name: "changed", Age: 1, Year: "y"}))

		students, err := s.GetStudents()
		require.NoError(t, err)
		require.Len(t, students, 2)
		assert.Equal(t, "changed", students[0].Name)
		assert.Equal(t, "mohit", students[1].Name)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, storage.Seed(s))

		existed, err := s.DeleteStudentByID(2)
		require.NoError(t, err)
		assert.True(t, existed)

		ok, err := s.HasStudent(2)
		require.NoError(t, err)
		assert.False(t, ok)

		existed, err = s.DeleteStudentByID(2)
		require.NoError(t, err)
		assert.False(t, existed)

		n, err := s.CountStudents()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("reinsert moves to end", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, storage.Seed(s))
		_, err := s.DeleteStudentByID(1)
		require.NoError(t, err)
		require.NoError(t, s.SetStudent(1, types.Student{Name: "back", Age: 30, Year: "y"}))

		students, err := s.GetStudents()
		require.NoError(t, err)
		require.Len(t, students, 2)
		assert.Equal(t, "mohit", students[0].Name)
		assert.Equal(t, "back", students[1].Name)
	})
}
