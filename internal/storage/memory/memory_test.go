package memory_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/storage/storagetest"
	"github.com/aanand-mishra/student-records/internal/types"
)

func TestMemory(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return memory.New()
	})
}

func TestMemoryConcurrentWrites(t *testing.T) {
	s := memory.New()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = s.SetStudent(id, types.Student{Name: "n", Age: id, Year: "y"})
			_, _ = s.GetStudents()
		}(i)
	}
	wg.Wait()

	n, err := s.CountStudents()
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}
