package student

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/types"
)

var errBroken = errors.New("store unavailable")

// brokenStore fails every operation.
type brokenStore struct{}

func (brokenStore) GetStudentByID(int64) (types.Student, error) { return types.Student{}, errBroken }
func (brokenStore) SetStudent(int64, types.Student) error       { return errBroken }
func (brokenStore) DeleteStudentByID(int64) (bool, error)       { return false, errBroken }
func (brokenStore) HasStudent(int64) (bool, error)              { return false, errBroken }
func (brokenStore) GetStudents() ([]types.Student, error)       { return nil, errBroken }
func (brokenStore) CountStudents() (int, error)                 { return 0, errBroken }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(pattern string, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestStorageFailuresAre500(t *testing.T) {
	log := discardLogger()
	store := brokenStore{}

	tests := []struct {
		name    string
		pattern string
		h       http.HandlerFunc
		method  string
		target  string
		body    string
	}{
		{"get", "GET /get-student/{student_id}", GetByID(store, log), http.MethodGet, "/get-student/1", ""},
		{"by name", "GET /get-by-name", GetByName(store, log), http.MethodGet, "/get-by-name?name=a&test=1", ""},
		{"create", "POST /create-student/{student_id}", New(store, log), http.MethodPost, "/create-student/1", `{"name":"a","age":1,"year":"b"}`},
		{"update", "PUT /update-student/{student_id}", Update(store, log), http.MethodPut, "/update-student/1", `{}`},
		{"delete", "DELETE /delete-student/{student_id}", Delete(store, log), http.MethodDelete, "/delete-student/1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.pattern, tt.h, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"detail":"store unavailable"}`, w.Body.String())
		})
	}
}

func TestValidationRunsBeforeStore(t *testing.T) {
	// The broken store would answer 500 if it were reached.
	w := serve("GET /get-student/{student_id}", GetByID(brokenStore{}, discardLogger()), http.MethodGet, "/get-student/4", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestFindByName(t *testing.T) {
	store := memory.New()
	require.NoError(t, storage.Seed(store))
	require.NoError(t, store.SetStudent(5, types.Student{Name: "", Age: 1, Year: "y"}))

	got, ok, err := findByName(store, types.Some("mohit"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(22), got.Age)

	_, ok, err = findByName(store, types.Optional[string]{})
	require.NoError(t, err)
	assert.False(t, ok, "absent name must not match")

	got, ok, err = findByName(store, types.Some(""))
	require.NoError(t, err)
	assert.True(t, ok, "empty name matches an empty stored name")
	assert.Equal(t, int64(1), got.Age)

	_, _, err = findByName(brokenStore{}, types.Some("x"))
	assert.ErrorIs(t, err, errBroken)
}
