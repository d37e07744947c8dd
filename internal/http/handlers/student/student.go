// Package student contains the HTTP handlers of the student resource.
//
// Handlers are built by factories that close over their dependencies:
//
//	mux.HandleFunc("GET /get-student/{student_id}", student.GetByID(store, log))
//
// The factory runs once when the route is registered; the returned
// function runs on every request. Each handler binds and validates all of
// its inputs first and answers 422 before touching the store when any of
// them is invalid.
package student

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/http/request"
	"github.com/aanand-mishra/student-records/internal/logger"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

// Payloads of domain outcomes. They are answered with 200, except
// notFoundDetail which goes out as a 404.
const (
	notFoundDetail = "Student not found"
	msgExists      = "Student exists"
	msgNoUpdate    = "Students does not exits"
	msgNoDelete    = "Student does not exists"
	msgDeleted     = "Student deleted successfully"
	msgNoMatch     = "Not found"
)

// getStudentRules bounds the id accepted by GetByID. The bound is fixed and
// does not follow the store's contents.
const getStudentRules = "gt=0,lt=4"

// createRequest is the body of a create. Pointers tell a missing field
// apart from a zero value.
type createRequest struct {
	Name *string `json:"name" validate:"required"`
	Age  *int64  `json:"age"  validate:"required"`
	Year *string `json:"year" validate:"required"`
}

// Index handles GET /.
//
//	{ "name": "First Data" }
func Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"name": "First Data"})
	}
}

// GetByID handles GET /get-student/{student_id}.
//
// student_id must satisfy 0 < id < 4 (422 otherwise). A missing record is
// a 404 with {"detail": "Student not found"}.
func GetByID(store storage.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := request.New(r)
		id := in.PathInt("student_id", getStudentRules)
		if in.Reject(w) {
			return
		}

		log := logger.FromContext(r.Context(), log)
		log.Info("getting a student", slog.Int64("id", id))

		student, err := store.GetStudentByID(id)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.NotFound(notFoundDetail))
			return
		}
		if err != nil {
			internalError(w, log, "error getting student", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// GetByName handles GET /get-by-name?name=&test=.
//
// test is a required integer that the lookup does not use. The first
// record in store order whose name equals name is returned; without a
// match the answer is {"Data": "Not found"} with 200.
func GetByName(store storage.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := request.New(r)
		name := in.QueryString("name")
		in.QueryInt("test")
		if in.Reject(w) {
			return
		}

		lookupByName(w, r, store, log, name)
	}
}

// GetByNameWithID handles GET /get-by-name/{student_id}?name=&test=.
//
// student_id must be an integer but takes no part in the lookup, which is
// the same scan as GetByName.
func GetByNameWithID(store storage.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := request.New(r)
		in.PathInt("student_id", "")
		name := in.QueryString("name")
		in.QueryInt("test")
		if in.Reject(w) {
			return
		}

		lookupByName(w, r, store, log, name)
	}
}

func lookupByName(w http.ResponseWriter, r *http.Request, store storage.Storage, log *slog.Logger, name types.Optional[string]) {
	log = logger.FromContext(r.Context(), log)
	log.Info("looking up a student by name", slog.String("name", name.Value), slog.Bool("name_present", name.Present))

	student, ok, err := findByName(store, name)
	if err != nil {
		internalError(w, log, "error scanning students", err)
		return
	}
	if !ok {
		response.WriteJSON(w, http.StatusOK, map[string]string{"Data": msgNoMatch})
		return
	}
	response.WriteJSON(w, http.StatusOK, student)
}

// findByName returns the first record whose name equals name. An absent
// name matches nothing, since no stored name is null.
func findByName(store storage.Storage, name types.Optional[string]) (types.Student, bool, error) {
	if !name.IsSet() {
		return types.Student{}, false, nil
	}

	students, err := store.GetStudents()
	if err != nil {
		return types.Student{}, false, err
	}
	for _, s := range students {
		if s.Name == name.Value {
			return s, true, nil
		}
	}
	return types.Student{}, false, nil
}

// New handles POST /create-student/{student_id}.
//
// Request body (JSON), all fields required:
//
//	{ "name": "riya", "age": 19, "year": "year 27" }
//
// An existing id is answered with {"Error": "Student exists"} and leaves
// the stored record untouched; otherwise the stored record is returned.
func New(store storage.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := request.New(r)
		id := in.PathInt("student_id", "")
		body := in.Body()
		req := createRequest{
			Name: request.Field[string](in, body, "name").Ptr(),
			Age:  request.Field[int64](in, body, "age").Ptr(),
			Year: request.Field[string](in, body, "year").Ptr(),
		}
		in.Struct(req)
		if in.Reject(w) {
			return
		}

		log := logger.FromContext(r.Context(), log)
		log.Info("creating a student", slog.Int64("id", id))

		exists, err := store.HasStudent(id)
		if err != nil {
			internalError(w, log, "error checking student", err)
			return
		}
		if exists {
			response.WriteJSON(w, http.StatusOK, map[string]string{"Error": msgExists})
			return
		}

		student := types.Student{Name: *req.Name, Age: *req.Age, Year: *req.Year}
		if err := store.SetStudent(id, student); err != nil {
			internalError(w, log, "error creating student", err)
			return
		}

		log.Info("student created", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, student)
	}
}

// Update handles PUT /update-student/{student_id}.
//
// Every body field is optional; only the fields present (and not null)
// are written. The full updated record is returned. An unknown id is
// answered with {"Error": "Students does not exits"}.
func Update(store storage.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := request.New(r)
		id := in.PathInt("student_id", "")
		body := in.Body()
		update := types.StudentUpdate{
			Name: request.Field[string](in, body, "name"),
			Age:  request.Field[int64](in, body, "age"),
			Year: request.Field[string](in, body, "year"),
		}
		if in.Reject(w) {
			return
		}

		log := logger.FromContext(r.Context(), log)
		log.Info("updating a student", slog.Int64("id", id))

		current, err := store.GetStudentByID(id)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusOK, map[string]string{"Error": msgNoUpdate})
			return
		}
		if err != nil {
			internalError(w, log, "error getting student", err)
			return
		}

		updated := update.Apply(current)
		if err := store.SetStudent(id, updated); err != nil {
			internalError(w, log, "error updating student", err)
			return
		}

		log.Info("student updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /delete-student/{student_id}.
//
//	{ "Message": "Student deleted successfully" }
//
// Deleting an unknown id is answered with {"Error": "Student does not exists"}
// every time.
func Delete(store storage.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := request.New(r)
		id := in.PathInt("student_id", "")
		if in.Reject(w) {
			return
		}

		log := logger.FromContext(r.Context(), log)
		log.Info("deleting a student", slog.Int64("id", id))

		existed, err := store.DeleteStudentByID(id)
		if err != nil {
			internalError(w, log, "error deleting student", err)
			return
		}
		if !existed {
			response.WriteJSON(w, http.StatusOK, map[string]string{"Error": msgNoDelete})
			return
		}

		log.Info("student deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"Message": msgDeleted})
	}
}

func internalError(w http.ResponseWriter, log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}
