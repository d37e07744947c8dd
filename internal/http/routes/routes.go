// Package routes builds the HTTP handler of the service: the route table,
// the optional metrics and documentation endpoints, and the middleware
// around them.
package routes

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/http/docs"
	"github.com/aanand-mishra/student-records/internal/http/handlers/student"
	"github.com/aanand-mishra/student-records/internal/http/middleware"
	"github.com/aanand-mishra/student-records/internal/metrics"
	"github.com/aanand-mishra/student-records/internal/storage"
)

// Options toggles the endpoints that are not part of the student API.
type Options struct {
	// Metrics, when not nil, instruments every API route and is served
	// at MetricsPath.
	Metrics     *metrics.Metrics
	MetricsPath string

	// Docs serves /openapi.json and /docs.
	Docs bool
}

// New returns the service's root handler.
//
// Route table:
//
//	GET    /                             -> index
//	GET    /get-student/{student_id}     -> one student, 0 < id < 4
//	GET    /get-by-name                  -> first student with ?name=
//	GET    /get-by-name/{student_id}     -> same lookup, id unused
//	POST   /create-student/{student_id}  -> create
//	PUT    /update-student/{student_id}  -> partial update
//	DELETE /delete-student/{student_id}  -> delete
func New(store storage.Storage, log *slog.Logger, opts Options) http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.Metrics(opts.Metrics, endpoint, h))
	}

	handle("GET /{$}", "index", student.Index())
	handle("GET /get-student/{student_id}", "get_student", student.GetByID(store, log))
	handle("GET /get-by-name", "get_by_name", student.GetByName(store, log))
	handle("GET /get-by-name/{student_id}", "get_by_name_combine", student.GetByNameWithID(store, log))
	handle("POST /create-student/{student_id}", "create_student", student.New(store, log))
	handle("PUT /update-student/{student_id}", "update_student", student.Update(store, log))
	handle("DELETE /delete-student/{student_id}", "delete_student", student.Delete(store, log))

	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, opts.Metrics.Handler())
	}

	if opts.Docs {
		docs.Register(mux)
	}

	return middleware.RequestLogger(log)(mux)
}
