// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The default DSN is a shared in-memory database, so records still live
// only as long as the process. The blank import below registers the
// sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultDSN keeps the database in memory for the lifetime of the process.
const DefaultDSN = "file::memory:?cache=shared"

// SQLite is the SQLite implementation of storage.Storage.
type SQLite struct {
	Db *sql.DB
}

// New opens the database at dsn (DefaultDSN when empty) and creates the
// students table if it does not already exist.
//
// The pool is limited to one connection: every connection to ":memory:"
// would otherwise see its own empty database, and it also makes each
// statement atomic with respect to the others.
func New(dsn string) (*SQLite, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	// seq records insertion order; id is the caller-supplied key.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			seq  INTEGER PRIMARY KEY AUTOINCREMENT,
			id   INTEGER NOT NULL UNIQUE,
			name TEXT    NOT NULL,
			age  INTEGER NOT NULL,
			year TEXT    NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

func (s *SQLite) GetStudentByID(id int64) (types.Student, error) {
	var student types.Student
	err := s.Db.QueryRow(
		"SELECT name, age, year FROM students WHERE id = ? LIMIT 1", id,
	).Scan(&student.Name, &student.Age, &student.Year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.ErrNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}
	return student, nil
}

// SetStudent upserts on id, so an overwrite keeps the original seq.
func (s *SQLite) SetStudent(id int64, student types.Student) error {
	_, err := s.Db.Exec(`
		INSERT INTO students (id, name, age, year) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			age  = excluded.age,
			year = excluded.year
	`, id, student.Name, student.Age, student.Year)
	if err != nil {
		return fmt.Errorf("SetStudent: exec: %w", err)
	}
	return nil
}

func (s *SQLite) DeleteStudentByID(id int64) (bool, error) {
	result, err := s.Db.Exec("DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *SQLite) HasStudent(id int64) (bool, error) {
	var exists bool
	err := s.Db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM students WHERE id = ?)", id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("HasStudent: scan: %w", err)
	}
	return exists, nil
}

func (s *SQLite) GetStudents() ([]types.Student, error) {
	rows, err := s.Db.Query("SELECT name, age, year FROM students ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var student types.Student
		if err := rows.Scan(&student.Name, &student.Age, &student.Year); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

func (s *SQLite) CountStudents() (int, error) {
	var n int
	if err := s.Db.QueryRow("SELECT COUNT(*) FROM students").Scan(&n); err != nil {
		return 0, fmt.Errorf("CountStudents: scan: %w", err)
	}
	return n, nil
}
