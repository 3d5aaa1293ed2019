package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// ValidationError reports the input fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, ", ")
}

// StorageError wraps a persistence failure. Any transaction in flight has
// been rolled back by the time it is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// IntegrityError signals a show referencing a missing venue or artist. The
// delete cascade should make this impossible, so it is a defect rather than
// bad user input.
type IntegrityError struct {
	ShowID  int64
	Missing string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("show %d references missing %s", e.ShowID, e.Missing)
}

// Store provides booking persistence backed by Postgres.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// escapeLike neutralizes LIKE metacharacters so search terms match literally.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseStartTime accepts the timestamp formats booking forms submit and
// normalizes the result to UTC.
func parseStartTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized start time %q", raw)
}

func genresOrEmpty(genres []string) []string {
	if genres == nil {
		return []string{}
	}
	return genres
}
