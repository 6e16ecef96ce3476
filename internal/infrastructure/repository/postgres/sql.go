package postgres

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var errConstraintViolation = crerr.New("constraint violation")

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// wrapDBError annotates driver errors with the violated constraint so the
// log line names it. Callers still see a plain error.
func wrapDBError(err error, op string) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation, pgForeignKeyViolation:
			return crerr.Wrapf(crerr.Mark(err, errConstraintViolation), "%s: constraint=%s", op, pqErr.Constraint)
		}
	}
	return crerr.Wrap(err, op)
}

func isConstraintViolation(err error) bool {
	return crerr.Is(err, errConstraintViolation)
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func nullableString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func nullStringValue(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

// nullPoints collapses a missing points value to zero.
func nullPoints(value sql.NullInt64) int {
	if !value.Valid {
		return 0
	}
	return int(value.Int64)
}

func timeOrNow(value time.Time) time.Time {
	if value.IsZero() {
		return time.Now().UTC()
	}
	return value
}
