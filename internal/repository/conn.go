package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sirupsen/logrus"
)

// withConn checks one connection out of the pool for a logical operation
// and always returns it, whichever way fn exits.
func withConn(ctx context.Context, db *sql.DB, fn func(*sql.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

// storeFailure logs the underlying cause and returns the generic error
// that replaces it.
func storeFailure(log logrus.FieldLogger, op string, cause, generic error) error {
	log.WithFields(logrus.Fields{"op": op, "error": cause}).Error("database error")
	return generic
}

// likePattern builds the case-insensitive substring pattern used against
// LOWER(column).
func likePattern(query string) string {
	return "%" + strings.ToLower(query) + "%"
}
