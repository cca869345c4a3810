package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/invoice-dashboard/internal/model"
)

// UserRepo looks up dashboard operators.  It is used only by
// authentication.
type UserRepo struct {
	db  *sql.DB
	log logrus.FieldLogger
}

func NewUserRepo(db *sql.DB, log logrus.FieldLogger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// GetByEmail fetches the user with the given email.  Uniqueness of email
// is a store constraint; at most one row is read.  ErrUserNotFound is
// returned when there is no such user.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	const q = `SELECT id, name, email, password FROM users WHERE email = ? LIMIT 1`
	email = strings.TrimSpace(email)
	var u model.User
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, storeFailure(r.log, "get_user", err, ErrFetchUser)
	}
	return u, nil
}
