package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mstern/applytrack/pkg/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO users (name, email, password_hash, updated) VALUES (?, ?, ?, ?)`, u.Name, u.Email, u.PasswordHash, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, password_hash, updated FROM users WHERE email = ?`, email)

	var u models.User
	var pw sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &pw, &u.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	u.PasswordHash = pw.String

	return &u, nil
}
