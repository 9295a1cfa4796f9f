package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tabelhq/tabel/internal/domain"
)

// SQLiteIdentityRepo implements IdentityRepo using a SQLite database.
type SQLiteIdentityRepo struct {
	db *sql.DB
}

// NewSQLiteIdentityRepo creates a new SQLiteIdentityRepo.
func NewSQLiteIdentityRepo(db *sql.DB) *SQLiteIdentityRepo {
	return &SQLiteIdentityRepo{db: db}
}

func (r *SQLiteIdentityRepo) Save(ctx context.Context, server string, u domain.User) error {
	query := `INSERT INTO identities (server, user_id, email, role, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(server) DO UPDATE SET
			user_id = excluded.user_id,
			email = excluded.email,
			role = excluded.role,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		server,
		u.ID,
		u.Email,
		string(u.Role),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving identity: %w", err)
	}
	return nil
}

func (r *SQLiteIdentityRepo) Get(ctx context.Context, server string) (*domain.User, error) {
	query := `SELECT user_id, email, role FROM identities WHERE server = ?`
	row := r.db.QueryRowContext(ctx, query, server)

	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading identity: %w", err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (r *SQLiteIdentityRepo) Delete(ctx context.Context, server string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM identities WHERE server = ?`, server)
	if err != nil {
		return fmt.Errorf("deleting identity: %w", err)
	}
	return nil
}
