package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteCookieRepo implements CookieRepo using a SQLite database.
type SQLiteCookieRepo struct {
	db *sql.DB
}

// NewSQLiteCookieRepo creates a new SQLiteCookieRepo.
func NewSQLiteCookieRepo(db *sql.DB) *SQLiteCookieRepo {
	return &SQLiteCookieRepo{db: db}
}

func (r *SQLiteCookieRepo) Upsert(ctx context.Context, server string, c StoredCookie) error {
	query := `INSERT INTO cookies (server, name, value, path, expires, http_only, secure, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(server, name) DO UPDATE SET
			value = excluded.value,
			path = excluded.path,
			expires = excluded.expires,
			http_only = excluded.http_only,
			secure = excluded.secure,
			updated_at = excluded.updated_at`

	var expires any
	if !c.Expires.IsZero() {
		expires = c.Expires.UTC().Format(time.RFC3339)
	}
	_, err := r.db.ExecContext(ctx, query,
		server,
		c.Name,
		c.Value,
		c.Path,
		expires,
		boolToInt(c.HTTPOnly),
		boolToInt(c.Secure),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting cookie: %w", err)
	}
	return nil
}

func (r *SQLiteCookieRepo) ListByServer(ctx context.Context, server string) ([]StoredCookie, error) {
	query := `SELECT name, value, path, expires, http_only, secure
		FROM cookies WHERE server = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, server)
	if err != nil {
		return nil, fmt.Errorf("listing cookies: %w", err)
	}
	defer rows.Close()

	var cookies []StoredCookie
	for rows.Next() {
		var c StoredCookie
		var expires sql.NullString
		var httpOnly, secure int
		if err := rows.Scan(&c.Name, &c.Value, &c.Path, &expires, &httpOnly, &secure); err != nil {
			return nil, fmt.Errorf("scanning cookie: %w", err)
		}
		if expires.Valid {
			t, err := time.Parse(time.RFC3339, expires.String)
			if err != nil {
				return nil, fmt.Errorf("parsing cookie expiry: %w", err)
			}
			c.Expires = t
		}
		c.HTTPOnly = httpOnly != 0
		c.Secure = secure != 0
		cookies = append(cookies, c)
	}
	return cookies, rows.Err()
}

func (r *SQLiteCookieRepo) Delete(ctx context.Context, server, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE server = ? AND name = ?`, server, name)
	if err != nil {
		return fmt.Errorf("deleting cookie: %w", err)
	}
	return nil
}

func (r *SQLiteCookieRepo) DeleteByServer(ctx context.Context, server string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE server = ?`, server)
	if err != nil {
		return fmt.Errorf("deleting cookies: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
