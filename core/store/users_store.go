package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

type UsersStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Get(ctx context.Context, userID string) (*User, error)
	Create(ctx context.Context, user *User) error
	List(ctx context.Context) ([]User, error)
}

type usersStore struct {
	db *sql.DB
}

func NewUsersStore(db *sql.DB) UsersStore {
	return &usersStore{db: db}
}

func (s *usersStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, salt, created_at
		FROM users WHERE email=?`, strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

func (s *usersStore) Get(ctx context.Context, userID string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, salt, created_at
		FROM users WHERE id=?`, userID)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	u := User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Salt, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *usersStore) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users(id, name, email, password_hash, salt, created_at)
		VALUES(?,?,?,?,?,?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Salt, user.CreatedAt)
	return err
}

func (s *usersStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, password_hash, salt, created_at
		FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Salt, &u.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}
