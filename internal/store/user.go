package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog/internal/models"
)

type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Create inserts a new user. Username and email uniqueness are checked
// before the insert so the caller gets a distinct sentinel per field.
func (s *UserService) Create(ctx context.Context, username, email, passwordHash string, isAdmin bool) (*models.User, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = ?`, username).Scan(&exists)
	if err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: username check: %w", err)
	}
	err = s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email = ?`, email).Scan(&exists)
	if err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: email check: %w", err)
	}

	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users(username,email,password_hash,is_admin,created_at) VALUES(?,?,?,?,?)`,
		u.Username, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: insert user: %w", err)
	}
	u.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: insert user id: %w", err)
	}
	return u, nil
}

func (s *UserService) ByID(ctx context.Context, id int64) (*models.User, error) {
	return s.one(ctx, `SELECT id,username,email,password_hash,is_admin,created_at FROM users WHERE id = ?`, id)
}

func (s *UserService) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.one(ctx, `SELECT id,username,email,password_hash,is_admin,created_at FROM users WHERE email = ?`, email)
}

func (s *UserService) one(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("store: query user: %w", err)
	}
	return &u, nil
}

func (s *UserService) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count users: %w", err)
	}
	return n, nil
}
