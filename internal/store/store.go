// Package store is the relational persistence layer for users, posts and
// comments. Handlers depend on the interfaces so tests can substitute spies.
package store

import (
	"context"
	"errors"

	"blog/internal/models"
)

var (
	ErrNotFound       = errors.New("store: not found")
	ErrDuplicateEmail = errors.New("store: email already registered")
	ErrUsernameTaken  = errors.New("store: username already taken")
	ErrDuplicateTitle = errors.New("store: title already used")
)

type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string, isAdmin bool) (*models.User, error)
	ByID(ctx context.Context, id int64) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

type PostStore interface {
	Create(ctx context.Context, p *models.Post) (int64, error)
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*models.Post, error)
	All(ctx context.Context) ([]models.Post, error)
}

type CommentStore interface {
	Create(ctx context.Context, c *models.Comment) (int64, error)
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*models.Comment, error)
	ByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}
