package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog/internal/models"
)

type CommentService struct {
	db *sql.DB
}

func NewCommentService(db *sql.DB) *CommentService {
	return &CommentService{db: db}
}

func (s *CommentService) Create(ctx context.Context, c *models.Comment) (int64, error) {
	c.CreatedAt = time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO comments(post_id,author_id,text,created_at) VALUES(?,?,?,?)`,
		c.PostID, c.AuthorID, c.Text, c.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("store: insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: insert comment id: %w", err)
	}
	c.ID = id
	return id, nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete comment: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CommentService) ByID(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	err := s.db.QueryRowContext(ctx,
		`SELECT c.id, c.post_id, c.author_id, c.text, c.created_at, u.username
		FROM comments c JOIN users u ON c.author_id = u.id WHERE c.id = ?`, id).
		Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt, &c.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("store: query comment: %w", err)
	}
	return &c, nil
}

// ByPost returns a post's comments ordered by id ascending.
func (s *CommentService) ByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.post_id, c.author_id, c.text, c.created_at, u.username
		FROM comments c JOIN users u ON c.author_id = u.id WHERE c.post_id = ? ORDER BY c.id`, postID)
	if err != nil {
		return nil, fmt.Errorf("store: query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt, &c.Author); err != nil {
			return nil, fmt.Errorf("store: scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: scan comments: %w", err)
	}
	return comments, nil
}
