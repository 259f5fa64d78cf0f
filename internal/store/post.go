package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"blog/internal/models"
)

type PostService struct {
	db *sql.DB
}

func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

func (s *PostService) Create(ctx context.Context, p *models.Post) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO blog_posts(author_id,title,subtitle,date,body,img_url) VALUES(?,?,?,?,?,?)`,
		p.AuthorID, p.Title, p.Subtitle, p.Date, p.Body, p.ImgURL)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateTitle
		}
		return 0, fmt.Errorf("store: insert post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: insert post id: %w", err)
	}
	p.ID = id
	return id, nil
}

func (s *PostService) Update(ctx context.Context, p *models.Post) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE blog_posts SET author_id=?, title=?, subtitle=?, body=?, img_url=? WHERE id=?`,
		p.AuthorID, p.Title, p.Subtitle, p.Body, p.ImgURL, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateTitle
		}
		return fmt.Errorf("store: update post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: update post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the post row. Comments referencing it go with it via the
// ON DELETE CASCADE on comments.post_id.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostService) ByID(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	err := s.db.QueryRowContext(ctx,
		`SELECT p.id, p.author_id, p.title, p.subtitle, p.date, p.body, p.img_url, u.username
		FROM blog_posts p JOIN users u ON p.author_id = u.id WHERE p.id = ?`, id).
		Scan(&p.ID, &p.AuthorID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImgURL, &p.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("store: query post: %w", err)
	}
	return &p, nil
}

// All returns every post ordered by id ascending.
func (s *PostService) All(ctx context.Context) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.author_id, p.title, p.subtitle, p.date, p.body, p.img_url, u.username
		FROM blog_posts p JOIN users u ON p.author_id = u.id ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("store: query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImgURL, &p.Author); err != nil {
			return nil, fmt.Errorf("store: scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: scan posts: %w", err)
	}
	return posts, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
