package models

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

type Post struct {
	ID       int64
	AuthorID int64
	Title    string
	Subtitle string
	// Date is the display string stamped when the post is created,
	// e.g. "August 30, 2026". It is never recomputed.
	Date   string
	Body   string
	ImgURL string
	Author string
}

type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	Text      string
	CreatedAt time.Time
	Author    string
}
