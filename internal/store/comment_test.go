package store

import (
	"context"
	"errors"
	"testing"

	"blog/internal/models"
)

func TestCommentLifecycle(t *testing.T) {
	dbc := testDB(t)
	users := NewUserService(dbc)
	posts := NewPostService(dbc)
	comments := NewCommentService(dbc)
	ctx := context.Background()

	admin := mustCreateUser(t, users, "admin", "admin@x.com", true)
	reader := mustCreateUser(t, users, "reader", "reader@x.com", false)

	p := models.Post{AuthorID: admin.ID, Title: "T", Subtitle: "s", Date: "d", Body: "b", ImgURL: "u"}
	pid, err := posts.Create(ctx, &p)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	var ids []int64
	for _, text := range []string{"first", "second"} {
		c := models.Comment{PostID: pid, AuthorID: reader.ID, Text: text}
		id, err := comments.Create(ctx, &c)
		if err != nil {
			t.Fatalf("create comment %q: %v", text, err)
		}
		ids = append(ids, id)
	}

	list, err := comments.ByPost(ctx, pid)
	if err != nil {
		t.Fatalf("by post: %v", err)
	}
	if len(list) != 2 || list[0].Text != "first" || list[1].Text != "second" {
		t.Fatalf("unexpected comment list %+v", list)
	}
	if list[0].Author != "reader" {
		t.Fatalf("expected joined author name, got %q", list[0].Author)
	}

	if err := comments.Delete(ctx, ids[0]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err = comments.ByPost(ctx, pid)
	if err != nil {
		t.Fatalf("by post after delete: %v", err)
	}
	if len(list) != 1 || list[0].ID != ids[1] {
		t.Fatalf("unexpected list after delete %+v", list)
	}
}

func TestCommentNotFound(t *testing.T) {
	dbc := testDB(t)
	comments := NewCommentService(dbc)
	ctx := context.Background()

	if _, err := comments.ByID(ctx, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := comments.Delete(ctx, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
