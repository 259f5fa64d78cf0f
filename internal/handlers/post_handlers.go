package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"blog/internal/auth"
	"blog/internal/models"
	"blog/internal/store"
)

// dateFormat matches the display string stamped on posts at creation.
const dateFormat = "January 02, 2006"

func pathID(r *http.Request, prefix string) (int64, bool) {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ShowPost serves /post/{id}: the post with its comments on GET, a comment
// submission on POST. Commenting needs a logged-in user; anonymous
// submitters are sent to login and no row is written.
func (h *Handler) ShowPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/post/")
	if !ok {
		h.NotFound(w, r)
		return
	}

	post, err := h.posts.ByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.NotFound(w, r)
		return
	} else if err != nil {
		h.serverError(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		user := auth.CurrentUser(r.Context())
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		text := strings.TrimSpace(r.FormValue("comment"))
		if text == "" {
			h.renderPost(w, r, post, "Comment text is required", http.StatusBadRequest)
			return
		}
		c := &models.Comment{PostID: post.ID, AuthorID: user.ID, Text: text}
		if _, err := h.comments.Create(r.Context(), c); err != nil {
			h.serverError(w, err)
			return
		}
		http.Redirect(w, r, "/post/"+strconv.FormatInt(post.ID, 10), http.StatusSeeOther)
		return
	default:
		h.methodNotAllowed(w)
		return
	}

	h.renderPost(w, r, post, "", 0)
}

func (h *Handler) renderPost(w http.ResponseWriter, r *http.Request, post *models.Post, msg string, status int) {
	comments, err := h.comments.ByPost(r.Context(), post.ID)
	if err != nil {
		h.serverError(w, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	if status != 0 {
		w.WriteHeader(status)
	}
	data := h.page(r, post.Title)
	data["Post"] = post
	data["Comments"] = comments
	if msg != "" {
		data["Error"] = msg
	}
	if err := h.render.Render(w, "post", data); err != nil {
		h.errorLog.Printf("render post: %v", err)
	}
}

// NewPost serves /new-post. Admin only; the route is registered behind
// RequireAdmin.
func (h *Handler) NewPost(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		data := h.page(r, "New Post")
		data["IsEdit"] = false
		if err := h.render.Render(w, "make_post", data); err != nil {
			h.serverError(w, err)
		}
		return
	case http.MethodPost:
	default:
		h.methodNotAllowed(w)
		return
	}

	post, msg := postFromForm(r)
	if msg != "" {
		h.renderMakePost(w, r, post, false, msg)
		return
	}

	post.AuthorID = auth.CurrentUser(r.Context()).ID
	post.Date = time.Now().Format(dateFormat)

	_, err := h.posts.Create(r.Context(), post)
	if errors.Is(err, store.ErrDuplicateTitle) {
		h.renderMakePost(w, r, post, false, "A post with that title already exists")
		return
	} else if err != nil {
		h.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditPost serves /edit-post/{id}. Admin only. The author is rebound to
// the editing identity; the creation date is left untouched.
func (h *Handler) EditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "/edit-post/")
	if !ok {
		h.NotFound(w, r)
		return
	}

	post, err := h.posts.ByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.NotFound(w, r)
		return
	} else if err != nil {
		h.serverError(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.renderMakePost(w, r, post, true, "")
		return
	case http.MethodPost:
	default:
		h.methodNotAllowed(w)
		return
	}

	updated, msg := postFromForm(r)
	if msg != "" {
		updated.ID = post.ID
		h.renderMakePost(w, r, updated, true, msg)
		return
	}

	post.Title = updated.Title
	post.Subtitle = updated.Subtitle
	post.Body = updated.Body
	post.ImgURL = updated.ImgURL
	post.AuthorID = auth.CurrentUser(r.Context()).ID

	err = h.posts.Update(r.Context(), post)
	if errors.Is(err, store.ErrDuplicateTitle) {
		h.renderMakePost(w, r, post, true, "A post with that title already exists")
		return
	} else if errors.Is(err, store.ErrNotFound) {
		h.NotFound(w, r)
		return
	} else if err != nil {
		h.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/post/"+strconv.FormatInt(post.ID, 10), http.StatusSeeOther)
}

func postFromForm(r *http.Request) (*models.Post, string) {
	p := &models.Post{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Subtitle: strings.TrimSpace(r.FormValue("subtitle")),
		Body:     strings.TrimSpace(r.FormValue("body")),
		ImgURL:   strings.TrimSpace(r.FormValue("img_url")),
	}
	if p.Title == "" || p.Subtitle == "" || p.Body == "" || p.ImgURL == "" {
		return p, "Title, subtitle, image URL and body are all required"
	}
	return p, ""
}

func (h *Handler) renderMakePost(w http.ResponseWriter, r *http.Request, post *models.Post, isEdit bool, msg string) {
	if msg != "" {
		w.WriteHeader(http.StatusBadRequest)
	}
	title := "New Post"
	if isEdit {
		title = "Edit Post"
	}
	data := h.page(r, title)
	data["Post"] = post
	data["IsEdit"] = isEdit
	if msg != "" {
		data["Error"] = msg
	}
	if err := h.render.Render(w, "make_post", data); err != nil {
		h.errorLog.Printf("render make_post: %v", err)
	}
}

// DeletePost serves /delete/{id}. Admin only. Deleting a post removes its
// comments through the schema cascade.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w)
		return
	}
	id, ok := pathID(r, "/delete/")
	if !ok {
		h.NotFound(w, r)
		return
	}
	err := h.posts.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.NotFound(w, r)
		return
	} else if err != nil {
		h.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteComment serves /delete_comment/{postId}/{commentId}. Only the
// comment's author or the administrator may delete it.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/delete_comment/"), "/")
	if len(parts) != 2 {
		h.NotFound(w, r)
		return
	}
	postID, err1 := strconv.ParseInt(parts[0], 10, 64)
	commentID, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil || postID <= 0 || commentID <= 0 {
		h.NotFound(w, r)
		return
	}

	user := auth.CurrentUser(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	comment, err := h.comments.ByID(r.Context(), commentID)
	if errors.Is(err, store.ErrNotFound) {
		h.NotFound(w, r)
		return
	} else if err != nil {
		h.serverError(w, err)
		return
	}
	if comment.PostID != postID {
		h.NotFound(w, r)
		return
	}
	if comment.AuthorID != user.ID && !user.IsAdmin {
		h.forbidden(w)
		return
	}

	if err := h.comments.Delete(r.Context(), commentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		h.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/post/"+strconv.FormatInt(postID, 10), http.StatusSeeOther)
}
