package handlers

import (
	"log"
	"net/http"
	"runtime/debug"

	"blog/internal/auth"
	"blog/internal/models"
	"blog/internal/store"
)

type Handler struct {
	users    store.UserStore
	posts    store.PostStore
	comments store.CommentStore
	sessions *auth.Manager
	render   Renderer
	errorLog *log.Logger
}

func New(users store.UserStore, posts store.PostStore, comments store.CommentStore,
	sessions *auth.Manager, render Renderer, errorLog *log.Logger) *Handler {
	return &Handler{
		users:    users,
		posts:    posts,
		comments: comments,
		sessions: sessions,
		render:   render,
		errorLog: errorLog,
	}
}

// page builds the base template context every view receives.
func (h *Handler) page(r *http.Request, title string) map[string]any {
	user := auth.CurrentUser(r.Context())
	return map[string]any{
		"Title":       title,
		"CurrentUser": user,
		"Logged":      user != nil,
		"IsAdmin":     user != nil && user.IsAdmin,
	}
}

func (h *Handler) serverError(w http.ResponseWriter, err error) {
	h.errorLog.Printf("%s\n%s", err.Error(), debug.Stack())
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (h *Handler) clientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

func (h *Handler) forbidden(w http.ResponseWriter) {
	h.clientError(w, http.StatusForbidden)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter) {
	h.clientError(w, http.StatusMethodNotAllowed)
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	data := h.page(r, "Not Found")
	if err := h.render.Render(w, "notfound", data); err != nil {
		h.errorLog.Printf("render notfound: %v", err)
	}
}

// Index lists every post, oldest first.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w)
		return
	}

	posts, err := h.posts.All(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	data := h.page(r, "Blog")
	data["Posts"] = posts
	if err := h.render.Render(w, "index", data); err != nil {
		h.serverError(w, err)
	}
}

func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	if err := h.render.Render(w, "about", h.page(r, "About")); err != nil {
		h.serverError(w, err)
	}
}

func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	if err := h.render.Render(w, "contact", h.page(r, "Contact")); err != nil {
		h.serverError(w, err)
	}
}
