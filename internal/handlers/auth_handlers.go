package handlers

import (
	"errors"
	"net/http"
	"strings"

	"blog/internal/auth"
	"blog/internal/store"
)

// Register creates an account and logs it in. The first account ever
// registered becomes the administrator.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if err := h.render.Render(w, "register", h.page(r, "Register")); err != nil {
			h.serverError(w, err)
		}
		return
	case http.MethodPost:
	default:
		h.methodNotAllowed(w)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	pass := r.FormValue("password")

	if err := auth.ValidateCredentials(username, email, pass); err != nil {
		h.renderRegister(w, r, err.Error())
		return
	}

	hash, err := auth.HashPassword(pass)
	if err != nil {
		h.serverError(w, err)
		return
	}

	count, err := h.users.Count(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	user, err := h.users.Create(r.Context(), username, email, hash, count == 0)
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		// Same notice as the signup form flash: the account exists, so
		// send the visitor to login instead.
		http.Redirect(w, r, "/login?exists=1", http.StatusSeeOther)
		return
	case errors.Is(err, store.ErrUsernameTaken):
		h.renderRegister(w, r, "That username is already taken")
		return
	case err != nil:
		h.serverError(w, err)
		return
	}

	if err := h.sessions.Create(w, user.ID); err != nil {
		h.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderRegister(w http.ResponseWriter, r *http.Request, msg string) {
	w.WriteHeader(http.StatusBadRequest)
	data := h.page(r, "Register")
	data["Error"] = msg
	if err := h.render.Render(w, "register", data); err != nil {
		h.errorLog.Printf("render register: %v", err)
	}
}

// Login authenticates by email and password. The two failure notices stay
// distinct: unknown account versus wrong password.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		data := h.page(r, "Login")
		data["Exists"] = r.URL.Query().Get("exists") == "1"
		if err := h.render.Render(w, "login", data); err != nil {
			h.serverError(w, err)
		}
		return
	case http.MethodPost:
	default:
		h.methodNotAllowed(w)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	pass := r.FormValue("password")

	user, err := h.users.ByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		h.renderLogin(w, r, "User does not exist")
		return
	} else if err != nil {
		h.serverError(w, err)
		return
	}

	if !auth.CheckPassword(pass, user.PasswordHash) {
		h.renderLogin(w, r, "Invalid password")
		return
	}

	h.sessions.DestroyForUser(user.ID)
	if err := h.sessions.Create(w, user.ID); err != nil {
		h.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, msg string) {
	w.WriteHeader(http.StatusUnauthorized)
	data := h.page(r, "Login")
	data["Error"] = msg
	if err := h.render.Render(w, "login", data); err != nil {
		h.errorLog.Printf("render login: %v", err)
	}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
