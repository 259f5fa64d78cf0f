package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"blog/internal/auth"
	"blog/internal/config"
	"blog/internal/db"
	"blog/internal/handlers"
	"blog/internal/store"
)

func main() {
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	cfgPath := flag.String("config", "blog.yml", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		errorLog.Fatal(err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		errorLog.Fatal(err)
	}

	dbc, err := db.Open(cfg.DBPath)
	if err != nil {
		errorLog.Fatal(err)
	}
	defer dbc.Close()

	if err := db.Migrate(dbc); err != nil {
		errorLog.Fatal(err)
	}
	infoLog.Printf("database ready at %s", cfg.DBPath)

	sessions := auth.NewManager(dbc, cfg.SessionMaxAge())

	render, err := handlers.NewTemplateRenderer(cfg.TemplateDir)
	if err != nil {
		errorLog.Fatal(err)
	}

	h := handlers.New(
		store.NewUserService(dbc),
		store.NewPostService(dbc),
		store.NewCommentService(dbc),
		sessions,
		render,
		errorLog,
	)

	mux := http.NewServeMux()

	fs := http.FileServer(http.Dir(cfg.StaticDir))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	mux.HandleFunc("/", h.Index)
	mux.HandleFunc("/register", h.Register)
	mux.HandleFunc("/login", h.Login)
	mux.HandleFunc("/logout", h.Logout)

	mux.HandleFunc("/post/", h.ShowPost) // /post/{id}, comment submit on POST

	mux.HandleFunc("/new-post", h.RequireAdmin(h.NewPost))
	mux.HandleFunc("/edit-post/", h.RequireAdmin(h.EditPost))
	mux.HandleFunc("/delete/", h.RequireAdmin(h.DeletePost))

	mux.HandleFunc("/delete_comment/", h.DeleteComment) // author or admin, checked inside

	mux.HandleFunc("/about", h.About)
	mux.HandleFunc("/contact", h.Contact)

	handler := handlers.WithRecover(
		handlers.WithSecureHeaders(
			handlers.WithLogging(infoLog,
				h.AttachUser(mux))))

	srv := &http.Server{
		Addr:     cfg.Addr,
		Handler:  handler,
		ErrorLog: errorLog,

		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	infoLog.Printf("listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		errorLog.Fatal(err)
	}
}
