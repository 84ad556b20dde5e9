// Package router wires the HTTP routes, middleware and static file server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aanand-mishra/studentdb-api/internal/http/handlers/health"
	"github.com/aanand-mishra/studentdb-api/internal/http/handlers/student"
	"github.com/aanand-mishra/studentdb-api/internal/http/middleware"
	"github.com/aanand-mishra/studentdb-api/internal/storage"
)

// Options are the router settings taken from config.
type Options struct {
	// StaticDir is served at "/". Empty disables the file server.
	StaticDir      string
	AllowedOrigins []string
}

// New returns the handler for the whole service.
//
//	GET    /api/students           list, newest first
//	GET    /api/students/{id}      one student
//	GET    /api/students/srn/{srn} one student by SRN
//	POST   /api/students           create
//	PUT    /api/students/{id}      overwrite
//	DELETE /api/students/{id}      delete
//	GET    /health                 database ping
func New(store storage.Storage, log zerolog.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recovery(log))

	r.Get("/health", health.Check(store, log))

	r.Route("/api/students", func(r chi.Router) {
		r.Get("/", student.GetList(store, log))
		r.Post("/", student.New(store, log))
		// Static segment wins over {id}, so "srn" is never parsed as an id.
		r.Get("/srn/{srn}", student.GetBySRN(store, log))
		r.Get("/{id}", student.GetByID(store, log))
		r.Put("/{id}", student.Update(store, log))
		r.Delete("/{id}", student.Delete(store, log))
	})

	if opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(opts.StaticDir)))
	}

	return r
}
