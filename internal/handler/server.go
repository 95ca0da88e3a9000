// Package handler implements the HTTP handlers for the ReadShelf API.
// All handlers are methods on Server. Methods are split into files by
// concern (book.go, health.go) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/readshelf/readshelf/internal/domain"
	"github.com/readshelf/readshelf/spec"
)

// BookServicer defines the business operations the book handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type BookServicer interface {
	Create(ctx context.Context, book domain.Book) (domain.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Book, error)
	List(ctx context.Context, status *domain.Status) ([]domain.Book, error)
	Update(ctx context.Context, book domain.Book) (domain.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Server holds the dependencies for all API endpoints.
// Wire it in main.go via Routes().
type Server struct {
	books BookServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(books BookServicer) *Server {
	return &Server{books: books}
}

// Routes returns the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/api/health", s.GetHealth)

	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", s.ListBooks)
		r.Post("/", s.CreateBook)
		r.Route("/{bookID}", func(r chi.Router) {
			r.Get("/", s.GetBook)
			r.Put("/", s.UpdateBook)
			r.Delete("/", s.DeleteBook)
		})
	})

	// Serve the embedded OpenAPI document so the published contract and the
	// running code are always in sync.
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(spec.OpenAPI)
	})

	return r
}
