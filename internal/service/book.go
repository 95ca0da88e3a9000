// Package service implements the business logic for the ReadShelf API.
// It sits between the HTTP handlers and the repo layer: all validation and
// defaulting happens here, never in the handlers or the SQL.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/readshelf/readshelf/internal/domain"
	"github.com/readshelf/readshelf/internal/repo"
)

// BookService implements business logic for Book operations.
type BookService struct {
	books repo.BookRepo
}

// NewBookService constructs a BookService backed by the provided repo.
func NewBookService(books repo.BookRepo) *BookService {
	return &BookService{books: books}
}

// Create validates and persists a new book.
// Title and author are trimmed before validation; an empty status defaults
// to unread. Returns domain.ErrValidation if input violates business rules.
func (s *BookService) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	book = normalizeBook(book)
	if book.Status == "" {
		book.Status = domain.StatusUnread
	}
	if err := validateBook(book); err != nil {
		return domain.Book{}, err
	}
	result, err := s.books.Create(ctx, book)
	if err != nil {
		return domain.Book{}, fmt.Errorf("service.BookService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single book by ID.
// Returns domain.ErrNotFound if no book with that ID exists.
func (s *BookService) GetByID(ctx context.Context, id uuid.UUID) (domain.Book, error) {
	result, err := s.books.GetByID(ctx, id)
	if err != nil {
		return domain.Book{}, fmt.Errorf("service.BookService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all books ordered by created_at descending, optionally
// narrowed to a single status (nil means no filter).
// Always returns a non-nil slice so callers can safely range over it.
func (s *BookService) List(ctx context.Context, status *domain.Status) ([]domain.Book, error) {
	books, err := s.books.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("service.BookService.List: %w", err)
	}
	if books == nil {
		return []domain.Book{}, nil
	}
	return books, nil
}

// Update validates and persists changes to an existing book.
// Update is full-replace: title, author, and status are all overwritten with
// the supplied values, so callers must resend unchanged fields.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// book does not exist.
func (s *BookService) Update(ctx context.Context, book domain.Book) (domain.Book, error) {
	book = normalizeBook(book)
	if err := validateBook(book); err != nil {
		return domain.Book{}, err
	}
	result, err := s.books.Update(ctx, book)
	if err != nil {
		return domain.Book{}, fmt.Errorf("service.BookService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a book by ID.
// Returns domain.ErrNotFound if the book does not exist.
func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.BookService.Delete: %w", err)
	}
	return nil
}

// normalizeBook trims leading/trailing whitespace from the text fields so
// the stored record never carries padding.
func normalizeBook(book domain.Book) domain.Book {
	book.Title = strings.TrimSpace(book.Title)
	book.Author = strings.TrimSpace(book.Author)
	return book
}

// validateBook enforces business rules common to both Create and Update.
//   - Title must be non-empty after trimming.
//   - Author must be non-empty after trimming.
//   - Status must be one of the two enumerated values.
func validateBook(book domain.Book) error {
	if book.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if book.Author == "" {
		return fmt.Errorf("%w: author is required", domain.ErrValidation)
	}
	if !book.Status.Valid() {
		return fmt.Errorf("%w: status must be %q or %q", domain.ErrValidation, domain.StatusRead, domain.StatusUnread)
	}
	return nil
}
