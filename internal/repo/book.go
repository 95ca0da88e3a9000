// Package repo contains all database access logic for the ReadShelf API.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/readshelf/readshelf/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BookRepo defines the persistence operations for Books.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type BookRepo interface {
	// Create inserts a new book and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, book domain.Book) (domain.Book, error)

	// GetByID retrieves a single book by its UUID primary key.
	// Returns domain.ErrNotFound if no book with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Book, error)

	// List returns books ordered by created_at descending (newest first).
	// A non-nil status narrows the result to books with that status;
	// nil means no filter.
	List(ctx context.Context, status *domain.Status) ([]domain.Book, error)

	// Update overwrites the mutable fields of an existing book and returns the
	// updated record. Returns domain.ErrNotFound if no book with that ID exists.
	Update(ctx context.Context, book domain.Book) (domain.Book, error)

	// Delete removes a book by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgBookRepo is the Postgres implementation of BookRepo.
type pgBookRepo struct {
	db db
}

// NewBookRepo constructs a BookRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewBookRepo(db db) BookRepo {
	return &pgBookRepo{db: db}
}

// Create inserts a new book row and returns the full persisted record.
func (r *pgBookRepo) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	const q = `
		INSERT INTO books (title, author, status)
		VALUES (@title, @author, @status)
		RETURNING id, title, author, status, created_at, updated_at`

	args := pgx.NamedArgs{
		"title":  book.Title,
		"author": book.Author,
		"status": string(book.Status),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBook(row)
	if err != nil {
		return domain.Book{}, fmt.Errorf("repo.BookRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a book by primary key.
func (r *pgBookRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Book, error) {
	const q = `
		SELECT id, title, author, status, created_at, updated_at
		FROM books
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanBook(row)
	if err != nil {
		return domain.Book{}, fmt.Errorf("repo.BookRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns books ordered by created_at descending (most recent first),
// optionally narrowed to a single status.
func (r *pgBookRepo) List(ctx context.Context, status *domain.Status) ([]domain.Book, error) {
	const q = `
		SELECT id, title, author, status, created_at, updated_at
		FROM books
		WHERE @status::text IS NULL OR status = @status
		ORDER BY created_at DESC`

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"status": statusArg})
	if err != nil {
		return nil, fmt.Errorf("repo.BookRepo.List: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BookRepo.List: scan: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookRepo.List: rows: %w", err)
	}

	return books, nil
}

// Update overwrites the mutable fields of a book and returns the updated record.
func (r *pgBookRepo) Update(ctx context.Context, book domain.Book) (domain.Book, error) {
	const q = `
		UPDATE books
		SET title      = @title,
		    author     = @author,
		    status     = @status,
		    updated_at = clock_timestamp()
		WHERE id = @id
		RETURNING id, title, author, status, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":     book.ID,
		"title":  book.Title,
		"author": book.Author,
		"status": string(book.Status),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBook(row)
	if err != nil {
		return domain.Book{}, fmt.Errorf("repo.BookRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a book by primary key.
func (r *pgBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM books WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.BookRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BookRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanBook to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanBook maps a single database row into a domain.Book.
func scanBook(s scanner) (domain.Book, error) {
	var (
		b      domain.Book
		id     pgtype.UUID
		status string
	)

	err := s.Scan(&id, &b.Title, &b.Author, &status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Book{}, domain.ErrNotFound
		}
		return domain.Book{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.Status = domain.Status(status)

	return b, nil
}
