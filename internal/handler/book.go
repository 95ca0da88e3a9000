package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/readshelf/readshelf/internal/domain"
)

// bookRequest is the JSON body accepted by POST and PUT.
// Status is optional on create (defaults to unread) and required on update;
// the service layer enforces the difference.
type bookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Status string `json:"status"`
}

// bookResponse is the JSON shape of a single book in every success response.
type bookResponse struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Author    string        `json:"author"`
	Status    domain.Status `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// messageResponse is the confirmation body returned by DELETE.
type messageResponse struct {
	Message string `json:"message"`
}

// ListBooks handles GET /api/books.
// An optional ?status=read|unread query narrows the result; any other value
// is ignored and the full list is returned.
func (s *Server) ListBooks(w http.ResponseWriter, r *http.Request) {
	var status *domain.Status
	if q := domain.Status(r.URL.Query().Get("status")); q.Valid() {
		status = &q
	}

	books, err := s.books.List(r.Context(), status)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, internalBody(err))
		return
	}

	data := make([]bookResponse, len(books))
	for i, b := range books {
		data[i] = bookToResponse(b)
	}
	respondJSON(w, http.StatusOK, data)
}

// GetBook handles GET /api/books/{bookID}.
// A syntactically invalid ID never names a record, so it is reported as
// not found rather than a server fault.
func (s *Server) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bookID"))
	if err != nil {
		respondJSON(w, http.StatusNotFound, notFoundBody("book not found"))
		return
	}

	book, err := s.books.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, notFoundBody("book not found"))
			return
		}
		respondJSON(w, http.StatusInternalServerError, internalBody(err))
		return
	}

	respondJSON(w, http.StatusOK, bookToResponse(book))
}

// CreateBook handles POST /api/books.
func (s *Server) CreateBook(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBookRequest(r.Body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	created, err := s.books.Create(r.Context(), domain.Book{
		Title:  req.Title,
		Author: req.Author,
		Status: domain.Status(req.Status),
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondJSON(w, http.StatusBadRequest, validationBody(err))
			return
		}
		respondJSON(w, http.StatusInternalServerError, internalBody(err))
		return
	}

	respondJSON(w, http.StatusCreated, bookToResponse(created))
}

// UpdateBook handles PUT /api/books/{bookID}.
// The update is full-replace: title, author, and status are overwritten with
// the supplied values, so callers must resend unchanged fields. Fields left
// out of the body fail validation instead of silently nulling the record.
func (s *Server) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bookID"))
	if err != nil {
		respondJSON(w, http.StatusNotFound, notFoundBody("book not found"))
		return
	}

	req, err := decodeBookRequest(r.Body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	updated, err := s.books.Update(r.Context(), domain.Book{
		ID:     id,
		Title:  req.Title,
		Author: req.Author,
		Status: domain.Status(req.Status),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, notFoundBody("book not found"))
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			respondJSON(w, http.StatusBadRequest, validationBody(err))
			return
		}
		respondJSON(w, http.StatusInternalServerError, internalBody(err))
		return
	}

	respondJSON(w, http.StatusOK, bookToResponse(updated))
}

// DeleteBook handles DELETE /api/books/{bookID}.
// Success returns a confirmation message, not the deleted record.
func (s *Server) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bookID"))
	if err != nil {
		respondJSON(w, http.StatusNotFound, notFoundBody("book not found"))
		return
	}

	if err := s.books.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, notFoundBody("book not found"))
			return
		}
		respondJSON(w, http.StatusInternalServerError, internalBody(err))
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "book deleted"})
}

// decodeBookRequest reads and decodes a JSON request body.
// Unknown fields are rejected so malformed shapes never reach the service layer.
func decodeBookRequest(body io.Reader) (bookRequest, error) {
	var req bookRequest
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return bookRequest{}, errors.New("invalid request body")
	}
	return req, nil
}

// bookToResponse converts a domain.Book to its API response shape.
// Timestamps are normalized to UTC so clients see a stable representation.
func bookToResponse(b domain.Book) bookResponse {
	return bookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Status:    b.Status,
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}
