// Package client provides a Go client for the ReadShelf API plus a state
// controller that mirrors the server's book collection locally, reconciling
// it from mutation responses instead of re-fetching after every change.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Status records whether a book has been read.
// The client keeps its own copy of the enum so importers of this package
// never need the server's internal packages.
type Status string

const (
	StatusRead   Status = "read"
	StatusUnread Status = "unread"
)

// Toggle returns the opposite status: read becomes unread and vice versa.
func (s Status) Toggle() Status {
	if s == StatusRead {
		return StatusUnread
	}
	return StatusRead
}

// Book is the wire representation of a single book.
// The ID is opaque to the client; it is never parsed, only echoed back.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookInput is the request body for creating or replacing a book.
// Status may be left empty on create; the server defaults it to unread.
type BookInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Status Status `json:"status,omitempty"`
}

// ResponseError is returned for any non-2xx API response.
// Code and Message carry the server's error body when it could be decoded.
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Client is an HTTP client for the ReadShelf API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:8080").
// A nil httpClient falls back to one with a 30 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Health checks the liveness probe. A reachable, running server returns nil.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

// List fetches books ordered newest first.
// A non-empty status narrows the list server-side; the zero value fetches all.
func (c *Client) List(ctx context.Context, status Status) ([]Book, error) {
	path := "/api/books"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	var books []Book
	if err := c.do(ctx, http.MethodGet, path, nil, &books); err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get fetches a single book by ID.
func (c *Client) Get(ctx context.Context, id string) (Book, error) {
	var book Book
	err := c.do(ctx, http.MethodGet, "/api/books/"+url.PathEscape(id), nil, &book)
	return book, err
}

// Create posts a new book and returns the record the server persisted,
// including the generated ID and timestamps.
func (c *Client) Create(ctx context.Context, in BookInput) (Book, error) {
	var book Book
	err := c.do(ctx, http.MethodPost, "/api/books", in, &book)
	return book, err
}

// Update replaces the book with the given ID.
// The server applies full-replace semantics, so in must carry every field.
func (c *Client) Update(ctx context.Context, id string, in BookInput) (Book, error) {
	var book Book
	err := c.do(ctx, http.MethodPut, "/api/books/"+url.PathEscape(id), in, &book)
	return book, err
}

// ToggleStatus flips the status of the book with the given ID between read
// and unread. The current record is fetched first so title and author are
// resent unchanged, matching the server's full-replace update semantics.
func (c *Client) ToggleStatus(ctx context.Context, id string) (Book, error) {
	current, err := c.Get(ctx, id)
	if err != nil {
		return Book{}, err
	}
	return c.Update(ctx, id, BookInput{
		Title:  current.Title,
		Author: current.Author,
		Status: current.Status.Toggle(),
	})
}

// Delete removes the book with the given ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), nil, nil)
}

// do performs a single API request, encoding body (when non-nil) as JSON and
// decoding the response into out (when non-nil). Non-2xx statuses become a
// *ResponseError carrying the server's error body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("client: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
	}
	return nil
}

// decodeError builds a *ResponseError from a non-2xx response.
// A body that is not the API's error shape still yields a usable error
// carrying the status code.
func decodeError(resp *http.Response) error {
	respErr := &ResponseError{StatusCode: resp.StatusCode}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		respErr.Code = body.Error.Code
		respErr.Message = body.Error.Message
	}
	return respErr
}
