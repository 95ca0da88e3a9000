package client

import (
	"context"
	"sync"
)

// Filter selects which subset of the shelf is visible.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterRead   Filter = "read"
	FilterUnread Filter = "unread"
)

// Counts summarizes the full (unfiltered) book list.
type Counts struct {
	Total  int
	Read   int
	Unread int
}

// API is the surface the Controller needs from the HTTP client.
// Defined here so tests can substitute a fake without a running server.
type API interface {
	List(ctx context.Context, status Status) ([]Book, error)
	Create(ctx context.Context, in BookInput) (Book, error)
	Update(ctx context.Context, id string, in BookInput) (Book, error)
	Delete(ctx context.Context, id string) error
}

// Controller holds the authoritative local view of the book collection and
// the active filter. After a successful mutation it reconciles the local
// list from the server's response instead of re-fetching.
//
// All state lives behind one mutex, so state transitions are serialized even
// if callers issue concurrent requests: whichever request completes first is
// reconciled first.
type Controller struct {
	api API

	mu       sync.Mutex
	books    []Book
	filtered []Book
	filter   Filter
	loading  bool
	err      string
}

// NewController creates a Controller with an empty list and the "all" filter.
func NewController(api API) *Controller {
	return &Controller{api: api, filter: FilterAll}
}

// Load fetches the full list from the server and replaces both the book list
// and the filtered view. The loading flag is set for the duration of the
// request and always cleared on completion, success or failure. Failures
// leave the previous list intact and record an error message; Load is never
// retried automatically.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	books, err := c.api.List(ctx, "")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = "fetching books: " + err.Error()
		return err
	}
	c.books = books
	c.filtered = applyFilter(books, c.filter)
	c.err = ""
	return nil
}

// Add posts a new book and, on success, prepends the server-returned record
// to the front of the list. The filtered view is recomputed from the updated
// list, never from a stale snapshot predating the prepend.
func (c *Controller) Add(ctx context.Context, in BookInput) (Book, error) {
	created, err := c.api.Create(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.err = "adding book: " + err.Error()
		return Book{}, err
	}
	c.books = append([]Book{created}, c.books...)
	c.filtered = applyFilter(c.books, c.filter)
	c.err = ""
	return created, nil
}

// Update replaces the book with the given ID and, on success, swaps the
// matching local entry in place, preserving list order.
func (c *Controller) Update(ctx context.Context, id string, in BookInput) (Book, error) {
	updated, err := c.api.Update(ctx, id, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.err = "updating book: " + err.Error()
		return Book{}, err
	}
	for i := range c.books {
		if c.books[i].ID == id {
			c.books[i] = updated
			break
		}
	}
	c.filtered = applyFilter(c.books, c.filter)
	c.err = ""
	return updated, nil
}

// Toggle flips a book's status between read and unread, resending the other
// fields unchanged. Returns a *ResponseError with a not-found code via the
// server if the book vanished remotely; an unknown local ID fails before any
// network call.
func (c *Controller) Toggle(ctx context.Context, id string) (Book, error) {
	c.mu.Lock()
	var current *Book
	for i := range c.books {
		if c.books[i].ID == id {
			b := c.books[i]
			current = &b
			break
		}
	}
	c.mu.Unlock()

	if current == nil {
		c.mu.Lock()
		c.err = "toggling book: unknown id " + id
		c.mu.Unlock()
		return Book{}, &ResponseError{StatusCode: 404, Code: "not_found", Message: "book not found"}
	}

	return c.Update(ctx, id, BookInput{
		Title:  current.Title,
		Author: current.Author,
		Status: current.Status.Toggle(),
	})
}

// Delete removes the book with the given ID and, on success, drops the
// matching local entry.
func (c *Controller) Delete(ctx context.Context, id string) error {
	err := c.api.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.err = "deleting book: " + err.Error()
		return err
	}
	kept := c.books[:0:0]
	for _, b := range c.books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	c.books = kept
	c.filtered = applyFilter(c.books, c.filter)
	c.err = ""
	return nil
}

// SetFilter changes the active filter and recomputes the filtered view from
// the current list. Purely local — no network call is made.
func (c *Controller) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
	c.filtered = applyFilter(c.books, f)
}

// Books returns a copy of the full known list, newest first.
func (c *Controller) Books() []Book {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Book(nil), c.books...)
}

// Filtered returns a copy of the filtered view.
func (c *Controller) Filtered() []Book {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Book(nil), c.filtered...)
}

// Filter returns the active filter.
func (c *Controller) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Counts summarizes the full list regardless of the active filter.
func (c *Controller) Counts() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := Counts{Total: len(c.books)}
	for _, b := range c.books {
		if b.Status == StatusRead {
			counts.Read++
		} else {
			counts.Unread++
		}
	}
	return counts
}

// Loading reports whether a Load is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the message from the most recent failure, or "" after a
// success. Failed mutations record a message here and leave the lists alone.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// applyFilter derives the visible subset for a filter.
// Unknown filter values fall back to the unfiltered list.
func applyFilter(books []Book, f Filter) []Book {
	var status Status
	switch f {
	case FilterRead:
		status = StatusRead
	case FilterUnread:
		status = StatusUnread
	default:
		return append([]Book(nil), books...)
	}

	filtered := []Book{}
	for _, b := range books {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
