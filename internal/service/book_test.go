package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readshelf/readshelf/internal/domain"
	"github.com/readshelf/readshelf/internal/repo"
	"github.com/readshelf/readshelf/internal/service"
)

// mockBookRepo is a hand-written test double for repo.BookRepo.
type mockBookRepo struct {
	create  func(ctx context.Context, book domain.Book) (domain.Book, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Book, error)
	list    func(ctx context.Context, status *domain.Status) ([]domain.Book, error)
	update  func(ctx context.Context, book domain.Book) (domain.Book, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBookRepo) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	return m.create(ctx, book)
}
func (m *mockBookRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Book, error) {
	return m.getByID(ctx, id)
}
func (m *mockBookRepo) List(ctx context.Context, status *domain.Status) ([]domain.Book, error) {
	return m.list(ctx, status)
}
func (m *mockBookRepo) Update(ctx context.Context, book domain.Book) (domain.Book, error) {
	return m.update(ctx, book)
}
func (m *mockBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockBookRepo must satisfy repo.BookRepo.
var _ repo.BookRepo = (*mockBookRepo)(nil)

func validBook() domain.Book {
	return domain.Book{
		Title:  "Dune",
		Author: "Frank Herbert",
		Status: domain.StatusUnread,
	}
}

// ---- Create ----------------------------------------------------------------

func TestBookService_Create_OK(t *testing.T) {
	input := validBook()
	stored := input
	stored.ID = uuid.New()

	svc := service.NewBookService(&mockBookRepo{
		create: func(_ context.Context, b domain.Book) (domain.Book, error) {
			return stored, nil
		},
	})

	got, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
}

func TestBookService_Create_DefaultsStatusToUnread(t *testing.T) {
	var persisted domain.Book
	svc := service.NewBookService(&mockBookRepo{
		create: func(_ context.Context, b domain.Book) (domain.Book, error) {
			persisted = b
			return b, nil
		},
	})

	input := validBook()
	input.Status = ""

	_, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnread, persisted.Status)
}

func TestBookService_Create_TrimsTitleAndAuthor(t *testing.T) {
	var persisted domain.Book
	svc := service.NewBookService(&mockBookRepo{
		create: func(_ context.Context, b domain.Book) (domain.Book, error) {
			persisted = b
			return b, nil
		},
	})

	input := validBook()
	input.Title = "  Dune  "
	input.Author = "\tFrank Herbert\n"

	_, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "Dune", persisted.Title)
	assert.Equal(t, "Frank Herbert", persisted.Author)
}

func TestBookService_Create_TitleRequired(t *testing.T) {
	repoCalled := false
	svc := service.NewBookService(&mockBookRepo{
		create: func(_ context.Context, b domain.Book) (domain.Book, error) {
			repoCalled = true
			return b, nil
		},
	})

	input := validBook()
	input.Title = "   "

	_, err := svc.Create(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, repoCalled, "no record must be created on validation failure")
}

func TestBookService_Create_AuthorRequired(t *testing.T) {
	svc := service.NewBookService(&mockBookRepo{})

	input := validBook()
	input.Author = ""

	_, err := svc.Create(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookService_Create_InvalidStatus(t *testing.T) {
	svc := service.NewBookService(&mockBookRepo{})

	input := validBook()
	input.Status = "reading"

	_, err := svc.Create(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- GetByID ---------------------------------------------------------------

func TestBookService_GetByID_NotFound(t *testing.T) {
	svc := service.NewBookService(&mockBookRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Book, error) {
			return domain.Book{}, domain.ErrNotFound
		},
	})

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- List ------------------------------------------------------------------

func TestBookService_List_NilBecomesEmptySlice(t *testing.T) {
	svc := service.NewBookService(&mockBookRepo{
		list: func(_ context.Context, _ *domain.Status) ([]domain.Book, error) {
			return nil, nil
		},
	})

	got, err := svc.List(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, got, "callers must be able to range over the result")
	assert.Empty(t, got)
}

func TestBookService_List_PassesStatusThrough(t *testing.T) {
	read := domain.StatusRead
	svc := service.NewBookService(&mockBookRepo{
		list: func(_ context.Context, status *domain.Status) ([]domain.Book, error) {
			require.NotNil(t, status)
			assert.Equal(t, domain.StatusRead, *status)
			return []domain.Book{}, nil
		},
	})

	_, err := svc.List(context.Background(), &read)

	require.NoError(t, err)
}

// ---- Update ----------------------------------------------------------------

func TestBookService_Update_OK(t *testing.T) {
	stored := validBook()
	stored.ID = uuid.New()
	stored.Status = domain.StatusRead

	svc := service.NewBookService(&mockBookRepo{
		update: func(_ context.Context, b domain.Book) (domain.Book, error) {
			return stored, nil
		},
	})

	input := validBook()
	input.ID = stored.ID
	input.Status = domain.StatusRead

	got, err := svc.Update(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRead, got.Status)
}

func TestBookService_Update_NotFound(t *testing.T) {
	svc := service.NewBookService(&mockBookRepo{
		update: func(_ context.Context, _ domain.Book) (domain.Book, error) {
			return domain.Book{}, domain.ErrNotFound
		},
	})

	input := validBook()
	input.ID = uuid.New()

	_, err := svc.Update(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookService_Update_RevalidatesStatus(t *testing.T) {
	repoCalled := false
	svc := service.NewBookService(&mockBookRepo{
		update: func(_ context.Context, b domain.Book) (domain.Book, error) {
			repoCalled = true
			return b, nil
		},
	})

	input := validBook()
	input.ID = uuid.New()
	input.Status = "finished"

	_, err := svc.Update(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, repoCalled, "invalid status must never reach the store")
}

func TestBookService_Update_MissingFieldsRejected(t *testing.T) {
	// Update is full-replace: an absent title fails validation instead of
	// silently nulling the stored value.
	svc := service.NewBookService(&mockBookRepo{})

	input := validBook()
	input.ID = uuid.New()
	input.Title = ""

	_, err := svc.Update(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Delete ----------------------------------------------------------------

func TestBookService_Delete_OK(t *testing.T) {
	id := uuid.New()
	svc := service.NewBookService(&mockBookRepo{
		delete: func(_ context.Context, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	})

	require.NoError(t, svc.Delete(context.Background(), id))
}

func TestBookService_Delete_NotFound(t *testing.T) {
	svc := service.NewBookService(&mockBookRepo{
		delete: func(_ context.Context, _ uuid.UUID) error {
			return domain.ErrNotFound
		},
	})

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestBookService_Create_WrapsRepoError verifies repo failures keep their cause
// in the chain so handlers can still classify them.
func TestBookService_Create_WrapsRepoError(t *testing.T) {
	cause := errors.New("connection refused")
	svc := service.NewBookService(&mockBookRepo{
		create: func(_ context.Context, _ domain.Book) (domain.Book, error) {
			return domain.Book{}, cause
		},
	})

	_, err := svc.Create(context.Background(), validBook())

	assert.ErrorIs(t, err, cause)
}
