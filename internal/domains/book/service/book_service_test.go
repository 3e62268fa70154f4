package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookstore-microservices/internal/domains/book"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context) ([]book.Book, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]book.Book)
	return books, args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, b *book.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockRepository) Update(ctx context.Context, id int64, patch book.UpdateBookRequest) (*book.Book, error) {
	args := m.Called(ctx, id, patch)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("persists trimmed fields", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(b *book.Book) bool {
			return b.Title == "Dune" && b.Author == "Frank Herbert" && *b.Year == 1965
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*book.Book).ID = 7
		}).Return(nil)

		svc := NewBookService(repo)
		got, err := svc.CreateBook(ctx, book.CreateBookRequest{Title: "  Dune ", Author: "Frank Herbert", Year: intPtr(1965)})

		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("year is optional", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*book.Book")).Return(nil)

		got, err := NewBookService(repo).CreateBook(ctx, book.CreateBookRequest{Title: "Dune", Author: "Herbert"})

		require.NoError(t, err)
		assert.Nil(t, got.Year)
	})

	invalid := map[string]book.CreateBookRequest{
		"missing title":  {Author: "Herbert"},
		"missing author": {Title: "Dune"},
		"blank title":    {Title: "   ", Author: "Herbert"},
		"negative year":  {Title: "Dune", Author: "Herbert", Year: intPtr(-1)},
		"future year":    {Title: "Dune", Author: "Herbert", Year: intPtr(99999)},
	}
	for name, req := range invalid {
		t.Run(name, func(t *testing.T) {
			repo := new(mockRepository)

			_, err := NewBookService(repo).CreateBook(ctx, req)

			assert.ErrorIs(t, err, book.ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("datastore failure is surfaced", func(t *testing.T) {
		repo := new(mockRepository)
		dbErr := errors.New("connection reset")
		repo.On("Create", ctx, mock.Anything).Return(dbErr)

		_, err := NewBookService(repo).CreateBook(ctx, book.CreateBookRequest{Title: "Dune", Author: "Herbert"})

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, book.ErrInvalidInput)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("no field is invalid input", func(t *testing.T) {
		repo := new(mockRepository)

		_, err := NewBookService(repo).UpdateBook(ctx, 1, book.UpdateBookRequest{})

		assert.ErrorIs(t, err, book.ErrInvalidInput)
		assert.ErrorIs(t, err, book.ErrNoFieldsToUpdate)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty title is invalid input", func(t *testing.T) {
		repo := new(mockRepository)

		_, err := NewBookService(repo).UpdateBook(ctx, 1, book.UpdateBookRequest{Title: strPtr(" ")})

		assert.ErrorIs(t, err, book.ErrInvalidInput)
	})

	t.Run("only year is forwarded", func(t *testing.T) {
		repo := new(mockRepository)
		patch := book.UpdateBookRequest{Year: intPtr(2001)}
		repo.On("Update", ctx, int64(3), patch).
			Return(&book.Book{ID: 3, Title: "Dune", Author: "Herbert", Year: intPtr(2001)}, nil)

		got, err := NewBookService(repo).UpdateBook(ctx, 3, patch)

		require.NoError(t, err)
		assert.Equal(t, 2001, *got.Year)
		repo.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Update", ctx, int64(9), mock.Anything).Return(nil, book.ErrBookNotFound)

		_, err := NewBookService(repo).UpdateBook(ctx, 9, book.UpdateBookRequest{Title: strPtr("X")})

		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestGetAndDeleteBook(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("FindByID", ctx, int64(4)).Return(nil, book.ErrBookNotFound)
	repo.On("Delete", ctx, int64(4)).Return(book.ErrBookNotFound)
	repo.On("Delete", ctx, int64(5)).Return(nil)

	svc := NewBookService(repo)

	_, err := svc.GetBook(ctx, 4)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.ErrorIs(t, svc.DeleteBook(ctx, 4), book.ErrBookNotFound)
	assert.NoError(t, svc.DeleteBook(ctx, 5))
}
