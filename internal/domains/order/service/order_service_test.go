package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookstore-microservices/internal/domains/order"
	"bookstore-microservices/internal/infrastructure/peer"
	"bookstore-microservices/pkg/metrics"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]order.Order)
	return orders, args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// fakeAccounts / fakeCatalog đếm số lần được gọi
type fakeAccounts struct {
	calls atomic.Int32
	fn    func(ctx context.Context, id int64) (*peer.User, error)
}

func (f *fakeAccounts) GetUser(ctx context.Context, id int64) (*peer.User, error) {
	f.calls.Add(1)
	return f.fn(ctx, id)
}

type fakeCatalog struct {
	calls atomic.Int32
	fn    func(ctx context.Context, id int64) (*peer.Book, error)
}

func (f *fakeCatalog) GetBook(ctx context.Context, id int64) (*peer.Book, error) {
	f.calls.Add(1)
	return f.fn(ctx, id)
}

var errUnavailable = &peer.Error{Peer: "test", Err: errors.New("connection refused")}

func knownUsers(names map[int64]string) *fakeAccounts {
	return &fakeAccounts{fn: func(_ context.Context, id int64) (*peer.User, error) {
		if name, ok := names[id]; ok {
			return &peer.User{ID: id, Name: name}, nil
		}
		return nil, peer.ErrNotFound
	}}
}

func knownBooks(titles map[int64]string) *fakeCatalog {
	return &fakeCatalog{fn: func(_ context.Context, id int64) (*peer.Book, error) {
		if title, ok := titles[id]; ok {
			return &peer.Book{ID: id, Title: title}, nil
		}
		return nil, peer.ErrNotFound
	}}
}

func id(v int64) *int64 { return &v }

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("persists after both lookups succeed", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.UserID == 1 && o.BookID == 2
		})).Run(func(args mock.Arguments) {
			o := args.Get(1).(*order.Order)
			o.ID = 10
			o.Status = order.StatusInProgress
			o.OrderDate = time.Now()
		}).Return(nil)
		accounts := knownUsers(map[int64]string{1: "Alice"})
		catalog := knownBooks(map[int64]string{2: "Dune"})

		svc := NewOrderService(repo, accounts, catalog, 4, nil)
		got, err := svc.CreateOrder(ctx, order.CreateOrderRequest{UserID: id(1), BookID: id(2)})

		require.NoError(t, err)
		assert.Equal(t, int64(10), got.ID)
		assert.Equal(t, order.StatusInProgress, got.Status)
		assert.EqualValues(t, 1, accounts.calls.Load())
		assert.EqualValues(t, 1, catalog.calls.Load())
		repo.AssertExpectations(t)
	})

	tests := []struct {
		name         string
		req          order.CreateOrderRequest
		accounts     *fakeAccounts
		catalog      *fakeCatalog
		wantErr      error
		wantAccounts int32
		wantCatalog  int32
	}{
		{
			name:     "missing user id",
			req:      order.CreateOrderRequest{BookID: id(2)},
			accounts: knownUsers(nil), catalog: knownBooks(nil),
			wantErr: order.ErrInvalidInput,
		},
		{
			name:     "zero book id",
			req:      order.CreateOrderRequest{UserID: id(1), BookID: id(0)},
			accounts: knownUsers(nil), catalog: knownBooks(nil),
			wantErr: order.ErrInvalidInput,
		},
		{
			name:     "unknown user stops before catalog",
			req:      order.CreateOrderRequest{UserID: id(9), BookID: id(2)},
			accounts: knownUsers(nil), catalog: knownBooks(map[int64]string{2: "Dune"}),
			wantErr: order.ErrUserNotFound, wantAccounts: 1,
		},
		{
			name: "account unavailable stops before catalog",
			req:  order.CreateOrderRequest{UserID: id(1), BookID: id(2)},
			accounts: &fakeAccounts{fn: func(context.Context, int64) (*peer.User, error) {
				return nil, errUnavailable
			}},
			catalog: knownBooks(map[int64]string{2: "Dune"}),
			wantErr: order.ErrDependency, wantAccounts: 1,
		},
		{
			name:     "unknown book",
			req:      order.CreateOrderRequest{UserID: id(1), BookID: id(9)},
			accounts: knownUsers(map[int64]string{1: "Alice"}), catalog: knownBooks(nil),
			wantErr: order.ErrBookNotFound, wantAccounts: 1, wantCatalog: 1,
		},
		{
			name:     "catalog unavailable",
			req:      order.CreateOrderRequest{UserID: id(1), BookID: id(2)},
			accounts: knownUsers(map[int64]string{1: "Alice"}),
			catalog: &fakeCatalog{fn: func(context.Context, int64) (*peer.Book, error) {
				return nil, errUnavailable
			}},
			wantErr: order.ErrDependency, wantAccounts: 1, wantCatalog: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			svc := NewOrderService(repo, tt.accounts, tt.catalog, 4, nil)

			_, err := svc.CreateOrder(ctx, tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantAccounts, tt.accounts.calls.Load())
			assert.Equal(t, tt.wantCatalog, tt.catalog.calls.Load())
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestListOrdersEnrichment(t *testing.T) {
	ctx := context.Background()
	stored := []order.Order{
		{ID: 1, UserID: 1, BookID: 1, Status: order.StatusInProgress},
		{ID: 2, UserID: 2, BookID: 2, Status: order.StatusInProgress},
		{ID: 3, UserID: 1, BookID: 3, Status: order.StatusInProgress},
	}

	repo := new(mockRepository)
	repo.On("List", ctx).Return(stored, nil)
	accounts := knownUsers(map[int64]string{1: "Alice"})
	catalog := &fakeCatalog{fn: func(_ context.Context, id int64) (*peer.Book, error) {
		switch id {
		case 1:
			return &peer.Book{ID: 1, Title: "Dune"}, nil
		case 2:
			return &peer.Book{ID: 2, Title: "Emma"}, nil
		}
		return nil, errUnavailable
	}}
	m := metrics.New("order")

	svc := NewOrderService(repo, accounts, catalog, 2, m)
	got, err := svc.ListOrders(ctx)

	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "Alice", got[0].UserName)
	assert.Equal(t, "Dune", got[0].BookTitle)

	// user bị xóa, book vẫn enrich được
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, order.UnknownUser, got[1].UserName)
	assert.Equal(t, "Emma", got[1].BookTitle)

	// catalog lỗi không ảnh hưởng user name
	assert.Equal(t, int64(3), got[2].ID)
	assert.Equal(t, "Alice", got[2].UserName)
	assert.Equal(t, order.UnknownBook, got[2].BookTitle)
	assert.Equal(t, int64(3), got[2].BookID)

	assert.EqualValues(t, 3, accounts.calls.Load())
	assert.EqualValues(t, 3, catalog.calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EnrichmentFallback.WithLabelValues("userName")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EnrichmentFallback.WithLabelValues("bookTitle")))
}

func TestListOrdersEmpty(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("List", ctx).Return([]order.Order{}, nil)

	svc := NewOrderService(repo, knownUsers(nil), knownBooks(nil), 4, nil)
	got, err := svc.ListOrders(ctx)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEnrichFetchesUserAndBookConcurrently(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	repo.On("FindByID", ctx, int64(5)).Return(&order.Order{ID: 5, UserID: 1, BookID: 1}, nil)

	// mỗi lookup chờ lookup còn lại bắt đầu: chỉ hoàn thành nếu chạy song song
	userStarted := make(chan struct{})
	bookStarted := make(chan struct{})
	accounts := &fakeAccounts{fn: func(ctx context.Context, _ int64) (*peer.User, error) {
		close(userStarted)
		select {
		case <-bookStarted:
			return &peer.User{Name: "Alice"}, nil
		case <-time.After(2 * time.Second):
			return nil, errUnavailable
		}
	}}
	catalog := &fakeCatalog{fn: func(ctx context.Context, _ int64) (*peer.Book, error) {
		close(bookStarted)
		select {
		case <-userStarted:
			return &peer.Book{Title: "Dune"}, nil
		case <-time.After(2 * time.Second):
			return nil, errUnavailable
		}
	}}

	svc := NewOrderService(repo, accounts, catalog, 1, nil)
	got, err := svc.GetOrder(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, "Alice", got.UserName)
	assert.Equal(t, "Dune", got.BookTitle)
}

func TestGetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, int64(99)).Return(nil, order.ErrOrderNotFound)
		accounts, catalog := knownUsers(nil), knownBooks(nil)

		svc := NewOrderService(repo, accounts, catalog, 4, nil)
		_, err := svc.GetOrder(ctx, 99)

		assert.ErrorIs(t, err, order.ErrOrderNotFound)
		assert.Zero(t, accounts.calls.Load())
		assert.Zero(t, catalog.calls.Load())
	})

	t.Run("both peers down still returns the order", func(t *testing.T) {
		repo := new(mockRepository)
		stored := &order.Order{ID: 4, UserID: 7, BookID: 8, Status: order.StatusInProgress}
		repo.On("FindByID", ctx, int64(4)).Return(stored, nil)
		down := func(context.Context, int64) (*peer.User, error) { return nil, errUnavailable }
		accounts := &fakeAccounts{fn: down}
		catalog := &fakeCatalog{fn: func(context.Context, int64) (*peer.Book, error) { panic("boom") }}

		svc := NewOrderService(repo, accounts, catalog, 4, nil)
		got, err := svc.GetOrder(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, *stored, got.Order)
		assert.Equal(t, order.UnknownUser, got.UserName)
		assert.Equal(t, order.UnknownBook, got.BookTitle)
	})
}
