package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"bookstore-microservices/internal/domains/order"
	"bookstore-microservices/internal/infrastructure/peer"
	"bookstore-microservices/pkg/logger"
	"bookstore-microservices/pkg/metrics"
)

// =====================================================
// ORDER SERVICE IMPLEMENTATION
// =====================================================
type orderService struct {
	repo     order.Repository
	accounts order.AccountClient
	catalog  order.CatalogClient

	// số order được enrich đồng thời trong ListOrders
	concurrency int
	metrics     *metrics.Metrics
}

func NewOrderService(
	repo order.Repository,
	accounts order.AccountClient,
	catalog order.CatalogClient,
	concurrency int,
	m *metrics.Metrics,
) order.Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &orderService{
		repo:        repo,
		accounts:    accounts,
		catalog:     catalog,
		concurrency: concurrency,
		metrics:     m,
	}
}

// =====================================================
// CREATE ORDER
// =====================================================
// Các bước chạy tuần tự, dừng ở lỗi đầu tiên:
// validate -> user (account) -> book (catalog) -> insert

func (s *orderService) CreateOrder(ctx context.Context, req order.CreateOrderRequest) (*order.Order, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		logger.Warn("create order rejected", map[string]interface{}{"op": "CreateOrder", "reason": err.Error()})
		return nil, fmt.Errorf("%w: %v", order.ErrInvalidInput, err)
	}
	userID, bookID := *req.UserID, *req.BookID
	fields := map[string]interface{}{"op": "CreateOrder", "user_id": userID, "book_id": bookID}

	// 2. USER PHẢI TỒN TẠI
	if _, err := s.accounts.GetUser(ctx, userID); err != nil {
		if errors.Is(err, peer.ErrNotFound) {
			logger.Warn("create order: user not found", fields)
			return nil, order.ErrUserNotFound
		}
		logger.ErrorFields("create order: account lookup failed", err, fields)
		return nil, fmt.Errorf("%w: account: %v", order.ErrDependency, err)
	}

	// 3. BOOK PHẢI TỒN TẠI (chỉ gọi khi user hợp lệ)
	if _, err := s.catalog.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, peer.ErrNotFound) {
			logger.Warn("create order: book not found", fields)
			return nil, order.ErrBookNotFound
		}
		logger.ErrorFields("create order: catalog lookup failed", err, fields)
		return nil, fmt.Errorf("%w: catalog: %v", order.ErrDependency, err)
	}

	// 4. PERSIST - order_date = now, status = in progress
	o := &order.Order{UserID: userID, BookID: bookID}
	if err := s.repo.Create(ctx, o); err != nil {
		logger.ErrorFields("create order failed", err, fields)
		return nil, err
	}

	logger.Info("order created", map[string]interface{}{"order_id": o.ID, "user_id": userID, "book_id": bookID})
	return o, nil
}

// =====================================================
// READ ORDERS (ENRICHED)
// =====================================================

func (s *orderService) ListOrders(ctx context.Context) ([]order.EnrichedOrder, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		logger.ErrorFields("list orders failed", err, map[string]interface{}{"op": "ListOrders"})
		return nil, err
	}

	// mỗi goroutine chỉ ghi vào ô của chính nó
	result := make([]order.EnrichedOrder, len(orders))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range orders {
		i := i
		g.Go(func() error {
			result[i] = s.enrich(ctx, orders[i])
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*order.EnrichedOrder, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			logger.Warn("order not found", map[string]interface{}{"op": "GetOrder", "order_id": id})
			return nil, err
		}
		logger.ErrorFields("get order failed", err, map[string]interface{}{"op": "GetOrder", "order_id": id})
		return nil, err
	}

	enriched := s.enrich(ctx, *o)
	return &enriched, nil
}

// enrich lấy user name và book title song song.
// Mỗi lookup độc lập: lỗi bên này không ảnh hưởng bên kia, và không bao giờ làm hỏng order.
func (s *orderService) enrich(ctx context.Context, o order.Order) order.EnrichedOrder {
	var (
		wg        sync.WaitGroup
		userName  string
		bookTitle string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		userName = fetchOrDefault(ctx, func(ctx context.Context) (string, error) {
			u, err := s.accounts.GetUser(ctx, o.UserID)
			if err != nil {
				return "", err
			}
			return u.Name, nil
		}, order.UnknownUser, s.onFallback(o, "userName", o.UserID))
	}()
	go func() {
		defer wg.Done()
		bookTitle = fetchOrDefault(ctx, func(ctx context.Context) (string, error) {
			b, err := s.catalog.GetBook(ctx, o.BookID)
			if err != nil {
				return "", err
			}
			return b.Title, nil
		}, order.UnknownBook, s.onFallback(o, "bookTitle", o.BookID))
	}()
	wg.Wait()

	return order.EnrichedOrder{
		Order:     o,
		UserName:  userName,
		BookTitle: bookTitle,
	}
}

func (s *orderService) onFallback(o order.Order, field string, ref int64) func(error) {
	return func(err error) {
		logger.Warn("order enrichment fallback", map[string]interface{}{
			"op":       "enrich",
			"order_id": o.ID,
			"field":    field,
			"ref_id":   ref,
			"error":    err.Error(),
		})
		if s.metrics != nil {
			s.metrics.EnrichmentFallback.WithLabelValues(field).Inc()
		}
	}
}

// fetchOrDefault trả về fallback nếu fetch lỗi (kể cả panic)
func fetchOrDefault[T any](ctx context.Context, fetch func(context.Context) (T, error), fallback T, onErr func(error)) (result T) {
	defer func() {
		if r := recover(); r != nil {
			result = fallback
			onErr(fmt.Errorf("panic: %v", r))
		}
	}()

	v, err := fetch(ctx)
	if err != nil {
		onErr(err)
		return fallback
	}
	return v
}
