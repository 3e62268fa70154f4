package order

import (
	"context"

	"bookstore-microservices/internal/infrastructure/peer"
)

// AccountClient - lookup user qua account service
type AccountClient interface {
	GetUser(ctx context.Context, id int64) (*peer.User, error)
}

// CatalogClient - lookup book qua catalog service
type CatalogClient interface {
	GetBook(ctx context.Context, id int64) (*peer.Book, error)
}

type Service interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	ListOrders(ctx context.Context) ([]EnrichedOrder, error)
	GetOrder(ctx context.Context, id int64) (*EnrichedOrder, error)
}
