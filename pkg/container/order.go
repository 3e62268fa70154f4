package container

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"bookstore-microservices/internal/config"
	"bookstore-microservices/internal/domains/order"
	orderHandler "bookstore-microservices/internal/domains/order/handler"
	orderRepo "bookstore-microservices/internal/domains/order/repository"
	orderService "bookstore-microservices/internal/domains/order/service"
	"bookstore-microservices/internal/infrastructure/database"
	"bookstore-microservices/internal/infrastructure/peer"
)

// OrderContainer: dependency graph của order service, gồm cả HTTP clients tới peers
type OrderContainer struct {
	*Infra
	Config *config.OrderConfig

	AccountClient *peer.AccountClient
	CatalogClient *peer.CatalogClient

	OrderRepo    order.Repository
	OrderService order.Service
	OrderHandler *orderHandler.OrderHandler
}

func NewOrderContainer(cfg *config.OrderConfig) (*OrderContainer, error) {
	infra, err := newInfra("order", database.SchemaOrder, cfg.Common)
	if err != nil {
		return nil, fmt.Errorf("order infrastructure: %w", err)
	}

	c := &OrderContainer{Infra: infra, Config: cfg}
	c.AccountClient = peer.NewAccountClient(cfg.AccountURL, cfg.PeerTimeout, infra.Metrics)
	c.CatalogClient = peer.NewCatalogClient(cfg.CatalogURL, cfg.PeerTimeout, infra.Metrics)

	c.OrderRepo = orderRepo.NewPostgresRepository(infra.DB.Pool)
	c.OrderService = orderService.NewOrderService(
		c.OrderRepo,
		c.AccountClient,
		c.CatalogClient,
		cfg.EnrichConcurrency,
		infra.Metrics,
	)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	return c, nil
}

// Health bổ sung trạng thái peers (chỉ mang tính thông tin, không ảnh hưởng status code)
func (c *OrderContainer) Health(ctx context.Context) (int, gin.H) {
	status, body := c.Infra.Health(ctx)

	peers := gin.H{}
	for name, p := range map[string]*peer.Client{
		"account": c.AccountClient.Client,
		"catalog": c.CatalogClient.Client,
	} {
		peers[name] = "ok"
		if err := p.Ping(ctx); err != nil {
			peers[name] = err.Error()
		}
	}
	body["peers"] = peers
	return status, body
}
