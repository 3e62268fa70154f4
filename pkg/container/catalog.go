package container

import (
	"fmt"

	"bookstore-microservices/internal/config"
	"bookstore-microservices/internal/domains/book"
	bookHandler "bookstore-microservices/internal/domains/book/handler"
	bookRepo "bookstore-microservices/internal/domains/book/repository"
	bookService "bookstore-microservices/internal/domains/book/service"
	"bookstore-microservices/internal/infrastructure/database"
)

// CatalogContainer: dependency graph của catalog service
type CatalogContainer struct {
	*Infra
	Config *config.CatalogConfig

	BookRepo    book.Repository
	BookService book.Service
	BookHandler *bookHandler.BookHandler
}

func NewCatalogContainer(cfg *config.CatalogConfig) (*CatalogContainer, error) {
	infra, err := newInfra("catalog", database.SchemaCatalog, cfg.Common)
	if err != nil {
		return nil, fmt.Errorf("catalog infrastructure: %w", err)
	}

	c := &CatalogContainer{Infra: infra, Config: cfg}
	c.BookRepo = bookRepo.NewPostgresRepository(infra.DB.Pool, infra.Cache, cfg.CacheTTL)
	c.BookService = bookService.NewBookService(c.BookRepo)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	return c, nil
}
