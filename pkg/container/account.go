package container

import (
	"fmt"

	"bookstore-microservices/internal/config"
	"bookstore-microservices/internal/domains/user"
	userHandler "bookstore-microservices/internal/domains/user/handler"
	userRepo "bookstore-microservices/internal/domains/user/repository"
	userService "bookstore-microservices/internal/domains/user/service"
	"bookstore-microservices/internal/infrastructure/database"
)

// AccountContainer: dependency graph của account service
type AccountContainer struct {
	*Infra
	Config *config.AccountConfig

	UserRepo    user.Repository
	UserService user.Service
	UserHandler *userHandler.UserHandler
}

func NewAccountContainer(cfg *config.AccountConfig) (*AccountContainer, error) {
	infra, err := newInfra("account", database.SchemaAccount, cfg.Common)
	if err != nil {
		return nil, fmt.Errorf("account infrastructure: %w", err)
	}

	c := &AccountContainer{Infra: infra, Config: cfg}
	c.UserRepo = userRepo.NewPostgresRepository(infra.DB.Pool)
	c.UserService = userService.NewUserService(c.UserRepo, infra.Cache, cfg.CacheTTL, cfg.BcryptCost)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	return c, nil
}
