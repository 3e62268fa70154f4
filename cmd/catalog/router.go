package main

import (
	"github.com/gin-gonic/gin"

	"bookstore-microservices/internal/shared/middleware"
	"bookstore-microservices/pkg/container"
)

func SetupRouter(c *container.CatalogContainer) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(c.Metrics),
	)

	router.GET("/health", func(ctx *gin.Context) {
		status, body := c.Health(ctx.Request.Context())
		ctx.JSON(status, body)
	})
	router.GET("/metrics", gin.WrapH(c.Metrics.Handler()))

	c.BookHandler.RegisterRoutes(router)

	return router
}
