package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore-microservices/internal/domains/order"
	"bookstore-microservices/internal/shared/response"
	"bookstore-microservices/internal/shared/utils"
)

// =====================================================
// ORDER HANDLER
// =====================================================
type OrderHandler struct {
	service order.Service
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/commandes")
	{
		orders.POST("", h.CreateOrder) // POST /commandes
		orders.GET("", h.ListOrders)   // GET /commandes
		orders.GET("/:id", h.GetOrder) // GET /commandes/:id
	}
}

// CreateOrder godoc
// @Summary Create an order after checking the user and the book exist
// @Tags Orders
// @Router /commandes [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/commandes/"+strconv.FormatInt(created.ID, 10))
	response.Success(c, http.StatusCreated, created)
}

// ListOrders godoc
// @Summary List orders with user name and book title
// @Tags Orders
// @Router /commandes [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, orders)
}

// GetOrder godoc
// @Summary Get one order with user name and book title
// @Tags Orders
// @Router /commandes/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "order id must be a positive integer")
		return
	}

	o, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, o)
}

// =====================================================
// ERROR MAPPING
// =====================================================
func (h *OrderHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrInvalidInput):
		response.BadRequest(c, err.Error())

	case errors.Is(err, order.ErrUserNotFound),
		errors.Is(err, order.ErrBookNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		response.NotFound(c, err.Error())

	case errors.Is(err, order.ErrDependency):
		response.DependencyError(c, order.ErrDependency.Error())

	default:
		response.InternalServerError(c, "Internal server error")
	}
}
