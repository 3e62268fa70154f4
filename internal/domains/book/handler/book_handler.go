package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore-microservices/internal/domains/book"
	"bookstore-microservices/internal/shared/response"
	"bookstore-microservices/internal/shared/utils"
)

// BookHandler xử lý HTTP requests cho catalog service
type BookHandler struct {
	service book.Service
}

func NewBookHandler(service book.Service) *BookHandler {
	return &BookHandler{service: service}
}

// RegisterRoutes registers catalog routes
func (h *BookHandler) RegisterRoutes(router gin.IRouter) {
	books := router.Group("/livres")
	{
		books.GET("", h.ListBooks)
		books.POST("", h.CreateBook)
		books.GET("/:id", h.GetBook)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

// ListBooks - GET /livres
// @Summary  List all books
// @Tags     Catalog
// @Router   /livres [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, books)
}

// GetBook - GET /livres/:id
// @Summary  Get a book by id
// @Tags     Catalog
// @Router   /livres/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "book id must be a positive integer")
		return
	}

	b, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// CreateBook - POST /livres
// @Summary  Create a book (title and author required)
// @Tags     Catalog
// @Router   /livres [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req book.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/livres/"+strconv.FormatInt(b.ID, 10))
	response.Success(c, http.StatusCreated, b)
}

// UpdateBook - PUT /livres/:id (partial)
// @Summary  Update title, author and/or year of a book
// @Tags     Catalog
// @Router   /livres/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "book id must be a positive integer")
		return
	}

	var req book.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	b, err := h.service.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// DeleteBook - DELETE /livres/:id
// @Summary  Delete a book
// @Tags     Catalog
// @Router   /livres/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "book id must be a positive integer")
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// handleError map domain errors thành HTTP status codes
func (h *BookHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, book.ErrInvalidInput):
		response.BadRequest(c, err.Error())

	case errors.Is(err, book.ErrBookNotFound):
		response.NotFound(c, err.Error())

	// không expose chi tiết lỗi datastore
	default:
		response.InternalServerError(c, "Internal server error")
	}
}
