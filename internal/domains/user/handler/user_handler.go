package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore-microservices/internal/domains/user"
	"bookstore-microservices/internal/shared/response"
	"bookstore-microservices/internal/shared/utils"
)

// UserHandler xử lý HTTP requests cho account service
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers account routes
func (h *UserHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.GET("/users/:id", h.GetUser)
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register xử lý POST /register
// @Summary      Register new user
// @Tags         Account
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := h.bind(c, &req); err != nil {
		return
	}

	userDTO, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/users/"+strconv.FormatInt(userDTO.ID, 10))
	response.Success(c, http.StatusCreated, userDTO)
}

// Login xử lý POST /login
// @Summary      Verify email and password
// @Tags         Account
// @Router       /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := h.bind(c, &req); err != nil {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// ========================================
// USER ENDPOINTS
// ========================================

// GetUser xử lý GET /users/:id
// @Summary      Get a user by id
// @Tags         Account
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "user id must be a positive integer")
		return
	}

	userDTO, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, userDTO)
}

// handleError map domain errors thành HTTP status codes
func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	// 400 Bad Request
	case errors.Is(err, user.ErrInvalidInput):
		response.BadRequest(c, err.Error())

	// 401 Unauthorized - một message duy nhất cho email sai và password sai
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, user.ErrInvalidCredentials.Error())

	// 404 Not Found
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())

	// 409 Conflict
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())

	default:
		response.InternalServerError(c, "Internal server error")
	}
}

func (h *UserHandler) bind(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return err
	}
	return nil
}
