package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bookstore-microservices/internal/domains/user"
	"bookstore-microservices/pkg/cache"
	"bookstore-microservices/pkg/logger"
)

// userService implement user.Service interface
type userService struct {
	repo       user.Repository
	cache      cache.Cache
	cacheTTL   time.Duration
	bcryptCost int
}

// NewUserService: cacheTTL <= 0 tắt cache cho GetUser
func NewUserService(repo user.Repository, c cache.Cache, cacheTTL time.Duration, bcryptCost int) user.Service {
	return &userService{
		repo:       repo,
		cache:      c,
		cacheTTL:   cacheTTL,
		bcryptCost: bcryptCost,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo user mới
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	// 1. VALIDATE INPUT
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", user.ErrInvalidInput, err)
	}

	// 2. BUSINESS RULE: email là duy nhất
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		logger.ErrorFields("check email failed", err, map[string]interface{}{"op": "Register", "email": req.Email})
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		logger.Warn("email already registered", map[string]interface{}{"op": "Register", "email": req.Email})
		return nil, user.ErrEmailAlreadyExists
	}

	// 3. HASH PASSWORD (bcrypt tự sinh salt)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. PERSIST
	newUser := &user.User{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Name:         req.Name,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return nil, err
		}
		logger.ErrorFields("create user failed", err, map[string]interface{}{"op": "Register", "email": req.Email})
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user registered", map[string]interface{}{"user_id": newUser.ID})

	// 5. RETURN DTO (không expose password)
	dto := newUser.ToDTO()
	return &dto, nil
}

// Login xác thực email + password, không phát hành token
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", user.ErrInvalidInput, err)
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Không tiết lộ email có tồn tại hay không
			logger.Warn("login rejected", map[string]interface{}{"op": "Login", "email": req.Email})
			return nil, user.ErrInvalidCredentials
		}
		logger.ErrorFields("find user failed", err, map[string]interface{}{"op": "Login", "email": req.Email})
		return nil, err
	}

	// bcrypt.CompareHashAndPassword là constant-time comparison
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("login rejected", map[string]interface{}{"op": "Login", "email": req.Email})
		return nil, user.ErrInvalidCredentials
	}

	return &user.LoginResponse{
		Message: "Login successful",
		User:    u.ToDTO(),
	}, nil
}

// ========================================
// LOOKUP
// ========================================

// GetUser - Cache-Aside trên DTO công khai (không cache password hash)
func (s *userService) GetUser(ctx context.Context, id int64) (*user.UserDTO, error) {
	cacheKey := user.CacheKey(id)

	if s.cacheTTL > 0 {
		var cached user.UserDTO
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			logger.Warn("user not found", map[string]interface{}{"op": "GetUser", "user_id": id})
			return nil, err
		}
		logger.ErrorFields("find user failed", err, map[string]interface{}{"op": "GetUser", "user_id": id})
		return nil, err
	}

	dto := u.ToDTO()
	if s.cacheTTL > 0 {
		_ = s.cache.Set(ctx, cacheKey, dto, s.cacheTTL)
	}
	return &dto, nil
}
