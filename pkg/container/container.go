package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookstore-microservices/internal/config"
	infraCache "bookstore-microservices/internal/infrastructure/cache"
	"bookstore-microservices/internal/infrastructure/database"
	"bookstore-microservices/pkg/cache"
	"bookstore-microservices/pkg/logger"
	"bookstore-microservices/pkg/metrics"
)

// ========================================
// INFRASTRUCTURE LAYER
// ========================================

// Infra chứa các thành phần hạ tầng mà mỗi service đều có.
// Thứ tự khởi tạo: database -> migrations -> cache -> metrics.
// Repositories, services, handlers được dựng trong container riêng của từng service.
type Infra struct {
	Common  config.Common
	DB      *database.PostgresDB
	Cache   cache.Cache
	Metrics *metrics.Metrics

	redis *infraCache.RedisCache
}

func newInfra(service, schema string, common config.Common) (*Infra, error) {
	in := &Infra{Common: common}

	// ----------------------------------------
	// DATABASE
	// ----------------------------------------
	logger.Info("connecting to PostgreSQL", map[string]interface{}{
		"host": common.Database.Host, "database": common.Database.Name,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(common.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	in.DB = db

	if err := db.RunMigrations(ctx, schema); err != nil {
		in.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// ----------------------------------------
	// CACHE
	// ----------------------------------------
	// Redis không critical: lỗi kết nối -> chạy không cache
	in.Cache = cache.NewNoop()
	if common.Redis.Enabled {
		rc := infraCache.NewRedisCache(common.Redis.Addr, common.Redis.Password, common.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			logger.Warn("redis unavailable, running without cache", map[string]interface{}{"error": err.Error()})
			_ = rc.Close()
		} else {
			in.redis = rc
			in.Cache = rc
		}
	}

	in.Metrics = metrics.New(service)
	return in, nil
}

// ========================================
// HEALTH
// ========================================

// Health trả về trạng thái database + redis; database lỗi -> 503
func (in *Infra) Health(ctx context.Context) (int, gin.H) {
	dbStatus := "ok"
	if err := in.DB.HealthCheck(ctx); err != nil {
		dbStatus = fmt.Sprintf("error: %v", err)
	}

	redisStatus := "disabled"
	if in.redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		redisStatus = "ok"
		if err := in.redis.Ping(pingCtx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}
	}

	body := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   in.Common.App.Version,
		"services": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	}

	if dbStatus != "ok" {
		body["status"] = "degraded"
		return http.StatusServiceUnavailable, body
	}
	return http.StatusOK, body
}

// Cleanup dọn dẹp resources khi shutdown
func (in *Infra) Cleanup() {
	if in.DB != nil {
		in.DB.Close()
		logger.Info("database connections closed", nil)
	}
	if in.redis != nil {
		if err := in.redis.Close(); err != nil {
			logger.Error("failed to close redis", err)
		} else {
			logger.Info("redis connections closed", nil)
		}
	}
}
