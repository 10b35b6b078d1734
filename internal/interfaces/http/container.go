package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fixdesk/fixdesk/internal/infrastructure/auth"
	"github.com/fixdesk/fixdesk/internal/infrastructure/cache"
	"github.com/fixdesk/fixdesk/internal/infrastructure/config"
	"github.com/fixdesk/fixdesk/internal/infrastructure/metrics"
	"github.com/fixdesk/fixdesk/internal/infrastructure/permission"
	"github.com/fixdesk/fixdesk/internal/infrastructure/storage"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/middleware"
	"github.com/fixdesk/fixdesk/internal/shared/goroutine"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It wires everything together and owns the resources released by
// Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client // nil when redis is disabled

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter // nil when rate limiting is off

	// Infrastructure services
	jwtSvc       *auth.JWTService
	hasher       *auth.BcryptPasswordHasher
	sessionStore *cache.RedisSessionStore
	enforcer     *permission.Enforcer
	recorder     *metrics.Recorder
	fileStore    *storage.LocalFileStore
	runner       *goroutine.Runner
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, repositories, auth, metrics, storage
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Use cases
	c.initUseCases()

	// Section 3: Handlers and middlewares
	c.initHandlers()

	return c, nil
}
