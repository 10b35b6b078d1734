package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	notificationUsecases "github.com/fixdesk/fixdesk/internal/application/notification/usecases"
	ticketdto "github.com/fixdesk/fixdesk/internal/application/ticket/dto"
	ticketUsecases "github.com/fixdesk/fixdesk/internal/application/ticket/usecases"
	uploadUsecases "github.com/fixdesk/fixdesk/internal/application/upload/usecases"
	"github.com/fixdesk/fixdesk/internal/application/user/usecases"
	"github.com/fixdesk/fixdesk/internal/infrastructure/auth"
	"github.com/fixdesk/fixdesk/internal/infrastructure/cache"
	"github.com/fixdesk/fixdesk/internal/infrastructure/config"
	"github.com/fixdesk/fixdesk/internal/infrastructure/email"
	"github.com/fixdesk/fixdesk/internal/infrastructure/metrics"
	"github.com/fixdesk/fixdesk/internal/infrastructure/permission"
	"github.com/fixdesk/fixdesk/internal/infrastructure/ratelimit"
	"github.com/fixdesk/fixdesk/internal/infrastructure/storage"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/handlers"
	ticketHandlers "github.com/fixdesk/fixdesk/internal/interfaces/http/handlers/ticket"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/middleware"
	shareddb "github.com/fixdesk/fixdesk/internal/shared/db"
	"github.com/fixdesk/fixdesk/internal/shared/goroutine"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
	"github.com/fixdesk/fixdesk/internal/shared/services/markdown"
)

const (
	redisKeyPrefix    = "fixdesk:"
	redisPingTimeout  = 5 * time.Second
	defaultRateWindow = 60
)

// ============================================================
// Section 1: Infrastructure
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
		c.sessionStore = cache.NewRedisSessionStore(client, redisKeyPrefix+"session:")
	}

	c.repos = newRepositories(c.db, log)

	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.SessionTTL())
	c.recorder = metrics.NewRecorder()
	c.runner = goroutine.NewRunner(log)

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to init permission enforcer: %w", err)
	}
	if err := permission.SeedDefaultPolicies(enforcer, log); err != nil {
		return fmt.Errorf("failed to seed permission policies: %w", err)
	}
	c.enforcer = enforcer

	store, err := storage.NewLocalFileStore(cfg.Upload.Dir, cfg.Upload.PublicPrefix, cfg.Upload.MaxFileSize)
	if err != nil {
		return fmt.Errorf("failed to init upload store: %w", err)
	}
	c.fileStore = store

	return nil
}

func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// ============================================================
// Section 2: Use cases
// ============================================================

func (c *Container) initUseCases() {
	cfg := c.cfg
	log := c.log
	repos := c.repos

	txMgr := shareddb.NewTransactionManager(c.db)
	projector := ticketdto.NewProjector(markdown.NewMarkdownService())

	notifier := notificationUsecases.NewNotifier(repos.notificationRepo, repos.userRepo, log).
		WithMetrics(c.recorder)
	if cfg.Notification.Email.Enabled {
		emailCfg := cfg.Notification.Email
		notifier.WithEmail(email.NewSMTPEmailService(email.SMTPConfig{
			Host:        emailCfg.SMTPHost,
			Port:        emailCfg.SMTPPort,
			Username:    emailCfg.SMTPUser,
			Password:    emailCfg.SMTPPassword,
			FromAddress: emailCfg.FromAddress,
			FromName:    emailCfg.FromName,
			BaseURL:     cfg.Server.BaseURL,
		}), c.runner)
		log.Infow("notification email channel enabled", "smtp_host", emailCfg.SMTPHost)
	}

	// a nil *RedisSessionStore must not become a non-nil interface
	var revoker usecases.SessionRevoker
	if c.sessionStore != nil {
		revoker = c.sessionStore
	}

	c.ucs = &allUseCases{
		registerUC:        usecases.NewRegisterUseCase(repos.userRepo, c.hasher, log),
		loginUC:           usecases.NewLoginUseCase(repos.userRepo, c.hasher, c.jwtSvc, log),
		logoutUC:          usecases.NewLogoutUseCase(revoker, log),
		listUsersByRoleUC: usecases.NewListUsersByRoleUseCase(repos.userRepo, log),

		createTicketUC: ticketUsecases.NewCreateTicketUseCase(
			repos.ticketRepo, repos.activityLogRepo, repos.userRepo, txMgr, notifier, projector, c.recorder, log),
		assignTicketUC: ticketUsecases.NewAssignTicketUseCase(
			repos.ticketRepo, repos.activityLogRepo, repos.userRepo, txMgr, notifier, projector, c.recorder, log),
		updateStatusUC: ticketUsecases.NewUpdateStatusUseCase(
			repos.ticketRepo, repos.activityLogRepo, repos.userRepo, txMgr, notifier, projector, c.recorder, log),
		addNoteUC: ticketUsecases.NewAddNoteUseCase(
			repos.ticketRepo, repos.activityLogRepo, repos.userRepo, txMgr, c.recorder, log),
		getTicketUC: ticketUsecases.NewGetTicketUseCase(
			repos.ticketRepo, repos.activityLogRepo, repos.userRepo, projector, log),
		listTicketsUC: ticketUsecases.NewListTicketsUseCase(repos.ticketRepo, repos.userRepo, projector, log),
		getMetricsUC:  ticketUsecases.NewGetMetricsUseCase(repos.ticketRepo, log),

		listNotificationsUC: notificationUsecases.NewListNotificationsUseCase(
			repos.notificationRepo, cfg.Notification.ListLimit, log),
		markAllReadUC: notificationUsecases.NewMarkAllReadUseCase(repos.notificationRepo, log),

		uploadImagesUC: uploadUsecases.NewUploadImagesUseCase(
			c.fileStore, cfg.Upload.MaxFiles, cfg.Upload.MaxFileSize, log),
	}
}

// ============================================================
// Section 3: Handlers and middlewares
// ============================================================

func (c *Container) initHandlers() {
	cfg := c.cfg
	log := c.log
	ucs := c.ucs

	var revocations middleware.RevocationChecker
	if c.sessionStore != nil {
		revocations = c.sessionStore
	}
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, revocations, cfg.Auth.Cookie, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)

	if cfg.RateLimit.Enabled {
		if c.redis == nil {
			log.Warnw("rate limiting requires redis, requests will not be limited")
		} else {
			window := cfg.RateLimit.Window
			if window <= 0 {
				window = defaultRateWindow
			}
			c.rateLimiter = middleware.NewRateLimiter(
				ratelimit.NewRedisRateLimiter(c.redis, redisKeyPrefix+"ratelimit:"),
				ratelimit.Rule{Limit: cfg.RateLimit.Requests, Window: time.Duration(window) * time.Second},
				log,
			)
		}
	}

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(
			ucs.registerUC, ucs.loginUC, ucs.logoutUC, c.authMiddleware, cfg.Auth.Cookie, log),
		userHandler:   handlers.NewUserHandler(ucs.listUsersByRoleUC, log),
		uploadHandler: handlers.NewUploadHandler(ucs.uploadImagesUC, log),
		ticketHandler: ticketHandlers.NewTicketHandler(
			ucs.createTicketUC,
			ucs.assignTicketUC,
			ucs.updateStatusUC,
			ucs.addNoteUC,
			ucs.getTicketUC,
			ucs.listTicketsUC,
			ucs.getMetricsUC,
			log,
		),
		notificationHandler: handlers.NewNotificationHandler(ucs.listNotificationsUC, ucs.markAllReadUC, log),
	}
}
