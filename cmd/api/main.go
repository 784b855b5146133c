package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/offloadr/connect-api/internal/api/http"
	"github.com/offloadr/connect-api/internal/api/http/handlers"
	"github.com/offloadr/connect-api/internal/auth"
	"github.com/offloadr/connect-api/internal/config"
	"github.com/offloadr/connect-api/internal/events"
	"github.com/offloadr/connect-api/internal/observability"
	"github.com/offloadr/connect-api/internal/persistence"
	"github.com/offloadr/connect-api/internal/realtime"
	"github.com/offloadr/connect-api/internal/repository"
	"github.com/offloadr/connect-api/internal/service"
	"github.com/offloadr/connect-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	workspaceRepo := repository.NewWorkspaceRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	hub := realtime.NewHub(redis.Handle(), logger)
	go hub.Run(ctx)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
		Redis:             redis.Handle(),
		Logger:            logger,
	})
	userService := service.NewUserService(userRepo)
	workspaceService := service.NewWorkspaceService(service.WorkspaceDependencies{
		WorkspaceRepo: workspaceRepo,
		TaskRepo:      taskRepo,
		UserRepo:      userRepo,
		Dispatcher:    dispatcher,
	})
	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:      taskRepo,
		WorkspaceRepo: workspaceRepo,
		Dispatcher:    dispatcher,
	})
	messageService := service.NewMessageService(service.MessageDependencies{
		MessageRepo:   messageRepo,
		WorkspaceRepo: workspaceRepo,
		UserRepo:      userRepo,
		Dispatcher:    dispatcher,
	})
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, hub, logger, cfg.Notify)

	worker.StartNotificationWorker(notificationService)
	worker.StartChangeFeedWorker(realtime.NewPublisher(hub, dispatcher))

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Workspaces:     handlers.NewWorkspacesHandler(workspaceService),
		Tasks:          handlers.NewTasksHandler(taskService),
		Messages:       handlers.NewMessagesHandler(messageService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Stream:         handlers.NewStreamHandler(hub, workspaceService, logger),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
