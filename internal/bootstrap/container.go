package bootstrap

import (
	"context"
	"log"

	"conote-be/internal/access"
	"conote-be/internal/config"
	"conote-be/internal/controller"
	"conote-be/internal/handler"
	"conote-be/internal/pkg/logger"
	"conote-be/internal/pkg/messenger"
	"conote-be/internal/pkg/serverutils"
	"conote-be/internal/repository/unitofwork"
	"conote-be/internal/service"
	"conote-be/internal/websocket"

	pktNats "conote-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	NotebookController controller.INotebookController
	NoteController     controller.INoteController
	BookmarkController controller.IBookmarkController
	CommentController  controller.ICommentController

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Background services (exposed for main.go to run)
	NotificationRouter service.INotificationRouter
	DeliveryWorker     service.IDeliveryWorker
	CommentBroadcaster service.ICommentBroadcaster

	// Shared infrastructure, closed on shutdown
	EventBus      service.IEventBusService
	NatsPublisher *pktNats.Publisher
	NatsSub       *pktNats.Subscriber
	Logger        logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	evaluator := access.NewEvaluator(uowFactory)

	instanceId := cfg.App.InstanceId
	if instanceId == "" {
		instanceId = uuid.NewString()
	}

	// 2. Event bus
	eventBus := service.NewEventBusService()

	// 2.5 Infrastructure
	// NATS (optional mirror/relay; everything works without it)
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL, instanceId)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL, instanceId)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
			natsSub = nil
		}
	}

	// Redis (optional cross-instance websocket fan-out)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
			rdb = nil
		}
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Outbound delivery
	emailSender := messenger.NewEmailSender(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
	)
	smsSender := messenger.NewSmsSender(cfg.Sms.GatewayURL, cfg.Sms.ApiKey)
	dispatcher := messenger.NewDispatcher(emailSender, smsSender)

	// 3. Services
	authMiddleware := serverutils.NewPrincipalMiddleware(uowFactory)

	authService := service.NewAuthService(uowFactory)
	notebookService := service.NewNotebookService(uowFactory, evaluator, eventBus, natsPub, sysLogger)
	noteService := service.NewNoteService(uowFactory, evaluator)
	bookmarkService := service.NewBookmarkService(uowFactory, evaluator)
	commentService := service.NewCommentService(uowFactory, evaluator, eventBus, natsPub, instanceId, sysLogger)
	notificationService := service.NewNotificationService(uowFactory)

	// Background consumers
	notificationRouter := service.NewNotificationRouter(eventBus, uowFactory, wsLogger)
	deliveryWorker := service.NewDeliveryWorker(eventBus, dispatcher, wsLogger)
	commentBroadcaster := service.NewCommentBroadcaster(eventBus, wsHub, wsLogger)

	if natsSub != nil {
		relay := service.NewCommentRelay(natsSub, eventBus, wsLogger)
		if err := relay.Start(instanceId); err != nil {
			log.Printf("[WARN] Failed to start comment relay: %v", err)
		}
	}

	// 4. Handlers & controllers
	notifHandler := handler.NewNotificationHandler(notificationService, wsHub, authMiddleware, wsLogger)

	return &Container{
		AuthController:     controller.NewAuthController(authService, authMiddleware),
		NotebookController: controller.NewNotebookController(notebookService, authMiddleware),
		NoteController:     controller.NewNoteController(noteService, authMiddleware),
		BookmarkController: controller.NewBookmarkController(bookmarkService, authMiddleware),
		CommentController:  controller.NewCommentController(commentService, authMiddleware),

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		NotificationRouter: notificationRouter,
		DeliveryWorker:     deliveryWorker,
		CommentBroadcaster: commentBroadcaster,

		EventBus:      eventBus,
		NatsPublisher: natsPub,
		NatsSub:       natsSub,
		Logger:        sysLogger,
	}
}
