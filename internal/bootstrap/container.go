package bootstrap

import (
	"context"
	"log"

	"ai-courselab-be/internal/config"
	"ai-courselab-be/internal/controller"
	"ai-courselab-be/internal/handler"
	"ai-courselab-be/internal/pkg/logger"
	"ai-courselab-be/internal/repository/contract"
	"ai-courselab-be/internal/repository/memory"
	"ai-courselab-be/internal/repository/redisrepo"
	"ai-courselab-be/internal/repository/unitofwork"
	"ai-courselab-be/internal/service"
	"ai-courselab-be/internal/websocket"
	pktNats "ai-courselab-be/pkg/nats"
	"ai-courselab-be/pkg/scribo"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CourseController controller.ICourseController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	RoomHandler  *handler.RoomHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	redisUp := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		redisUp = false
	}

	// Draft cache: Redis when available so every instance sees the same
	// room state, in-process fallback otherwise.
	var draftRepo contract.DraftRepository
	if redisUp {
		draftRepo = redisrepo.NewDraftRepository(rdb, cfg.Draft.TTL, sysLogger)
		log.Printf("[INFO] Using draft cache: REDIS (ttl %s)", cfg.Draft.TTL)
	} else {
		draftRepo = memory.NewDraftRepository(cfg.Draft.TTL, cfg.Draft.PurgeInterval)
		log.Printf("[INFO] Using draft cache: MEMORY (ttl %s)", cfg.Draft.TTL)
	}

	// WebSocket Hub
	roomLogger := logger.NewIsolatedLogger("logs/rooms.log")
	wsHub := websocket.NewHub(rdb, roomLogger)
	go wsHub.Run()

	// Generation backend
	generator := scribo.NewClient(cfg.Scribo.BaseURL, cfg.Scribo.Timeout)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Scribo.PageTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Scribo.PageTopic,
		uowFactory,
		generator,
		cfg.Scribo.Timeout,
	)

	courseService := service.NewCourseService(uowFactory, generator, publisherService, natsPub)
	pageService := service.NewPageService(uowFactory, courseService)
	roomService := service.NewRoomService(
		draftRepo,
		courseService,
		pageService,
		generator,
		wsHub,
		roomLogger,
		cfg.Scribo.Timeout,
		cfg.Database.Timeout,
	)

	// Handler
	roomHandler := handler.NewRoomHandler(wsHub, roomService, roomLogger)

	// 4. Controllers
	return &Container{
		CourseController: controller.NewCourseController(courseService, pageService),

		RoomHandler:  roomHandler,
		WebSocketHub: wsHub,

		ConsumerService: consumerService,
	}
}
