package bootstrap

import (
	"context"
	"log"
	"time"

	"mentoring-marketplace-be/internal/config"
	"mentoring-marketplace-be/internal/controller"
	"mentoring-marketplace-be/internal/handler"
	"mentoring-marketplace-be/internal/pkg/lock"
	"mentoring-marketplace-be/internal/pkg/logger"
	"mentoring-marketplace-be/internal/pkg/mailer"
	"mentoring-marketplace-be/internal/repository/unitofwork"
	"mentoring-marketplace-be/internal/service"
	"mentoring-marketplace-be/pkg/meeting"

	pktNats "mentoring-marketplace-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	MentoringController controller.IMentoringController
	ClassController     controller.IClassController
	PaymentController   controller.IPaymentController

	// Notification REST surface
	NotificationHandler *handler.NotificationHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService       service.IConsumerService
	AutoTransitionService service.IAutoTransitionService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS: the app runs fine without it, external consumers just miss events.
	var externalPub service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		externalPub = natsPub
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
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}
	sweepLock := lock.NewSweepLock(rdb, "mentoring:auto-transition:sweep", 2*time.Minute)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.ClassEventsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.ClassEventsTopic,
		uowFactory,
		emailService,
		sysLogger,
	)

	meetingProvider := meeting.NewRoomProvider(cfg.App.MeetingBaseURL)

	notificationService := service.NewNotificationService(uowFactory, sysLogger)
	autoTransitionService := service.NewAutoTransitionService(
		uowFactory,
		notificationService,
		publisherService,
		externalPub,
		sweepLock,
		sysLogger,
		nil, // wall clock
	)
	classService := service.NewClassService(
		uowFactory,
		notificationService,
		meetingProvider,
		publisherService,
		externalPub,
		sysLogger,
	)
	paymentService := service.NewPaymentService(
		uowFactory,
		notificationService,
		publisherService,
		externalPub,
		sysLogger,
		cfg.Payment.MidtransServerKey,
		cfg.Payment.Production,
	)

	return &Container{
		MentoringController: controller.NewMentoringController(autoTransitionService),
		ClassController:     controller.NewClassController(classService),
		PaymentController:   controller.NewPaymentController(paymentService),
		NotificationHandler: handler.NewNotificationHandler(notificationService, sysLogger),

		ConsumerService:       consumerService,
		AutoTransitionService: autoTransitionService,

		Logger: sysLogger,
	}
}
