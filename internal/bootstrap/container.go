package bootstrap

import (
	"context"
	"log"

	"procureflow-be/internal/config"
	"procureflow-be/internal/controller"
	"procureflow-be/internal/handler"
	"procureflow-be/internal/pkg/logger"
	"procureflow-be/internal/pkg/mailer"
	"procureflow-be/internal/repository/unitofwork"
	"procureflow-be/internal/service"
	"procureflow-be/internal/websocket"
	"procureflow-be/pkg/settlement"

	pktNats "procureflow-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController            controller.IAuthController
	UserController            controller.IUserController
	RoleController            controller.IRoleController
	PaymentController         controller.IPaymentController
	FraudController           controller.IFraudController
	ProcurementController     controller.IProcurementController
	PurchaseRequestController controller.IPurchaseRequestController
	RevenueController         controller.IRevenueController
	NotificationController    controller.INotificationController
	AuditController           controller.IAuditController
	AnalyticsController       controller.IAnalyticsController
	AttachmentController      controller.IAttachmentController

	// Background Services (Exposed for main.go to run)
	FraudService service.IFraudService

	// WebSockets & Notification
	WsHandler    *handler.WsHandler
	WebSocketHub *websocket.Hub
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
		cfg.SMTP.SenderName,
	)

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
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Settlement rails. The check rail clears through the same bank backend
	// as plain transfers.
	registry := settlement.NewRegistry()
	bank := settlement.NewBankAdapter(cfg.Payments.BankName)
	registry.Register("bank_transfer", bank)
	registry.Register("check", bank)
	registry.Register("airtel_money", settlement.NewMobileMoneyAdapter("airtel"))
	registry.Register("tnm_mobile", settlement.NewMobileMoneyAdapter("tnm"))

	// 3. Services
	var eventPublisher service.IEventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	auditService := service.NewAuditService(uowFactory, sysLogger)
	authzService := service.NewAuthorizationService(uowFactory, sysLogger)
	authService := service.NewAuthService(uowFactory, auditService, &cfg.Auth, sysLogger)
	userService := service.NewUserService(uowFactory, auditService, sysLogger)
	roleService := service.NewRoleService(uowFactory, auditService, sysLogger)

	paymentService := service.NewPaymentService(uowFactory, registry, eventPublisher, pubSub, sysLogger)
	fraudService := service.NewFraudService(uowFactory, pubSub, eventPublisher, emailService, cfg.SMTP.FraudRecipient, sysLogger)

	procurementService := service.NewProcurementService(uowFactory, auditService, sysLogger)
	purchaseRequestService := service.NewPurchaseRequestService(uowFactory, auditService, eventPublisher, sysLogger)
	revenueService := service.NewRevenueService(uowFactory, auditService, sysLogger)
	analyticsService := service.NewAnalyticsService(uowFactory, sysLogger)
	attachmentService := service.NewAttachmentService(uowFactory, auditService, cfg.App.UploadDir, sysLogger)

	// 3.5 Notification System
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	wsHandler := handler.NewWsHandler(wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:            controller.NewAuthController(authService),
		UserController:            controller.NewUserController(userService, authzService),
		RoleController:            controller.NewRoleController(roleService, authzService),
		PaymentController:         controller.NewPaymentController(paymentService, authzService),
		FraudController:           controller.NewFraudController(fraudService, authzService),
		ProcurementController:     controller.NewProcurementController(procurementService, authzService),
		PurchaseRequestController: controller.NewPurchaseRequestController(purchaseRequestService, authzService),
		RevenueController:         controller.NewRevenueController(revenueService, authzService),
		NotificationController:    controller.NewNotificationController(notifService),
		AuditController:           controller.NewAuditController(auditService, authzService),
		AnalyticsController:       controller.NewAnalyticsController(analyticsService, authzService),
		AttachmentController:      controller.NewAttachmentController(attachmentService, authzService),

		FraudService: fraudService,

		WsHandler:    wsHandler,
		WebSocketHub: wsHub,
	}
}
