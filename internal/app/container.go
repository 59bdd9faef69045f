package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/api"
	"github.com/nekogravitycat/hotel-ops-backend/internal/auth"
	"github.com/nekogravitycat/hotel-ops-backend/internal/availability"
	"github.com/nekogravitycat/hotel-ops-backend/internal/frontdesk"
	"github.com/nekogravitycat/hotel-ops-backend/internal/housekeeping"
	"github.com/nekogravitycat/hotel-ops-backend/internal/invoice"
	"github.com/nekogravitycat/hotel-ops-backend/internal/notification"
	"github.com/nekogravitycat/hotel-ops-backend/internal/payment"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/daterange"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/events"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/storage"
	"github.com/nekogravitycat/hotel-ops-backend/internal/report"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
	"github.com/nekogravitycat/hotel-ops-backend/internal/sysconfig"
	"github.com/nekogravitycat/hotel-ops-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	FilesDir     string
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	PaystackBaseURL string
	SendGridBaseURL string
	MailFrom        string
	PDFRendererURL  string

	DBPool      *pgxpool.Pool
	MongoDB     *mongo.Database
	ConfigCache sysconfig.Cache
	Storage     storage.Storage
	Publisher   events.Publisher
	HTTPClient  *http.Client
	Log         *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router        *gin.Engine
	JWTManager    *auth.JWTManager
	ConfigService sysconfig.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	resolver := daterange.NewResolver(nil)

	// Relational modules
	userService := user.NewService(user.NewPgxRepository(cfg.DBPool), passwordHasher, cfg.Log)
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo)
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	reservationService := reservation.NewService(reservationRepo)
	availabilityService := availability.NewService(availability.NewStoreProvider(roomRepo, reservationRepo))

	// System configuration
	configService := sysconfig.NewService(
		sysconfig.NewMongoRepository(cfg.MongoDB),
		cfg.ConfigCache,
		cfg.Storage,
		storage.NewImageProcessor(),
		cfg.Publisher,
		cfg.Log,
	)

	// Notifications
	mailer := notification.NewSendGridMailer(cfg.HTTPClient, cfg.SendGridBaseURL, cfg.MailFrom, configService)
	notificationService, err := notification.NewService(mailer, configService, reservationService, roomService, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init notification service: %w", err)
	}

	// Payments and reports
	paymentRepo := payment.NewMongoRepository(cfg.MongoDB)
	reportService := report.NewService(paymentRepo, reservationService, roomService, resolver)

	// Invoices
	compressor, err := invoice.NewCompressor()
	if err != nil {
		return nil, fmt.Errorf("init invoice compressor: %w", err)
	}
	invoiceService, err := invoice.NewService(invoice.Deps{
		Repo:         invoice.NewMongoRepository(cfg.MongoDB),
		Reservations: reservationService,
		Payments:     paymentRepo,
		Rooms:        roomService,
		Reports:      reportService,
		Notifier:     notificationService,
		Config:       configService,
		Storage:      cfg.Storage,
		Renderer:     invoice.NewGotenbergRenderer(cfg.HTTPClient, cfg.PDFRendererURL),
		Compressor:   compressor,
		Log:          cfg.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("init invoice service: %w", err)
	}

	paymentService := payment.NewService(
		paymentRepo,
		payment.NewPaystackGateway(cfg.HTTPClient, cfg.PaystackBaseURL, configService),
		reservationService,
		invoiceService,
		notificationService,
		cfg.Publisher,
		cfg.Log,
	)

	// Operations
	housekeepingService := housekeeping.NewService(
		housekeeping.NewMongoRepository(cfg.MongoDB),
		roomService,
		userService,
		notificationService,
		cfg.Publisher,
		cfg.Log,
	)
	frontDeskService := frontdesk.NewService(
		frontdesk.NewPgxRepository(cfg.DBPool),
		reservationService,
		roomService,
		housekeepingService,
		notificationService,
		cfg.Publisher,
		cfg.Log,
	)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		FilesDir:            cfg.FilesDir,
		Log:                 cfg.Log,
		UserService:         userService,
		RoomService:         roomService,
		ReservationService:  reservationService,
		AvailabilityService: availabilityService,
		PaymentService:      paymentService,
		ReportService:       reportService,
		ConfigService:       configService,
		NotificationService: notificationService,
		InvoiceService:      invoiceService,
		HousekeepingService: housekeepingService,
		FrontDeskService:    frontDeskService,
		JWTManager:          jwtManager,
	})

	return &Container{
		Router:        router,
		JWTManager:    jwtManager,
		ConfigService: configService,
	}, nil
}
