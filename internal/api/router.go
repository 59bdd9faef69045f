package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/auth"
	"github.com/nekogravitycat/hotel-ops-backend/internal/availability"
	availabilityHttp "github.com/nekogravitycat/hotel-ops-backend/internal/availability/http"
	"github.com/nekogravitycat/hotel-ops-backend/internal/frontdesk"
	frontdeskHttp "github.com/nekogravitycat/hotel-ops-backend/internal/frontdesk/http"
	"github.com/nekogravitycat/hotel-ops-backend/internal/housekeeping"
	housekeepingHttp "github.com/nekogravitycat/hotel-ops-backend/internal/housekeeping/http"
	"github.com/nekogravitycat/hotel-ops-backend/internal/invoice"
	invoiceHttp "github.com/nekogravitycat/hotel-ops-backend/internal/invoice/http"
	"github.com/nekogravitycat/hotel-ops-backend/internal/notification"
	notificationHttp "github.com/nekogravitycat/hotel-ops-backend/internal/notification/http"
	"github.com/nekogravitycat/hotel-ops-backend/internal/payment"
	paymentHttp "github.com/nekogravitycat/hotel-ops-backend/internal/payment/http"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/logger"
	"github.com/nekogravitycat/hotel-ops-backend/internal/report"
	reportHttp "github.com/nekogravitycat/hotel-ops-backend/internal/report/http"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
	reservationHttp "github.com/nekogravitycat/hotel-ops-backend/internal/reservation/http"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
	roomHttp "github.com/nekogravitycat/hotel-ops-backend/internal/room/http"
	"github.com/nekogravitycat/hotel-ops-backend/internal/sysconfig"
	sysconfigHttp "github.com/nekogravitycat/hotel-ops-backend/internal/sysconfig/http"
	"github.com/nekogravitycat/hotel-ops-backend/internal/user"
	userHttp "github.com/nekogravitycat/hotel-ops-backend/internal/user/http"
)

// Config holds everything the router needs to register the modules.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	// FilesDir is served under /files when objects are stored on local disk.
	FilesDir string
	Log      *zap.Logger

	UserService         user.Service
	RoomService         room.Service
	ReservationService  reservation.Service
	AvailabilityService availability.Service
	PaymentService      payment.Service
	ReportService       report.Service
	ConfigService       sysconfig.Service
	NotificationService notification.Service
	InvoiceService      invoice.Service
	HousekeepingService housekeeping.Service
	FrontDeskService    frontdesk.Service
	JWTManager          *auth.JWTManager
}

// NewRouter assembles the global middleware and registers every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logger.RequestID(), logger.GinMiddleware(cfg.Log), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	if origins := splitOrigins(cfg.ProdOrigins); cfg.IsProduction && len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{logger.RequestIDHeader, "Content-Disposition"}
	r.Use(cors.New(corsConfig))

	if cfg.FilesDir != "" {
		r.Static("/files", cfg.FilesDir)
	}

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	roles := func(allowed ...user.Role) gin.HandlerFunc {
		return RequireRoles(cfg.UserService, allowed...)
	}

	superAdmin := roles(user.RoleSuperAdmin)
	managers := roles(user.RoleSuperAdmin, user.RoleManager)
	frontDesk := roles(user.RoleSuperAdmin, user.RoleManager, user.RoleFrontDesk)
	finance := roles(user.RoleSuperAdmin, user.RoleManager, user.RoleAccountant)
	housekeepers := roles(user.RoleSuperAdmin, user.RoleManager, user.RoleHousekeepingManager)
	taskReaders := roles(user.RoleSuperAdmin, user.RoleManager, user.RoleHousekeepingManager, user.RoleAccountant)
	staff := roles(
		user.RoleSuperAdmin, user.RoleManager, user.RoleAccountant,
		user.RoleFrontDesk, user.RoleHousekeepingManager, user.RoleStaff,
	)
	payers := roles(user.RoleSuperAdmin, user.RoleManager, user.RoleFrontDesk, user.RoleCustomer)
	invoiceReaders := roles(user.RoleSuperAdmin, user.RoleManager, user.RoleAccountant, user.RoleFrontDesk)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHttp.NewHandler(cfg.UserService, cfg.JWTManager), authMiddleware, superAdmin, managers)
		roomHttp.RegisterRoutes(v1, roomHttp.NewHandler(cfg.RoomService), authMiddleware, staff, housekeepers)
		reservationHttp.RegisterRoutes(v1, reservationHttp.NewHandler(cfg.ReservationService), authMiddleware, frontDesk)
		availabilityHttp.RegisterRoutes(v1, availabilityHttp.NewHandler(cfg.AvailabilityService), authMiddleware, frontDesk)
		paymentHttp.RegisterRoutes(v1, paymentHttp.NewHandler(cfg.PaymentService), authMiddleware, payers)
		reportHttp.RegisterRoutes(v1, reportHttp.NewHandler(cfg.ReportService), authMiddleware, finance)
		sysconfigHttp.RegisterRoutes(v1, sysconfigHttp.NewHandler(cfg.ConfigService), authMiddleware, superAdmin)
		notificationHttp.RegisterRoutes(v1, notificationHttp.NewHandler(cfg.NotificationService), authMiddleware, frontDesk)
		invoiceHttp.RegisterRoutes(v1, invoiceHttp.NewHandler(cfg.InvoiceService), authMiddleware, invoiceReaders, frontDesk, finance)
		housekeepingHttp.RegisterRoutes(v1, housekeepingHttp.NewHandler(cfg.HousekeepingService), authMiddleware, housekeepers, taskReaders)
		frontdeskHttp.RegisterRoutes(v1, frontdeskHttp.NewHandler(cfg.FrontDeskService), authMiddleware, frontDesk)
	}

	return r
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
