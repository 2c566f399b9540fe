package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evently-hq/event-management-backend/config"
	"github.com/evently-hq/event-management-backend/internal/announcement"
	"github.com/evently-hq/event-management-backend/internal/auditlog"
	"github.com/evently-hq/event-management-backend/internal/auth"
	"github.com/evently-hq/event-management-backend/internal/checkin"
	"github.com/evently-hq/event-management-backend/internal/coupon"
	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/internal/referral"
	"github.com/evently-hq/event-management-backend/internal/regfield"
	"github.com/evently-hq/event-management-backend/internal/registration"
	"github.com/evently-hq/event-management-backend/internal/reports"
	"github.com/evently-hq/event-management-backend/internal/session"
	"github.com/evently-hq/event-management-backend/internal/ticket"
	"github.com/evently-hq/event-management-backend/middleware"
	"gorm.io/gorm"

	_ "github.com/evently-hq/event-management-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps carries the services the route tree shares with main, so the
// kafka consumer can be started against the same instances.
type Deps struct {
	AuthRepo auth.Repository
	AuthSvc  auth.Service
	AuditSvc auditlog.Service
	RegRepo  *registration.Repository
	AnnRepo  *announcement.Repository
}

func Setup(r *gin.Engine, db *gorm.DB, cfg *config.Config) *Deps {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ========== Audit Log Module ==========
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.GET("/public-roles", authHandler.GetPublicRoles)
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// ========== Audit Logs (SuperAdmin Only) ==========
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RBACMiddleware("superadmin"))
	{
		auditRoutes.GET("/", auditHandler.GetAuditLogs)
		auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
	}

	// ========== Member Search (referral owner picker) ==========
	protected.GET("/members/search",
		middleware.RBACMiddleware("organizer", "staff", "superadmin"),
		authHandler.SearchMembers)

	// ========== Events ==========
	eventRepo := event.NewRepository(db)
	eventSvc := event.NewService(eventRepo, auditSvc)
	eventHandler := event.NewHandler(eventSvc)

	manageRoles := middleware.RBACMiddleware("organizer", "staff", "volunteer", "superadmin")

	eventRoutes := protected.Group("/events")
	eventRoutes.Use(manageRoles)
	{
		eventRoutes.POST("/", middleware.RequireManageAccess(), eventHandler.CreateEvent)
		eventRoutes.GET("/", eventHandler.ListEvents)
		eventRoutes.GET("/upcoming", eventHandler.GetUpcomingEvents)
		eventRoutes.GET("/stats", eventHandler.GetEventStats)
		eventRoutes.GET("/:event_id", eventHandler.GetEventByID)
		eventRoutes.PUT("/:event_id", middleware.RequireManageAccess(), eventHandler.UpdateEvent)
		eventRoutes.DELETE("/:event_id", middleware.RequireManageAccess(), eventHandler.DeleteEvent)
	}

	// ========== Registration Fields ==========
	fieldRepo := regfield.NewRepository(db)
	fieldSvc := regfield.NewService(fieldRepo, eventSvc, auditSvc)
	fieldHandler := regfield.NewHandler(fieldSvc)

	fieldRoutes := eventRoutes.Group("/:event_id/fields")
	{
		fieldRoutes.GET("/", fieldHandler.ListFields)
		fieldRoutes.POST("/", middleware.RequireManageAccess(), fieldHandler.CreateField)
		fieldRoutes.PATCH("/order", middleware.RequireManageAccess(), fieldHandler.ReorderFields)
		fieldRoutes.PUT("/:id", middleware.RequireManageAccess(), fieldHandler.UpdateField)
		fieldRoutes.DELETE("/:id", middleware.RequireManageAccess(), fieldHandler.DeleteField)
	}

	// ========== Sessions ==========
	sessionRepo := session.NewRepository(db)
	sessionSvc := session.NewService(sessionRepo, eventSvc, auditSvc)
	sessionHandler := session.NewHandler(sessionSvc)

	sessionRoutes := eventRoutes.Group("/:event_id/sessions")
	{
		sessionRoutes.GET("/", sessionHandler.ListSessions)
		sessionRoutes.POST("/", middleware.RequireManageAccess(), sessionHandler.CreateSession)
		sessionRoutes.PUT("/:id", middleware.RequireManageAccess(), sessionHandler.UpdateSession)
		sessionRoutes.DELETE("/:id", middleware.RequireManageAccess(), sessionHandler.DeleteSession)
	}

	// ========== Tickets ==========
	ticketRepo := ticket.NewRepository(db)
	ticketSvc := ticket.NewService(ticketRepo, eventSvc, auditSvc)
	ticketHandler := ticket.NewHandler(ticketSvc)

	ticketRoutes := eventRoutes.Group("/:event_id/tickets")
	{
		ticketRoutes.GET("/", ticketHandler.ListTickets)
		ticketRoutes.POST("/", middleware.RequireManageAccess(), ticketHandler.CreateTicket)
		ticketRoutes.PUT("/:id", middleware.RequireManageAccess(), ticketHandler.UpdateTicket)
		ticketRoutes.PATCH("/:id/toggle", middleware.RequireManageAccess(), ticketHandler.ToggleTicket)
		ticketRoutes.DELETE("/:id", middleware.RequireManageAccess(), ticketHandler.DeleteTicket)
	}

	// ========== Coupons ==========
	couponRepo := coupon.NewRepository(db)
	couponSvc := coupon.NewService(couponRepo, eventSvc, auditSvc)
	couponHandler := coupon.NewHandler(couponSvc)

	couponRoutes := eventRoutes.Group("/:event_id/coupons")
	{
		couponRoutes.GET("/", couponHandler.ListCoupons)
		couponRoutes.POST("/", middleware.RequireManageAccess(), couponHandler.CreateCoupon)
		couponRoutes.PUT("/:id", middleware.RequireManageAccess(), couponHandler.UpdateCoupon)
		couponRoutes.PATCH("/:id/toggle", middleware.RequireManageAccess(), couponHandler.ToggleCoupon)
		couponRoutes.DELETE("/:id", middleware.RequireManageAccess(), couponHandler.DeleteCoupon)
	}

	// ========== Referral Codes ==========
	referralRepo := referral.NewRepository(db)
	referralSvc := referral.NewService(referralRepo, eventSvc, authSvc, auditSvc)
	referralHandler := referral.NewHandler(referralSvc)

	referralRoutes := eventRoutes.Group("/:event_id/referrals")
	{
		referralRoutes.GET("/", referralHandler.ListReferrals)
		referralRoutes.GET("/stats", referralHandler.GetUsageStats)
		referralRoutes.POST("/", middleware.RequireManageAccess(), referralHandler.CreateReferral)
		referralRoutes.PUT("/:id", middleware.RequireManageAccess(), referralHandler.UpdateReferral)
		referralRoutes.PATCH("/:id/toggle", middleware.RequireManageAccess(), referralHandler.ToggleReferral)
		referralRoutes.DELETE("/:id", middleware.RequireManageAccess(), referralHandler.DeleteReferral)
	}

	// ========== Registrations ==========
	regRepo := registration.NewRepository(db)
	regSvc := registration.NewService(regRepo, eventRepo, ticketRepo, couponSvc, couponRepo,
		referralSvc, referralRepo, fieldSvc, authSvc, auditSvc, cfg)
	regHandler := registration.NewHandler(regSvc)

	// attendee-facing
	protected.POST("/events/:event_id/register", regHandler.Register)
	protected.POST("/registrations/verify-payment", regHandler.VerifyPayment)

	// organizer-facing list
	eventRoutes.GET("/:event_id/registrations", regHandler.ListRegistrations)

	// ========== Check-in ==========
	checkinSvc := checkin.NewService(regRepo, eventRepo, authSvc, auditSvc)
	checkinHandler := checkin.NewHandler(checkinSvc)

	checkinRoutes := eventRoutes.Group("/:event_id/checkin")
	{
		checkinRoutes.GET("/stats", checkinHandler.GetStats)
		checkinRoutes.POST("/qr", middleware.RequireManageAccess(), checkinHandler.CheckinByQR)
		checkinRoutes.POST("/otp/request", middleware.RequireManageAccess(), checkinHandler.RequestOTP)
		checkinRoutes.POST("/otp/verify", middleware.RequireManageAccess(), checkinHandler.VerifyOTP)
	}

	// ========== Announcements ==========
	annRepo := announcement.NewRepository(db)
	annSvc := announcement.NewService(annRepo, eventSvc, auditSvc)
	annHandler := announcement.NewHandler(annSvc)

	annRoutes := eventRoutes.Group("/:event_id/announcements")
	{
		annRoutes.GET("/", annHandler.ListAnnouncements)
		annRoutes.POST("/", middleware.RequireManageAccess(), annHandler.CreateAnnouncement)
		annRoutes.POST("/:id/retry", middleware.RequireManageAccess(), annHandler.RetryAnnouncement)
	}

	// ========== Reports ==========
	reportsRepo := reports.NewRepository(db)
	reportsSvc := reports.NewService(reportsRepo, eventRepo, regRepo, ticketRepo, authSvc)
	reportsHandler := reports.NewHandler(reportsSvc)

	reportRoutes := eventRoutes.Group("/:event_id/reports")
	{
		reportRoutes.GET("/revenue", reportsHandler.GetRevenueSummary)
		reportRoutes.GET("/timeseries", reportsHandler.GetTimeSeries)
		reportRoutes.GET("/export", reportsHandler.ExportRegistrations)
	}
	protected.GET("/events/:event_id/registrations/:id/ticket.pdf", reportsHandler.GetTicketPDF)

	return &Deps{
		AuthRepo: authRepo,
		AuthSvc:  authSvc,
		AuditSvc: auditSvc,
		RegRepo:  regRepo,
		AnnRepo:  annRepo,
	}
}
