package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/evently-hq/event-management-backend/config"
	"github.com/evently-hq/event-management-backend/database"
	"github.com/evently-hq/event-management-backend/internal/announcement"
	"github.com/evently-hq/event-management-backend/internal/auditlog"
	"github.com/evently-hq/event-management-backend/internal/auth"
	"github.com/evently-hq/event-management-backend/internal/coupon"
	"github.com/evently-hq/event-management-backend/internal/event"
	"github.com/evently-hq/event-management-backend/internal/referral"
	"github.com/evently-hq/event-management-backend/internal/regfield"
	"github.com/evently-hq/event-management-backend/internal/registration"
	"github.com/evently-hq/event-management-backend/internal/session"
	"github.com/evently-hq/event-management-backend/internal/ticket"
	"github.com/evently-hq/event-management-backend/routes"
	"github.com/evently-hq/event-management-backend/utils"
)

// @title Event Management API
// @version 1.0
// @description Administration backend for events, registrations and check-in.
// @BasePath /api/v1
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	if err := db.AutoMigrate(
		&auth.UserRole{},
		&auth.User{},
		&auditlog.AuditLog{},
		&event.Event{},
		&regfield.FieldDefinition{},
		&session.Session{},
		&ticket.Ticket{},
		&coupon.Coupon{},
		&referral.ReferralCode{},
		&registration.Registration{},
		&announcement.Announcement{},
	); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	if err := auth.SeedUserRoles(db); err != nil {
		log.Fatalf("❌ Role seeding failed: %v", err)
	}
	if err := auth.SeedSuperAdminUser(db); err != nil {
		log.Printf("⚠️ Superadmin seeding skipped: %v", err)
	}

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka
	utils.InitializeKafka(cfg)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	deps := routes.Setup(r, db, cfg)

	// Announcement dispatcher (kafka consumer)
	annRepo := deps.AnnRepo
	dispatcher := announcement.NewDispatcher(annRepo, deps.RegRepo, deps.AuthRepo, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go dispatcher.Run(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
