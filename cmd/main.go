package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vassimdr/dr-sahin-durmus-backend/config"
	"github.com/vassimdr/dr-sahin-durmus-backend/database"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/auditlog"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/blog"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/callback"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/gallery"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/media"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/notification"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/review"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/security"
	"github.com/vassimdr/dr-sahin-durmus-backend/internal/video"
	"github.com/vassimdr/dr-sahin-durmus-backend/routes"
	"github.com/vassimdr/dr-sahin-durmus-backend/utils"
)

// @title Dr. Şahin Durmuş Clinic API
// @version 1.0
// @description Backend for the clinic website and admin back-office.
// @BasePath /api/v1
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis — optional: sessions and the durable critical log fall back
	// to in-memory stores when Redis is unreachable.
	redisUp := true
	if err := utils.InitRedis(); err != nil {
		log.Printf("⚠️ Redis init failed: %v", err)
		log.Println("ℹ️ Continuing with in-memory session and critical-event stores")
		redisUp = false
	}

	// 🔥 Init Firebase - SINGLE INITIALIZATION POINT
	log.Println("🔄 Initializing Firebase...")
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (push notifications will be disabled)")
	} else if utils.IsFCMEnabled() {
		log.Println("✅ Firebase and FCM initialized successfully")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&callback.CallbackRequest{},
		&blog.BlogPost{},
		&gallery.GalleryItem{},
		&video.DoctorVideo{},
		&media.MediaPublication{},
		&review.Review{},
		&auditlog.AdminAction{},
		&notification.FCMDeviceToken{},
		&notification.NotificationLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// ========== Security primitives ==========
	var criticalStore auditlog.CriticalStore
	var sessionBackend security.Backend
	if redisUp {
		criticalStore = auditlog.NewRedisCriticalStore(utils.RedisClient, "audit:critical")
		sessionBackend = security.NewRedisBackend(utils.RedisClient, "session:")
	} else {
		criticalStore = auditlog.NewMemoryCriticalStore()
		sessionBackend = security.NewMemoryBackend()
	}

	var sink auditlog.Sink
	if len(cfg.KafkaBrokers) > 0 {
		topic := cfg.KafkaAuditTopic
		if topic == "" {
			topic = "clinic.audit.events"
		}
		kafkaSink := auditlog.NewKafkaSink(cfg.KafkaBrokers, topic)
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Printf("✅ Kafka audit sink enabled (topic %s)", topic)
	}

	events := auditlog.NewLogger(criticalStore, sink)
	sessions := security.NewSessionStore(sessionBackend, cfg.SessionMaxDuration())
	limiter := security.NewLoginLimiter(
		cfg.LoginMaxAttempts,
		time.Duration(cfg.LoginWindowMinutes)*time.Minute,
		time.Duration(cfg.LockoutMinutes)*time.Minute,
	)

	var pusher notification.Pusher
	if utils.IsFCMEnabled() {
		pusher = notification.NewFCMPusher()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, routes.Deps{
		Events:   events,
		Sessions: sessions,
		Limiter:  limiter,
		Pusher:   pusher,
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
