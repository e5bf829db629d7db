package app

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vaaltic/crm/docs"
	"github.com/vaaltic/crm/internal/config"
	"github.com/vaaltic/crm/internal/database"
	"github.com/vaaltic/crm/internal/handlers"
	"github.com/vaaltic/crm/internal/metrics"
	"github.com/vaaltic/crm/internal/middleware"
	"github.com/vaaltic/crm/internal/notify"
	"github.com/vaaltic/crm/internal/repositories"
	"github.com/vaaltic/crm/internal/routes"
	"github.com/vaaltic/crm/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	if err := database.RunMigrations(cfg.Database.URL); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	db, err := database.Open(cfg.Database.URL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("closing database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	dealRepo := repositories.NewDealRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	var emailService services.EmailService
	if cfg.Email.Enabled {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}

	var leadNotifier services.LeadNotifier
	if cfg.Telegram.BotToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("telegram notifier disabled: %v", err)
		} else {
			leadNotifier = tg
		}
	}

	userService := services.NewUserService(userRepo, authService, emailService)
	leadService := services.NewLeadService(leadRepo, leadNotifier)
	contactService := services.NewContactService(contactRepo)
	dealService := services.NewDealService(dealRepo, contactRepo)
	analyticsService := services.NewAnalyticsService(leadRepo, contactRepo, dealRepo)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService)
	leadHandler := handlers.NewLeadHandler(leadService)
	contactHandler := handlers.NewContactHandler(contactService)
	dealHandler := handlers.NewDealHandler(dealService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	loginLimiter := middleware.NewLoginRateLimiter(cfg.LoginPerMinute)
	defer loginLimiter.Stop()

	collector := metrics.NewCollector()

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(collector.Middleware())
	router.Use(middleware.AuthMiddleware(authService, userRepo))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", collector.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		leadHandler,
		contactHandler,
		dealHandler,
		analyticsHandler,
		loginLimiter,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
