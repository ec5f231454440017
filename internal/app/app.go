package app

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"panal/internal/config"
	"panal/internal/handlers"
	"panal/internal/middleware"
	"panal/internal/pdf"
	"panal/internal/realtime"
	"panal/internal/repositories"
	"panal/internal/routes"
	"panal/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "panal/docs"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.SetJWTKey(cfg.JWT.Secret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Error de conexión a la BD: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error al cerrar la BD: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	taskRepo := repositories.NewTaskRepository(db, projectRepo)
	commentRepo := repositories.NewCommentRepository(db, taskRepo)
	channelRepo := repositories.NewChannelRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.AppBaseURL,
	)

	// Telegram es opcional: sin token el notificador queda en nil
	var telegram *services.TelegramNotifier
	if cfg.Telegram.Enabled {
		telegram, err = services.NewTelegramNotifier(cfg.Telegram.BotToken)
		if err != nil {
			log.Printf("Telegram deshabilitado: %v", err)
			telegram = nil
		}
	}

	userService := services.NewUserService(userRepo, emailService, authService)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, telegram)
	projectService := services.NewProjectService(projectRepo, userRepo, emailService, notificationService)
	categoryService := services.NewCategoryService(categoryRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, categoryRepo)
	commentService := services.NewCommentService(commentRepo)
	channelService := services.NewChannelService(channelRepo)

	// PDF (la fuente TTF cubre acentos y eñes)
	pdfGen := pdf.NewReportGenerator("assets/fonts/DejaVuSans.ttf")
	reportService := services.NewReportService(categoryRepo, taskRepo, pdfGen)

	hub := realtime.NewChannelHub()

	// === Handlers ===
	accessTTL := time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute
	refreshTTL := time.Duration(cfg.JWT.RefreshTTLDays) * 24 * time.Hour
	authHandler := handlers.NewAuthHandler(userService, authService, accessTTL, refreshTTL)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService, userService, reportService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, projectService)
	taskHandler := handlers.NewTaskHandler(taskService, categoryService, projectService, notificationService)
	commentHandler := handlers.NewCommentHandler(commentService, taskService, notificationService)
	channelHandler := handlers.NewChannelHandler(channelService, projectService, hub)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		userHandler,
		projectHandler,
		categoryHandler,
		taskHandler,
		commentHandler,
		channelHandler,
		notificationHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Servidor escuchando en %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Error al iniciar el servidor: ", err)
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
