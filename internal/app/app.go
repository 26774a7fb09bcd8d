package app

import (
	"database/sql"
	"fmt"
	"log"

	"tikoncha/internal/config"
	"tikoncha/internal/handlers"
	"tikoncha/internal/middleware"
	"tikoncha/internal/pdf"
	"tikoncha/internal/repositories"
	"tikoncha/internal/routes"
	"tikoncha/internal/services"
	"tikoncha/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tikoncha/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	regRepo := repositories.NewRegistrationRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	studentRepo := repositories.NewStudentRepository(db)
	parentRepo := repositories.NewParentRepository(db)
	prefRepo := repositories.NewPreferenceRepository(db)
	locationRepo := repositories.NewLocationRepository(db)
	schoolRepo := repositories.NewSchoolRepository(db)
	osRepo := repositories.NewOSRepository(db)
	deviceRepo := repositories.NewDeviceRepository(db)
	appRepo := repositories.NewAppRepository(db)
	userAppRepo := repositories.NewUserAppRepository(db)
	websiteRepo := repositories.NewWebsiteRepository(db)
	policyRepo := repositories.NewPolicyRepository(db)
	actionRepo := repositories.NewActionRepository(db)
	logRepo := repositories.NewLogRepository(db)
	tgLinkRepo := repositories.NewTelegramLinkRepository(db)

	// === Services ===
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService([]byte(cfg.JWT.Secret), cfg.JWT.TTL(), cfg.JWT.Leeway())

	smsClient := utils.NewSMSClient(cfg.SMS)
	otpService := services.NewOTPService(smsClient)
	registerService := services.NewRegisterService(regRepo, userRepo, authService, otpService)

	userService := services.NewUserService(userRepo, authService)
	profileService := services.NewProfileService(userRepo, studentRepo, parentRepo, prefRepo, schoolRepo)
	locationService := services.NewLocationService(locationRepo)
	schoolService := services.NewSchoolService(schoolRepo, locationRepo, policyRepo)
	osService := services.NewOSService(osRepo)
	deviceService := services.NewDeviceService(deviceRepo, osRepo, appRepo, userAppRepo)
	appService := services.NewAppService(appRepo)
	websiteService := services.NewWebsiteService(websiteRepo)
	policyService := services.NewPolicyService(policyRepo, roleRepo, appRepo, websiteRepo)
	blockingService := services.NewBlockingService(studentRepo, schoolRepo, policyRepo, appService)

	// Телеграм-уведомления родителям; можно выключить в конфиге
	var telegramService *services.TelegramService
	if cfg.Telegram.Enabled {
		telegramService = services.NewTelegramService(cfg.Telegram.BotToken, tgLinkRepo, userRepo)
	}

	logService := services.NewLogService(logRepo, actionRepo, deviceRepo, studentRepo, telegramService)

	// PDF отчёты: нужен TTF с кириллицей
	pdfGen := pdf.NewReportGenerator("./files", "assets/fonts/DejaVuSans.ttf")
	reportService := services.NewReportService(logRepo, studentRepo, schoolRepo, pdfGen)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService, tokenService)
	registerHandler := handlers.NewRegisterHandler(registerService)
	userHandler := handlers.NewUserHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService)
	locationHandler := handlers.NewLocationHandler(locationService)
	schoolHandler := handlers.NewSchoolHandler(schoolService)
	deviceHandler := handlers.NewDeviceHandler(deviceService, osService)
	appHandler := handlers.NewAppHandler(appService)
	websiteHandler := handlers.NewWebsiteHandler(websiteService)
	policyHandler := handlers.NewPolicyHandler(policyService)
	blockingHandler := handlers.NewBlockingHandler(blockingService)
	logHandler := handlers.NewLogHandler(logService)
	reportHandler := handlers.NewReportHandler(reportService, profileService)

	var integrationsHandler *handlers.IntegrationsHandler
	if telegramService != nil {
		integrationsHandler = handlers.NewIntegrationsHandler(telegramService)
	}

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authMW := middleware.AuthMiddleware([]byte(cfg.JWT.Secret), cfg.JWT.Leeway())

	routes.SetupRoutes(
		router,
		authHandler,
		registerHandler,
		userHandler,
		profileHandler,
		locationHandler,
		schoolHandler,
		deviceHandler,
		appHandler,
		websiteHandler,
		policyHandler,
		blockingHandler,
		logHandler,
		reportHandler,
		integrationsHandler,
		authMW,
	)

	// === Run ===
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
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
