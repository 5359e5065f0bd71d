package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"codetidbit/internal/config"
	"codetidbit/internal/database"
	"codetidbit/internal/handlers"
	"codetidbit/internal/jobs"
	"codetidbit/internal/logging"
	"codetidbit/internal/middleware"
	"codetidbit/internal/services"
	"codetidbit/pkg/auth"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting CodeTidbit Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s)", cfg.Port)

	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET environment variable is required. Generate with: openssl rand -hex 32")
	}

	// Connect to MongoDB
	log.Println("🔗 Connecting to MongoDB...")
	mongoDB, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Close(context.Background())
	log.Println("✅ MongoDB connected successfully")

	if err := mongoDB.Initialize(context.Background()); err != nil {
		log.Fatalf("❌ Failed to initialize database indexes: %v", err)
	}

	sessionAuth, err := auth.NewSessionAuth(cfg.JWTSecret, cfg.SessionExpiry)
	if err != nil {
		log.Fatalf("❌ Failed to initialize session auth: %v", err)
	}

	// Initialize services
	metrics := services.InitMetrics()
	userService := services.NewUserService(mongoDB, sessionAuth)
	languageService := services.NewLanguageService(mongoDB)
	notificationService := services.NewNotificationService(mongoDB, metrics)
	opinionService := services.NewOpinionService(mongoDB, notificationService)
	completedService := services.NewCompletedService(mongoDB, notificationService)
	qaService := services.NewQAService(mongoDB, notificationService, metrics)
	snipbitService := services.NewSnipbitService(mongoDB, languageService, opinionService, qaService)
	bigbitService := services.NewBigbitService(mongoDB, languageService, opinionService, qaService)
	storyService := services.NewStoryService(mongoDB, opinionService, snipbitService, bigbitService)
	contentService := services.NewContentService(snipbitService, bigbitService, storyService, languageService, metrics)
	log.Println("✅ Services initialized")

	// Seed the known-language table and hot-reload it on file changes
	if err := syncLanguages(cfg.LanguagesFile, languageService); err != nil {
		log.Fatalf("❌ Failed to sync languages from %s: %v", cfg.LanguagesFile, err)
	}
	go startLanguagesFileWatcher(cfg.LanguagesFile, languageService)

	// Background jobs
	scheduler, err := jobs.NewScheduler()
	if err != nil {
		log.Fatalf("❌ Failed to create job scheduler: %v", err)
	}
	cleanupJob := jobs.NewNotificationCleanupJob(notificationService, cfg.NotificationMaxAge, cfg.NotificationCleanupPeriod)
	if err := scheduler.Register(cleanupJob); err != nil {
		log.Fatalf("❌ Failed to register cleanup job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CodeTidbit",
		BodyLimit:    5 * 1024 * 1024, // 5MB - bigbit file trees can be large
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// Prometheus metrics middleware
	prometheus := fiberprometheus.New("codetidbit")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	// Rate limiting
	rateLimitConfig := middleware.LoadRateLimitConfig()
	log.Printf("🛡️  [RATE-LIMIT] Loaded config: Global=%d/min, Public=%d/min, Auth=%d/min, Attempts=%d/min",
		rateLimitConfig.GlobalAPIMax,
		rateLimitConfig.PublicReadMax,
		rateLimitConfig.AuthenticatedMax,
		rateLimitConfig.AuthAttemptMax,
	)

	// CORS configuration with environment-based origins
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173,http://localhost:3000"
		log.Println("⚠️  ALLOWED_ORIGINS not set, using development defaults")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: allowedOrigins != "*",
	}))
	log.Printf("🔒 [SECURITY] CORS allowed origins: %s", allowedOrigins)

	app.Use(middleware.GlobalAPIRateLimiter(rateLimitConfig))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(mongoDB)
	authHandler := handlers.NewAuthHandler(userService, sessionAuth)
	snipbitHandler := handlers.NewSnipbitHandler(snipbitService)
	bigbitHandler := handlers.NewBigbitHandler(bigbitService)
	storyHandler := handlers.NewStoryHandler(storyService)
	contentHandler := handlers.NewContentHandler(contentService)
	qaHandler := handlers.NewQAHandler(qaService)
	opinionHandler := handlers.NewOpinionHandler(opinionService)
	completedHandler := handlers.NewCompletedHandler(completedService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	requireAuth := middleware.SessionAuthMiddleware(sessionAuth)
	optionalAuth := middleware.OptionalSessionAuthMiddleware(sessionAuth)
	publicLimiter := middleware.PublicReadRateLimiter(rateLimitConfig)
	writeLimiter := middleware.AuthenticatedRateLimiter(rateLimitConfig)
	attemptLimiter := middleware.AuthAttemptRateLimiter(rateLimitConfig)

	// Routes
	app.Get("/health", healthHandler.Handle)

	// Accounts
	app.Post("/register", attemptLimiter, authHandler.Register)
	app.Post("/login", attemptLimiter, authHandler.Login)
	app.Get("/logOut", authHandler.Logout)
	app.Get("/account", requireAuth, authHandler.GetAccount)
	app.Post("/account/setBio", requireAuth, writeLimiter, authHandler.UpdateBio)

	// Tidbits and stories
	app.Post("/snipbits", requireAuth, writeLimiter, snipbitHandler.Create)
	app.Get("/snipbits/:id", optionalAuth, publicLimiter, snipbitHandler.Get)
	app.Post("/bigbits", requireAuth, writeLimiter, bigbitHandler.Create)
	app.Get("/bigbits/:id", optionalAuth, publicLimiter, bigbitHandler.Get)
	app.Post("/stories", requireAuth, writeLimiter, storyHandler.Create)
	app.Get("/stories/:id", optionalAuth, publicLimiter, storyHandler.Get)
	app.Post("/stories/:id/information", requireAuth, writeLimiter, storyHandler.UpdateInformation)
	app.Post("/stories/:id/addTidbits", requireAuth, writeLimiter, storyHandler.AddTidbits)

	// Content search
	app.Get("/content", optionalAuth, publicLimiter, contentHandler.Search)

	// Opinions and completed markers
	app.Post("/opinions", requireAuth, writeLimiter, opinionHandler.Add)
	app.Post("/opinions/remove", requireAuth, writeLimiter, opinionHandler.Remove)
	app.Get("/opinions/:contentType/:id", requireAuth, opinionHandler.Get)
	app.Post("/completed", requireAuth, writeLimiter, completedHandler.Add)
	app.Post("/completed/remove", requireAuth, writeLimiter, completedHandler.Remove)
	app.Get("/completed/:tidbitType/:id", requireAuth, completedHandler.Check)

	// Notifications
	app.Get("/notifications", requireAuth, notificationHandler.List)
	app.Post("/notifications/:id/read", requireAuth, writeLimiter, notificationHandler.MarkRead)

	// Q&A
	qa := app.Group("/qa/:tidbitType/:id")
	qa.Get("/", optionalAuth, publicLimiter, qaHandler.Get)
	qa.Post("/askQuestion", requireAuth, writeLimiter, qaHandler.AskQuestion)
	qa.Post("/editQuestion/:questionID", requireAuth, writeLimiter, qaHandler.EditQuestion)
	qa.Post("/deleteQuestion/:questionID", requireAuth, writeLimiter, qaHandler.DeleteQuestion)
	qa.Post("/answerQuestion/:questionID", requireAuth, writeLimiter, qaHandler.AnswerQuestion)
	qa.Post("/editAnswer/:answerID", requireAuth, writeLimiter, qaHandler.EditAnswer)
	qa.Post("/deleteAnswer/:answerID", requireAuth, writeLimiter, qaHandler.DeleteAnswer)
	qa.Post("/comment/question/:questionID", requireAuth, writeLimiter, qaHandler.CommentOnQuestion)
	qa.Post("/editComment/question/:commentID", requireAuth, writeLimiter, qaHandler.EditQuestionComment)
	qa.Post("/deleteComment/question/:commentID", requireAuth, writeLimiter, qaHandler.DeleteQuestionComment)
	qa.Post("/comment/answer/:answerID", requireAuth, writeLimiter, qaHandler.CommentOnAnswer)
	qa.Post("/editComment/answer/:commentID", requireAuth, writeLimiter, qaHandler.EditAnswerComment)
	qa.Post("/deleteComment/answer/:commentID", requireAuth, writeLimiter, qaHandler.DeleteAnswerComment)
	qa.Post("/rateQuestion/:questionID", requireAuth, writeLimiter, qaHandler.RateQuestion)
	qa.Post("/rateAnswer/:answerID", requireAuth, writeLimiter, qaHandler.RateAnswer)
	qa.Post("/pinQuestion/:questionID", requireAuth, writeLimiter, qaHandler.PinQuestion)
	qa.Post("/pinAnswer/:answerID", requireAuth, writeLimiter, qaHandler.PinAnswer)

	// Graceful shutdown on SIGINT/SIGTERM
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		log.Printf("🛑 Received %v, shutting down...", sig)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("⚠️  Shutdown error: %v", err)
		}
	}()

	log.Printf("🌐 Server listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}

	log.Println("✅ Server stopped")
}

// syncLanguages loads the languages file and upserts the table.
func syncLanguages(filePath string, languageService *services.LanguageService) error {
	languagesConfig, err := config.LoadLanguages(filePath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := languageService.Sync(ctx, languagesConfig); err != nil {
		return err
	}

	log.Printf("✅ Synced %d languages from %s", len(languagesConfig.Languages), filePath)
	return nil
}

// startLanguagesFileWatcher watches the languages file and re-syncs the table
// on changes.
func startLanguagesFileWatcher(filePath string, languageService *services.LanguageService) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("⚠️  Failed to create file watcher: %v", err)
		return
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		log.Printf("⚠️  Failed to get absolute path for %s: %v", filePath, err)
		watcher.Close()
		return
	}

	// Watch the directory containing the file (more reliable than watching
	// the file directly)
	dir := filepath.Dir(absPath)
	filename := filepath.Base(absPath)

	if err := watcher.Add(dir); err != nil {
		log.Printf("⚠️  Failed to watch directory %s: %v", dir, err)
		watcher.Close()
		return
	}

	log.Printf("👁️  Watching %s for changes (hot-reload enabled)", filePath)

	// Debounce timer to avoid multiple syncs for rapid file changes
	var debounceTimer *time.Timer
	debounceDuration := 500 * time.Millisecond

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}

				debounceTimer = time.AfterFunc(debounceDuration, func() {
					log.Printf("🔄 Detected changes in %s, re-syncing languages...", filePath)
					if err := syncLanguages(filePath, languageService); err != nil {
						log.Printf("❌ Failed to sync languages after file change: %v", err)
					}
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("⚠️  File watcher error: %v", err)
		}
	}
}
