package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/vetlab-project/vetlab-server/internal/api/handlers"
	"github.com/vetlab-project/vetlab-server/internal/api/middleware"
	"github.com/vetlab-project/vetlab-server/internal/api/views"
	"github.com/vetlab-project/vetlab-server/internal/config"
	"github.com/vetlab-project/vetlab-server/internal/database"
	"github.com/vetlab-project/vetlab-server/internal/database/queries"
)

func main() {
	// Parse command line flags
	var setup bool
	var migrate bool
	var version bool
	flag.BoolVar(&setup, "setup", false, "Run setup wizard")
	flag.BoolVar(&migrate, "migrate", false, "Run database migrations only")
	flag.BoolVar(&version, "version", false, "Show version information")
	flag.Parse()

	if version {
		fmt.Printf("VetLab Server v0.1.0\n")
		fmt.Printf("Pet sample pickup intake service\n")
		return
	}

	if setup {
		if err := config.RunSetupWizard(); err != nil {
			log.Fatal("Setup failed:", err)
		}
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Run migrations. A core-table failure is the one fatal startup error.
	if err := db.Migrate(); err != nil {
		log.Fatal("Migration failed:", err)
	}

	if migrate {
		fmt.Println("Database migrations completed")
		return
	}

	// Initialize queries
	requestQueries := queries.NewRequestQueries(db)
	userQueries := queries.NewUserQueries(db)

	// Seed the admin account. Failure is non-fatal: the server keeps
	// serving and logins fail until the seed problem is resolved.
	if cfg.AdminPassword == "" {
		log.Printf("ADMIN_PASSWORD not set; skipping admin seed")
	} else if err := userQueries.EnsureAdmin(cfg.AdminUsername, "Administrador", cfg.AdminPassword, cfg.AdminForceSync); err != nil {
		log.Printf("Failed to seed admin account: %v", err)
	}

	// Initialize sessions and rate limiter
	sessions := middleware.NewSessionManager(cfg.SessionSecret)
	rateLimiter := middleware.NewRateLimiter()

	// Initialize handlers
	intakeHandler := handlers.NewIntakeHandler(requestQueries)
	requestsHandler := handlers.NewRequestsHandler(requestQueries)
	authHandler := handlers.NewAuthHandler(userQueries, sessions)
	staffHandler := handlers.NewStaffHandler(userQueries)

	// Setup router
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.SetHTMLTemplate(views.Templates())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Public routes (with rate limiting)
	router.GET("/", intakeHandler.ShowForm)
	router.POST("/solicitud", rateLimiter.RateLimit("public_intake", middleware.KeyByIP), intakeHandler.Submit)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", rateLimiter.RateLimit("login", middleware.KeyByIP), authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	// Staff routes
	staff := router.Group("/")
	staff.Use(sessions.RequireLogin())
	{
		staff.GET("/solicitudes", requestsHandler.List)
		staff.POST("/solicitudes/borrar", requestsHandler.Delete)

		admin := staff.Group("/")
		admin.Use(sessions.RequireAdmin())
		{
			admin.GET("/crear-vet", staffHandler.ShowCreateVet)
			admin.POST("/crear-vet", staffHandler.CreateVet)
		}
	}

	// Start server
	addr := ":" + cfg.ServerPort
	fmt.Printf("\nVetLab Server starting on %s\n", addr)
	fmt.Printf("Public form: http://localhost%s/\n", addr)
	fmt.Printf("Staff listing: http://localhost%s/solicitudes\n\n", addr)

	if err := router.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
