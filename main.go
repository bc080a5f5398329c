package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"roadline/admin"
	"roadline/benefits"
	"roadline/blog"
	"roadline/cache"
	"roadline/common"
	"roadline/database"
	"roadline/logger"
	"roadline/reviews"
	"roadline/settings"
	"roadline/site"
	"roadline/uploads"
	"roadline/vehicles"
)

func main() {
	godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"))

	db := common.ConnectDb()
	if db == nil {
		slog.Error("failed to connect to database")
		os.Exit(1)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	if err := database.EnsureAdminUser(db); err != nil {
		slog.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}

	router := gin.Default()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		slog.Error("SESSION_SECRET environment variable not set")
		os.Exit(1)
	}

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
	})
	router.Use(sessions.Sessions("roadline-session", store))

	router.Use(cache.Middleware(10 * time.Minute))
	cache.ClearOld(24 * time.Hour)

	router.LoadHTMLGlob("*/views/*.html")
	router.Static("/public", "./public")

	storage := uploads.NewStorage("./public/uploads", "/public/uploads")

	adminModule := admin.NewAdminModule(db)
	adminModule.RegisterRoutes(router)
	requireAuth := adminModule.RequireAuth

	blog.NewBlogModule(db, storage).RegisterRoutes(router, requireAuth)
	reviews.NewReviewsModule(db).RegisterRoutes(router, requireAuth)
	vehicles.NewVehiclesModule(db).RegisterRoutes(router, requireAuth)
	benefits.NewBenefitsModule(db).RegisterRoutes(router, requireAuth)
	settings.NewSettingsModule(db).RegisterRoutes(router, requireAuth)
	site.NewSiteModule(db).RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
