package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/librisys/library-system/internal/api/handler"
	"github.com/librisys/library-system/internal/api/middleware"
	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
	"github.com/librisys/library-system/internal/core/service"
	"github.com/librisys/library-system/internal/infrastructure/config"
	mongorepo "github.com/librisys/library-system/internal/infrastructure/db/mongo"
	rediscache "github.com/librisys/library-system/internal/infrastructure/db/redis"
	"github.com/librisys/library-system/internal/infrastructure/metadata"
	"github.com/librisys/library-system/internal/infrastructure/notify"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("library"))

	// --- Repositories ---
	bookRepo := mongorepo.NewBookRepository(db)
	loanRepo := mongorepo.NewLoanRepository(db)
	reservationRepo := mongorepo.NewReservationRepository(db)
	reviewRepo := mongorepo.NewReviewRepository(db)
	userRepo := mongorepo.NewUserRepository(db)
	profileRepo := mongorepo.NewProfileRepository(db)

	// --- Outbound adapters ---
	var notifier ports.Notifier
	if cfg.SMTP.Host != "" {
		notifier = notify.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	} else {
		notifier = notify.NewLogSender(log)
	}

	searchCache := rediscache.NewSearchCache(rdb, time.Duration(cfg.Metadata.CacheTTLMinutes)*time.Minute)
	searcher := metadata.NewGoogleBooksClient(cfg.Metadata.BaseURL, searchCache, log)

	// --- Services ---
	authService := service.NewAuthService(userRepo, profileRepo, notifier, cfg.JWTSecret, 24*time.Hour, cfg.PublicBaseURL, log)
	catalogService := service.NewCatalogService(bookRepo, loanRepo, log)
	lendingService := service.NewLendingService(loanRepo, bookRepo, profileRepo, log)
	reservationService := service.NewReservationService(reservationRepo, bookRepo, profileRepo,
		time.Duration(cfg.ReservationTTLHours)*time.Hour, log)
	reviewService := service.NewReviewService(reviewRepo, bookRepo, log)
	profileService := service.NewProfileService(profileRepo, log)
	dashboardService := service.NewDashboardService(profileRepo, loanRepo, reservationRepo, reviewRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(catalogService)
	loanHandler := handler.NewLoanHandler(lendingService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	profileHandler := handler.NewProfileHandler(profileService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	metadataHandler := handler.NewMetadataHandler(searcher)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/activate/:id/:token", authHandler.Activate)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	// Catalog: reads for everyone, writes for librarians.
	v1.GET("/books", bookHandler.List)
	v1.GET("/books/:id", bookHandler.Get)
	v1.POST("/books", bookHandler.Create, middleware.RBAC(domain.RoleLibrarian))
	v1.PUT("/books/:id", bookHandler.Update, middleware.RBAC(domain.RoleLibrarian))
	v1.DELETE("/books/:id", bookHandler.Delete, middleware.RBAC(domain.RoleLibrarian))

	// Loans: any authenticated user may borrow and return.
	v1.POST("/loans", loanHandler.Create)
	v1.GET("/loans", loanHandler.List)
	v1.POST("/loans/:id/return", loanHandler.Return)

	// Reservations.
	v1.POST("/reservations", reservationHandler.Create)
	v1.GET("/reservations", reservationHandler.List)
	v1.POST("/reservations/:id/cancel", reservationHandler.Cancel)

	// Reviews: append for everyone, delete for admins.
	v1.POST("/reviews", reviewHandler.Create)
	v1.GET("/books/:id/reviews", reviewHandler.ListForBook)
	v1.DELETE("/reviews/:id", reviewHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// Own profile.
	v1.GET("/profile", profileHandler.Get)
	v1.PUT("/profile", profileHandler.Update)

	// Aggregated dashboard.
	v1.GET("/dashboard", dashboardHandler.Get)

	// External metadata search (pass-through, cached).
	v1.GET("/catalog/search", metadataHandler.Search)

	return e
}
