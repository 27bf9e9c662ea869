package server

import (
	"context"
	"net/http"
	"time"

	"parkease/internal/auth"
	"parkease/internal/booking"
	"parkease/internal/config"
	"parkease/internal/finance"
	"parkease/internal/location"
	"parkease/internal/notification"
	"parkease/internal/user"
	"parkease/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, notificationSvc *notification.Service) *Server {
	registerValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(db)
	userSvc := user.NewService(userRepo, cfg.JWTSecret)
	userHandler := user.NewHandler(userSvc)

	locationRepo := location.NewRepository(db)
	locationSvc := location.NewService(locationRepo)
	locationHandler := location.NewHandler(locationSvc)

	walletRepo := wallet.NewRepository(db)
	walletHandler := wallet.NewHandler(walletRepo, locationSvc)

	financeRepo := finance.NewRepository(db)
	financeSvc := finance.NewService(financeRepo, notificationSvc)
	financeHandler := finance.NewHandler(financeSvc)

	bookingRepo := booking.NewRepository(db)
	bookingSvc := booking.NewService(bookingRepo, locationRepo, financeSvc, notificationSvc)
	bookingHandler := booking.NewHandler(bookingSvc)

	notificationHandler := notification.NewHandler(notificationSvc)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	router.GET("/locations", locationHandler.ListLocations)
	router.GET("/locations/:locationID/spots", locationHandler.ListSpots)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.POST("/bookings", bookingHandler.CreateBooking)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)
		protected.POST("/bookings/:bookingID/complete", bookingHandler.CompleteBooking)

		protected.GET("/notifications", notificationHandler.List)
		protected.POST("/notifications/:notificationID/read", notificationHandler.MarkRead)
	}

	owner := router.Group("/owner")
	owner.Use(authMiddleware, auth.RequireRole(auth.RoleOwner, auth.RoleAdmin))
	{
		owner.POST("/onboard", locationHandler.Onboard)
		owner.POST("/locations", locationHandler.CreateLocation)
		owner.GET("/locations", locationHandler.ListOwnLocations)
		owner.POST("/locations/:locationID/spots", locationHandler.CreateSpot)
		owner.GET("/locations/:locationID/bookings", bookingHandler.ListBookingsByLocation)
		owner.PATCH("/spots/:spotID/active", locationHandler.SetSpotActive)

		owner.GET("/wallet", walletHandler.GetBalance)
		owner.GET("/wallet/transactions", walletHandler.ListTransactions)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/commission-rules", financeHandler.ListRules)
		admin.POST("/commission-rules", financeHandler.CreateRule)
		admin.PUT("/commission-rules/:ruleID", financeHandler.UpdateRule)
		admin.DELETE("/commission-rules/:ruleID", financeHandler.DeleteRule)

		admin.GET("/bookings/:bookingID/commission", financeHandler.PreviewCommission)
		admin.POST("/bookings/:bookingID/refund", bookingHandler.RefundBooking)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
