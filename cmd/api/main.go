package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"roomshare/internal/config"
	"roomshare/internal/database"
	"roomshare/internal/middleware"
	"roomshare/internal/modules/access"
	"roomshare/internal/modules/allocation"
	"roomshare/internal/modules/auth"
	"roomshare/internal/modules/booking"
	"roomshare/internal/modules/property"
	jwtsvc "roomshare/internal/pkg/jwt"
	"roomshare/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	allocationRepo := repository.NewAllocationRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	resolver := access.NewResolver(memberRepo)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	propertyService := property.NewService(propertyRepo, memberRepo, roomRepo, userRepo, resolver)
	propertyHandler := property.NewHandler(propertyService)

	allocationService := allocation.NewService(allocationRepo, propertyRepo, resolver)
	allocationHandler := allocation.NewHandler(allocationService)

	bookingService := booking.NewService(bookingRepo, roomRepo, propertyRepo, allocationService, resolver)
	bookingHandler := booking.NewHandler(bookingService)

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			propertyHandler.RegisterRoutes(protected)
			allocationHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
