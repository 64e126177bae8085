package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"atithi/internal/config"
	"atithi/internal/database"
	"atithi/internal/domain"
	"atithi/internal/middleware"
	"atithi/internal/modules/activity"
	"atithi/internal/modules/auth"
	"atithi/internal/modules/board"
	"atithi/internal/modules/booking"
	"atithi/internal/modules/folio"
	"atithi/internal/modules/frontdesk"
	"atithi/internal/modules/guest"
	"atithi/internal/modules/housekeeping"
	"atithi/internal/modules/room"
	jwtsvc "atithi/internal/pkg/jwt"
	"atithi/internal/repository"
)

func main() {
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
	guestRepo := repository.NewGuestRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	folioRepo := repository.NewFolioRepository(db)
	taskRepo := repository.NewHousekeepingRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := board.NewHub()
	defer hub.Close()

	activityService := activity.NewService(activityRepo)
	housekeepingService := housekeeping.NewService(taskRepo, roomRepo, activityService)
	roomService := room.NewService(roomRepo, housekeepingService, activityService, hub)
	folioService := folio.NewService(folioRepo, bookingRepo, activityService)
	bookingService := booking.NewService(bookingRepo, roomRepo, guestRepo, activityService)
	guestService := guest.NewService(guestRepo, bookingRepo, folioRepo, activityService)
	deskService := frontdesk.NewService(db, folioService, housekeepingService, activityService, hub)
	authService := auth.NewService(userRepo, j, activityService)

	authHandler := auth.NewHandler(authService)
	roomHandler := room.NewHandler(roomService)
	bookingHandler := booking.NewHandler(bookingService)
	folioHandler := folio.NewHandler(folioService)
	deskHandler := frontdesk.NewHandler(deskService)
	guestHandler := guest.NewHandler(guestService)
	housekeepingHandler := housekeeping.NewHandler(housekeepingService)
	activityHandler := activity.NewHandler(activityService)
	boardHandler := board.NewHandler(hub, j)

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected, middleware.RequireRole(domain.RoleOwner))
			roomHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			folioHandler.RegisterRoutes(protected)
			deskHandler.RegisterRoutes(protected)
			guestHandler.RegisterRoutes(protected)
			housekeepingHandler.RegisterRoutes(protected)
			activityHandler.RegisterRoutes(protected)
		}
	}

	// WebSocket auth rides on a query token, outside the HTTP middleware.
	r.GET("/ws/board", boardHandler.HandleWebSocket)

	log.Printf("atithi api listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
