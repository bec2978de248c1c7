package main // Entry point package

import (
    "context"
    "log"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/iliyamo/event-venue-booking/internal/config"
    "github.com/iliyamo/event-venue-booking/internal/database"
    "github.com/iliyamo/event-venue-booking/internal/handler"
    "github.com/iliyamo/event-venue-booking/internal/queue"
    "github.com/iliyamo/event-venue-booking/internal/repository"
    "github.com/iliyamo/event-venue-booking/internal/router"
)

func main() {
    // Load .env if present; real deployments set the environment directly.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    migCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    if err := database.Migrate(migCtx, db); err != nil {
        cancel()
        log.Fatalf("migrate: %v", err)
    }
    cancel()

    // Redis backs the public response cache and the rate limiter.  A nil
    // client just disables both; the API itself does not need Redis.
    rdb := config.NewRedisClient()

    venueRepo := repository.NewVenueRepo(db)
    bookingRepo := repository.NewBookingRequestRepo(db)
    eventRepo := repository.NewEventRepo(db)
    ticketRepo := repository.NewTicketRepo(db)
    userRepo := repository.NewUserRepo(db)
    tokenRepo := repository.NewTokenRepo(db)

    authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
    adminH := handler.NewAdminHandler(venueRepo, bookingRepo)
    organizerH := handler.NewOrganizerHandler(venueRepo, bookingRepo, eventRepo, ticketRepo)
    attendeeH := handler.NewAttendeeHandler(eventRepo, ticketRepo)
    publicH := handler.NewPublicHandler(venueRepo, eventRepo)

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterPublic(e, publicH, rdb)
    router.RegisterAdmin(e, adminH, cfg.JWTSecret)
    router.RegisterOrganizer(e, organizerH, cfg.JWTSecret)
    router.RegisterAttendee(e, attendeeH, cfg.JWTSecret)

    // Background consumer that mirrors purchase events to logs/ticket.log.
    go func() {
        if err := queue.StartTicketConsumer(); err != nil {
            log.Printf("ticket consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
