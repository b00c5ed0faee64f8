package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // Loads .env files in development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/hotel-back-office/internal/config"
    "github.com/iliyamo/hotel-back-office/internal/database"
    "github.com/iliyamo/hotel-back-office/internal/handler"
    "github.com/iliyamo/hotel-back-office/internal/middleware"
    "github.com/iliyamo/hotel-back-office/internal/queue"
    "github.com/iliyamo/hotel-back-office/internal/repository"
    "github.com/iliyamo/hotel-back-office/internal/router"
    "github.com/iliyamo/hotel-back-office/internal/service"
)

func main() {
    // .env is optional; real deployments set variables in the environment.
    _ = godotenv.Load()

    cfg := config.Load() // Load environment config

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis is optional: a nil client disables caching, rate limiting
    // and room status notifications.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; cache, rate limiting and notifications disabled")
    }

    cacheCfg := config.LoadCacheConfig()
    rateCfg := config.LoadRateLimitConfig()

    userRepo := repository.NewUserRepo(db)
    tokenRepo := repository.NewTokenRepo(db)
    roomRepo := repository.NewRoomTypeRepo(db)
    rateRepo := repository.NewRateOverrideRepo(db)
    bookingRepo := repository.NewBookingRepo(db)
    invoiceRepo := repository.NewInvoiceRepo(db)

    notifier := service.NewRoomNotifier(rdb, cfg.RoomStatusChannel, cacheCfg.Prefix)
    publisher := service.NewEventPublisher(cfg.BrokerURL)

    h := router.Handlers{
        Auth:         handler.NewAuthHandler(cfg, userRepo, tokenRepo),
        Room:         handler.NewRoomHandler(roomRepo, rateRepo, notifier),
        Rate:         handler.NewRateHandler(roomRepo, rateRepo),
        Availability: handler.NewAvailabilityHandler(roomRepo, rateRepo, bookingRepo),
        Booking:      handler.NewBookingHandler(bookingRepo, roomRepo, rateRepo, notifier),
        Settlement:   handler.NewSettlementHandler(bookingRepo, roomRepo, invoiceRepo, notifier, publisher),
        Invoice:      handler.NewInvoiceHandler(invoiceRepo),
    }

    e := echo.New()
    e.Use(middleware.NewTokenBucket(rateCfg, rdb))
    e.Use(middleware.NewRedisCache(cacheCfg, rdb))

    router.RegisterRoutes(e)
    router.RegisterAuth(e, h.Auth, cfg.JWTSecret)
    router.RegisterAPI(e, h, cfg.JWTSecret)

    // The settlement consumer appends an audit line per settled
    // booking; it reconnects on its own and never stops the server.
    if cfg.BrokerURL != "" {
        go func() {
            if err := queue.StartSettlementConsumer(cfg.BrokerURL); err != nil {
                log.Printf("settlement consumer stopped: %v", err)
            }
        }()
    }

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
