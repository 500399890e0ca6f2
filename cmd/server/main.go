package main // Entry point package

import (
    "context"
    "log"
    "os/signal"
    "syscall"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/lyng148/online-auction/internal/auction"
    "github.com/lyng148/online-auction/internal/config"
    "github.com/lyng148/online-auction/internal/database"
    "github.com/lyng148/online-auction/internal/handler"
    "github.com/lyng148/online-auction/internal/middleware"
    "github.com/lyng148/online-auction/internal/queue"
    "github.com/lyng148/online-auction/internal/realtime"
    "github.com/lyng148/online-auction/internal/repository"
    "github.com/lyng148/online-auction/internal/router"
)

func main() {
    // Load variables from a local .env when present; real deployments set
    // the environment directly.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    auctions := repository.NewMySQLAuctionStore(db)
    ledger := repository.NewMySQLBidLedger(db)
    stock := repository.NewMySQLStockStore(db)

    // Root context cancels on SIGINT/SIGTERM and stops the scheduler and
    // the fulfillment consumer.
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    hub := realtime.NewHub(auctions, ledger)
    orders := queue.NewPublisher(cfg.AMQPURL)
    engine := auction.NewEngine(auctions, ledger, hub, orders, auction.EngineConfig{
        SealedWindow: cfg.SealedWindow,
        HiddenBidCap: cfg.HiddenBidCap,
    })

    // Lifecycle scheduler: opens, expires, closes and refunds on a fixed
    // tick. Every write it makes is conditional, so overlapping instances
    // stay safe.
    sched := auction.NewScheduler(auctions, stock, engine, cfg.Tick)
    go sched.Run(ctx)

    // The demo fulfillment consumer drains auction.won; a real deployment
    // runs the order service instead.
    go func() {
        if err := queue.StartFulfillmentConsumer(cfg.AMQPURL); err != nil {
            log.Printf("fulfillment consumer: %v", err)
        }
    }()

    // Redis-backed rate limiting degrades to pass-through when Redis is
    // unreachable or disabled.
    rdb := config.NewRedisClient()
    limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

    e := echo.New()
    router.RegisterRoutes(e, handler.NewWSHandler(hub, engine, cfg.JWTSecret))
    router.RegisterAuctions(e,
        handler.NewAuctionHandler(auctions, stock, engine, hub),
        handler.NewAdminHandler(auctions, engine),
        cfg.JWTSecret, limiter)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
