package main // Entry point package

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/univamu/menus-api/internal/config"
	"github.com/univamu/menus-api/internal/database"
	"github.com/univamu/menus-api/internal/gateway"
	"github.com/univamu/menus-api/internal/handler"
	"github.com/univamu/menus-api/internal/queue"
	"github.com/univamu/menus-api/internal/repository"
	"github.com/univamu/menus-api/internal/router"
	"github.com/univamu/menus-api/internal/service"
)

func main() {
	_ = godotenv.Load() // load .env when present; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Outbound client towards the plats service.  Keep-alives are disabled
	// so every lookup opens a fresh connection.
	plats := gateway.NewPlatsClient(cfg.PlatsAPIURL, &http.Client{
		Timeout:   cfg.PlatsAPITimeout,
		Transport: &http.Transport{DisableKeepAlives: true},
	})

	repo := repository.NewMenuRepo(db, plats)
	svc := service.NewMenuService(repo, plats)
	h := handler.NewMenuHandler(svc)

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting and caching disabled")
	}

	// Background consumer logging menu price events; runs its own
	// reconnect loop for the broker.
	go func() {
		if err := queue.StartMenuPriceConsumer(); err != nil {
			log.Printf("menu-price-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, h, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
