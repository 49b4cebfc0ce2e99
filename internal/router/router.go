package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/univamu/menus-api/internal/config"
    "github.com/univamu/menus-api/internal/handler"
    "github.com/univamu/menus-api/internal/middleware"
)

// RegisterRoutes registers the health check and every menu endpoint on the
// provided Echo instance.  Routes are mounted at the root (no version
// prefix) so existing consumers keep working without changes.
//
// The Redis-backed token bucket applies to the whole /menus group.  The
// response cache is attached only to the join-table listing: that endpoint
// serves purely local rows, whereas hydrated menu responses embed live plat
// details and are never cached.
func RegisterRoutes(e *echo.Echo, h *handler.MenuHandler, rdb *redis.Client) {
    // Health endpoint for load balancers and monitoring.
    e.GET("/healthz", handler.Health)

    g := e.Group("/menus", middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    // ---- Menus ----
    g.GET("", h.ListMenus)
    g.GET("/get/:id", h.GetMenu)
    g.PUT("/create", h.CreateMenu)
    g.PUT("/update/:id", h.UpdateMenu)
    g.DELETE("/delete/:id", h.DeleteMenu)

    // ---- Plat associations ----
    // Cached entries are not invalidated by the mutation endpoints below:
    // after an add/remove the listing can be stale for up to CACHE_TTL.
    cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
    g.GET("/get-all-plat-from-menu/:id", h.ListPlatsFromMenu, cached)
    g.PUT("/add-plat-to-menu", h.AddPlatToMenu)
    g.PUT("/add-all-plat-to-menu", h.AddAllPlatsToMenu)
    g.DELETE("/remove-plat-from-menu/:id_menu/:id_plat", h.RemovePlatFromMenu)
    g.DELETE("/remove-all-plats-from-menu/:id_menu", h.RemoveAllPlatsFromMenu)
}
