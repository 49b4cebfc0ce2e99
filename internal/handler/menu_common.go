package handler // handler defines http handlers

import (
    "strconv" // strconv converts string identifiers to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/univamu/menus-api/internal/service" // service composes the store and the plats gateway
)

// MenuHandler bundles the aggregation service used by every menu endpoint.
type MenuHandler struct {
    Service *service.MenuService // Service orchestrates the store and gateway
}

// NewMenuHandler constructs a MenuHandler and panics if the service is nil.
func NewMenuHandler(svc *service.MenuService) *MenuHandler {
    if svc == nil {
        panic("nil service passed to NewMenuHandler")
    }
    return &MenuHandler{Service: svc}
}

// pathID parses a numeric path parameter and reports whether it was valid.
func pathID(c echo.Context, name string) (int, bool) {
    n, err := strconv.Atoi(c.Param(name))
    if err != nil || n < 0 {
        return 0, false
    }
    return n, true
}
