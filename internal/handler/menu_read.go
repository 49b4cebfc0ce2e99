package handler // read-side menu handlers

import (
    "errors"   // errors matches repository sentinels
    "net/http" // http provides status code constants

    "github.com/labstack/echo/v4"

    "github.com/univamu/menus-api/internal/repository"
)

// ListMenus handles GET /menus and returns every menu with its plat list
// resolved through the plats gateway.  Plats whose remote lookup fails are
// simply absent from the response.
func (h *MenuHandler) ListMenus(c echo.Context) error {
    menus, err := h.Service.GetAllMenusHydrated(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
    }
    if menus == nil {
        menus = []*repository.Menu{}
    }
    return c.JSON(http.StatusOK, menus)
}

// GetMenu handles GET /menus/get/:id and returns one hydrated menu.
func (h *MenuHandler) GetMenu(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
    }
    m, err := h.Service.GetMenuHydrated(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrMenuNotFound) {
            return c.JSON(http.StatusNotFound, map[string]string{"error": "menu not found"})
        }
        return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
    }
    return c.JSON(http.StatusOK, m)
}

// ListPlatsFromMenu handles GET /menus/get-all-plat-from-menu/:id and
// returns the raw join rows for a menu.  A menu without associations yields
// an empty array; an unknown menu id yields 404.
func (h *MenuHandler) ListPlatsFromMenu(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
    }
    links, err := h.Service.GetAllPlatsFromMenu(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrMenuNotFound) {
            return c.JSON(http.StatusNotFound, map[string]string{"error": "menu not found"})
        }
        return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
    }
    return c.JSON(http.StatusOK, links)
}
