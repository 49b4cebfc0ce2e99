package handler // association handlers between menus and plats

import (
    "errors"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/univamu/menus-api/internal/repository"
)

// platMutationError maps association failures to HTTP responses shared by
// the add/remove endpoints: unknown menu -> 404, duplicate association ->
// 409, unreachable plats service -> 502.
func platMutationError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, repository.ErrMenuNotFound):
        return c.JSON(http.StatusNotFound, map[string]string{"error": "menu not found"})
    case errors.Is(err, repository.ErrPlatAlreadyInMenu):
        return c.JSON(http.StatusConflict, map[string]string{"error": "plat already associated with menu"})
    case errors.Is(err, repository.ErrPriceUnavailable):
        return c.JSON(http.StatusBadGateway, map[string]string{"error": "plat price unavailable"})
    default:
        return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
    }
}

// AddPlatToMenu handles PUT /menus/add-plat-to-menu.  The plat's current
// price is fetched from the plats service and added to the menu's price.
func (h *MenuHandler) AddPlatToMenu(c echo.Context) error {
    var body struct {
        IDMenu int `json:"id_menu"`
        IDPlat int `json:"id_plat"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    ok, err := h.Service.AddPlatToMenu(c.Request().Context(), body.IDMenu, body.IDPlat)
    if err != nil {
        return platMutationError(c, err)
    }
    if !ok {
        return c.JSON(http.StatusNotFound, map[string]string{"error": "menu not found"})
    }
    return c.String(http.StatusOK, fmt.Sprintf("Plat %d has been added to menu %d!", body.IDPlat, body.IDMenu))
}

// AddAllPlatsToMenu handles PUT /menus/add-all-plat-to-menu.  Associations
// are applied in list order and the operation stops at the first failure;
// plats attached before the failure stay attached.
func (h *MenuHandler) AddAllPlatsToMenu(c echo.Context) error {
    var body struct {
        IDMenu     int   `json:"id_menu"`
        ListPlatID []int `json:"listPlatId"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }
    ok, err := h.Service.AddAllPlatsToMenu(c.Request().Context(), body.IDMenu, body.ListPlatID)
    if err != nil {
        return platMutationError(c, err)
    }
    if !ok {
        return c.JSON(http.StatusNotFound, map[string]string{"error": "menu not found"})
    }
    return c.String(http.StatusOK, fmt.Sprintf("%d plats have been added to menu %d!", len(body.ListPlatID), body.IDMenu))
}

// RemovePlatFromMenu handles DELETE /menus/remove-plat-from-menu/:id_menu/:id_plat.
// The plat's current price is fetched and subtracted from the menu's price;
// if the remote price changed since the plat was added, the stored price
// drifts accordingly.
func (h *MenuHandler) RemovePlatFromMenu(c echo.Context) error {
    idMenu, okMenu := pathID(c, "id_menu")
    idPlat, okPlat := pathID(c, "id_plat")
    if !okMenu || !okPlat {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
    }
    ok, err := h.Service.RemovePlatFromMenu(c.Request().Context(), idMenu, idPlat)
    if err != nil {
        return platMutationError(c, err)
    }
    if !ok {
        return c.JSON(http.StatusNotFound, map[string]string{"error": "association not found"})
    }
    return c.String(http.StatusOK, fmt.Sprintf("Plat %d has been removed from menu %d!", idPlat, idMenu))
}

// RemoveAllPlatsFromMenu handles DELETE /menus/remove-all-plats-from-menu/:id_menu.
// Every join row is deleted in one statement and the price is reset to 0
// directly, without consulting the plats service.
func (h *MenuHandler) RemoveAllPlatsFromMenu(c echo.Context) error {
    idMenu, ok := pathID(c, "id_menu")
    if !ok {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
    }
    ok, err := h.Service.RemoveAllPlatsFromMenu(c.Request().Context(), idMenu)
    if err != nil {
        return platMutationError(c, err)
    }
    if !ok {
        return c.JSON(http.StatusNotFound, map[string]string{"error": "menu not found"})
    }
    return c.String(http.StatusOK, fmt.Sprintf("All plats have been removed from menu %d!", idMenu))
}
