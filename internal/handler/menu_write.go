package handler // write-side menu handlers

import (
    "errors"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/univamu/menus-api/internal/repository"
)

// CreateMenu handles PUT /menus/create.  The body carries the menu fields
// and an optional list of plat ids to associate immediately; the created
// menu's price ends up as the sum of those plats' current prices.  The
// endpoint always answers 200 with a plain confirmation or error message
// body, a wire contract existing clients depend on.
func (h *MenuHandler) CreateMenu(c echo.Context) error {
    var body struct {
        Author      string `json:"author"`
        Title       string `json:"title"`
        Description string `json:"description"`
        ListPlat    []int  `json:"listPlat"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }

    // No field validation here: any well-formed body is accepted and the
    // outcome is reported in the message, matching what clients expect.
    if _, err := h.Service.CreateMenu(c.Request().Context(), body.Author, body.Title, body.Description, body.ListPlat); err != nil {
        return c.String(http.StatusOK, fmt.Sprintf("An error occurred while creating menu %s!", body.Title))
    }
    return c.String(http.StatusOK, fmt.Sprintf("Menu %s has been created!", body.Title))
}

// UpdateMenu handles PUT /menus/update/:id.  Only author, title and
// description are taken from the body; price and creation date can never be
// set through this endpoint.
func (h *MenuHandler) UpdateMenu(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
    }
    var body struct {
        Author      string `json:"author"`
        Title       string `json:"title"`
        Description string `json:"description"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
    }

    ok, err := h.Service.UpdateMenu(c.Request().Context(), id, body.Author, body.Title, body.Description)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
    }
    if !ok {
        return c.JSON(http.StatusNotFound, map[string]string{"error": "menu not found"})
    }
    return c.String(http.StatusOK, fmt.Sprintf("Menu %d has been updated!", id))
}

// DeleteMenu handles DELETE /menus/delete/:id and removes the menu together
// with all of its plat associations.
func (h *MenuHandler) DeleteMenu(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
    }
    ok, err := h.Service.DeleteMenu(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrMenuNotFound) {
            return c.JSON(http.StatusNotFound, map[string]string{"error": "menu not found"})
        }
        return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
    }
    if !ok {
        return c.JSON(http.StatusNotFound, map[string]string{"error": "menu not found"})
    }
    return c.String(http.StatusOK, fmt.Sprintf("Menu %d has been deleted!", id))
}
