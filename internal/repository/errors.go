// Package repository defines error types that are reused across the data
// access layer.  These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios, for example a missing
// menu (HTTP 404) versus a duplicate association (HTTP 409).
package repository

import "errors"

// ErrMenuNotFound is returned when a menu id has no matching row.
var ErrMenuNotFound = errors.New("menu not found")

// ErrPlatAlreadyInMenu is returned when an association insert hits the
// composite primary key of Plat_menu: the plat is already attached to the
// menu.  Association is intentionally not idempotent.
var ErrPlatAlreadyInMenu = errors.New("plat already associated with menu")

// ErrPriceUnavailable wraps a failed price lookup on the mutation path.  The
// mutation is aborted instead of silently treating the price as zero, which
// would desynchronize the menu's denormalized price.
var ErrPriceUnavailable = errors.New("plat price unavailable")
