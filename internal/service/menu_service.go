// Package service composes the menu repository and the plats gateway.  The
// repository only knows about local rows; this layer resolves join entries
// into full plat DTOs for read responses and emits domain events when a
// mutation changes a menu's price.
package service

import (
	"context"
	"log"
	"time"

	"github.com/univamu/menus-api/internal/gateway"
	"github.com/univamu/menus-api/internal/queue"
	"github.com/univamu/menus-api/internal/repository"
)

// MenuStore is the slice of the repository the service depends on.
// *repository.MenuRepo satisfies it.
type MenuStore interface {
	GetMenu(ctx context.Context, id int) (*repository.Menu, error)
	GetAllMenus(ctx context.Context) ([]*repository.Menu, error)
	CreateMenu(ctx context.Context, author, title, description string, platIDs []int) (int, error)
	UpdateMenu(ctx context.Context, id int, author, title, description string) (bool, error)
	DeleteMenu(ctx context.Context, id int) (bool, error)
	GetAllPlatsFromMenu(ctx context.Context, idMenu int) ([]repository.MenuPlat, error)
	AddPlatToMenu(ctx context.Context, idMenu, idPlat int) (bool, error)
	AddAllPlatsToMenu(ctx context.Context, idMenu int, platIDs []int) (bool, error)
	RemovePlatFromMenu(ctx context.Context, idMenu, idPlat int) (bool, error)
	RemoveAllPlatsFromMenu(ctx context.Context, idMenu int) (bool, error)
}

// PlatFetcher is the detail-lookup side of the plats gateway used for
// hydration.  *gateway.PlatsClient satisfies it.
type PlatFetcher interface {
	FetchPlat(ctx context.Context, idPlat int) (*gateway.Plat, error)
}

// MenuService answers read requests with fully hydrated menus and forwards
// mutations to the store, publishing a price event after each mutation that
// may have changed a menu's price.
type MenuService struct {
	store MenuStore
	plats PlatFetcher

	// publish can be swapped in tests; defaults to the RabbitMQ publisher.
	publish func(ctx context.Context, ev queue.MenuPriceUpdatedEvent) error
}

// NewMenuService constructs a MenuService and panics if a dependency is nil.
func NewMenuService(store MenuStore, plats PlatFetcher) *MenuService {
	if store == nil || plats == nil {
		panic("nil dependency passed to NewMenuService")
	}
	return &MenuService{store: store, plats: plats, publish: PublishMenuPriceUpdated}
}

// hydrate resolves a menu's join entries into plat DTOs.  Entries whose
// remote lookup fails are dropped rather than failing the whole response;
// the menu is served with the plats that could be resolved.
func (s *MenuService) hydrate(ctx context.Context, m *repository.Menu) error {
	links, err := s.store.GetAllPlatsFromMenu(ctx, m.ID)
	if err != nil {
		return err
	}
	m.Plats = []gateway.Plat{}
	for _, link := range links {
		p, err := s.plats.FetchPlat(ctx, link.IDPlat)
		if err != nil {
			log.Printf("menu %d: dropping plat %d from response: %v", m.ID, link.IDPlat, err)
			continue
		}
		m.Plats = append(m.Plats, *p)
	}
	return nil
}

// GetMenuHydrated returns one menu with its plat list resolved via the
// gateway.  repository.ErrMenuNotFound passes through untouched.
func (s *MenuService) GetMenuHydrated(ctx context.Context, id int) (*repository.Menu, error) {
	m, err := s.store.GetMenu(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetAllMenusHydrated returns every menu with its plat list resolved.
func (s *MenuService) GetAllMenusHydrated(ctx context.Context) ([]*repository.Menu, error) {
	menus, err := s.store.GetAllMenus(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range menus {
		if err := s.hydrate(ctx, m); err != nil {
			return nil, err
		}
	}
	return menus, nil
}

// CreateMenu creates a menu with zero or more initial plat associations and
// returns the new menu id.
func (s *MenuService) CreateMenu(ctx context.Context, author, title, description string, platIDs []int) (int, error) {
	id, err := s.store.CreateMenu(ctx, author, title, description, platIDs)
	if err != nil {
		return id, err
	}
	if len(platIDs) > 0 {
		s.publishPriceEvent(ctx, id, 0, "plat_added")
	}
	return id, nil
}

// UpdateMenu updates the author, title and description of a menu.
func (s *MenuService) UpdateMenu(ctx context.Context, id int, author, title, description string) (bool, error) {
	return s.store.UpdateMenu(ctx, id, author, title, description)
}

// DeleteMenu removes a menu and all of its associations.
func (s *MenuService) DeleteMenu(ctx context.Context, id int) (bool, error) {
	return s.store.DeleteMenu(ctx, id)
}

// GetAllPlatsFromMenu returns the raw join rows of a menu after verifying
// the menu exists, so a missing menu maps to not-found instead of an empty
// list.
func (s *MenuService) GetAllPlatsFromMenu(ctx context.Context, idMenu int) ([]repository.MenuPlat, error) {
	if _, err := s.store.GetMenu(ctx, idMenu); err != nil {
		return nil, err
	}
	return s.store.GetAllPlatsFromMenu(ctx, idMenu)
}

// AddPlatToMenu associates one plat with a menu.
func (s *MenuService) AddPlatToMenu(ctx context.Context, idMenu, idPlat int) (bool, error) {
	ok, err := s.store.AddPlatToMenu(ctx, idMenu, idPlat)
	if err == nil && ok {
		s.publishPriceEvent(ctx, idMenu, idPlat, "plat_added")
	}
	return ok, err
}

// AddAllPlatsToMenu associates several plats with a menu, failing fast on
// the first plat that cannot be attached.
func (s *MenuService) AddAllPlatsToMenu(ctx context.Context, idMenu int, platIDs []int) (bool, error) {
	ok, err := s.store.AddAllPlatsToMenu(ctx, idMenu, platIDs)
	if err == nil && ok && len(platIDs) > 0 {
		s.publishPriceEvent(ctx, idMenu, 0, "plat_added")
	}
	return ok, err
}

// RemovePlatFromMenu dissociates one plat from a menu.
func (s *MenuService) RemovePlatFromMenu(ctx context.Context, idMenu, idPlat int) (bool, error) {
	ok, err := s.store.RemovePlatFromMenu(ctx, idMenu, idPlat)
	if err == nil && ok {
		s.publishPriceEvent(ctx, idMenu, idPlat, "plat_removed")
	}
	return ok, err
}

// RemoveAllPlatsFromMenu dissociates every plat from a menu and resets its
// price to zero.
func (s *MenuService) RemoveAllPlatsFromMenu(ctx context.Context, idMenu int) (bool, error) {
	ok, err := s.store.RemoveAllPlatsFromMenu(ctx, idMenu)
	if err == nil && ok {
		s.publishPriceEvent(ctx, idMenu, 0, "reset")
	}
	return ok, err
}

// publishPriceEvent reads the menu's price back and publishes a
// menu.price.updated event.  Publishing is best-effort: failures are logged
// inside the publisher and never surfaced to the request.
func (s *MenuService) publishPriceEvent(ctx context.Context, idMenu, idPlat int, change string) {
	var price float64
	if m, err := s.store.GetMenu(ctx, idMenu); err == nil {
		price = m.Price
	}
	_ = s.publish(ctx, queue.MenuPriceUpdatedEvent{
		IDMenu:     idMenu,
		IDPlat:     idPlat,
		Change:     change,
		Price:      price,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
