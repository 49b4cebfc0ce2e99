package service

import (
	"context"
	"errors"
	"testing"

	"github.com/univamu/menus-api/internal/gateway"
	"github.com/univamu/menus-api/internal/queue"
	"github.com/univamu/menus-api/internal/repository"
)

// fakeStore is an in-memory MenuStore with just enough behavior for the
// service tests: menus by id and join rows in insertion order.
type fakeStore struct {
	menus  map[int]*repository.Menu
	links  []repository.MenuPlat
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{menus: map[int]*repository.Menu{}, nextID: 1}
}

func (f *fakeStore) GetMenu(_ context.Context, id int) (*repository.Menu, error) {
	m, ok := f.menus[id]
	if !ok {
		return nil, repository.ErrMenuNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeStore) GetAllMenus(_ context.Context) ([]*repository.Menu, error) {
	out := []*repository.Menu{}
	for id := 1; id < f.nextID; id++ {
		if m, ok := f.menus[id]; ok {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateMenu(_ context.Context, author, title, description string, platIDs []int) (int, error) {
	id := f.nextID
	f.nextID++
	f.menus[id] = &repository.Menu{ID: id, Author: author, Title: title, Description: description}
	for _, p := range platIDs {
		f.links = append(f.links, repository.MenuPlat{IDMenu: id, IDPlat: p})
	}
	return id, nil
}

func (f *fakeStore) UpdateMenu(_ context.Context, id int, author, title, description string) (bool, error) {
	m, ok := f.menus[id]
	if !ok {
		return false, nil
	}
	m.Author, m.Title, m.Description = author, title, description
	return true, nil
}

func (f *fakeStore) DeleteMenu(_ context.Context, id int) (bool, error) {
	if _, ok := f.menus[id]; !ok {
		return false, nil
	}
	delete(f.menus, id)
	return true, nil
}

func (f *fakeStore) GetAllPlatsFromMenu(_ context.Context, idMenu int) ([]repository.MenuPlat, error) {
	out := []repository.MenuPlat{}
	for _, l := range f.links {
		if l.IDMenu == idMenu {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) AddPlatToMenu(_ context.Context, idMenu, idPlat int) (bool, error) {
	if _, ok := f.menus[idMenu]; !ok {
		return false, nil
	}
	f.links = append(f.links, repository.MenuPlat{IDMenu: idMenu, IDPlat: idPlat})
	return true, nil
}

func (f *fakeStore) AddAllPlatsToMenu(ctx context.Context, idMenu int, platIDs []int) (bool, error) {
	for _, p := range platIDs {
		if ok, err := f.AddPlatToMenu(ctx, idMenu, p); err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (f *fakeStore) RemovePlatFromMenu(_ context.Context, idMenu, idPlat int) (bool, error) {
	for i, l := range f.links {
		if l.IDMenu == idMenu && l.IDPlat == idPlat {
			f.links = append(f.links[:i], f.links[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) RemoveAllPlatsFromMenu(_ context.Context, idMenu int) (bool, error) {
	if _, ok := f.menus[idMenu]; !ok {
		return false, nil
	}
	kept := f.links[:0]
	for _, l := range f.links {
		if l.IDMenu != idMenu {
			kept = append(kept, l)
		}
	}
	f.links = kept
	return true, nil
}

// fakePlats resolves plat details from a map; missing ids fail the lookup.
type fakePlats struct {
	plats map[int]gateway.Plat
}

func (f fakePlats) FetchPlat(_ context.Context, idPlat int) (*gateway.Plat, error) {
	p, ok := f.plats[idPlat]
	if !ok {
		return nil, gateway.ErrPlatNotFound
	}
	return &p, nil
}

// newTestService wires a service over the fakes with event publishing
// captured in the returned slice instead of hitting a broker.
func newTestService(store MenuStore, plats PlatFetcher) (*MenuService, *[]queue.MenuPriceUpdatedEvent) {
	svc := NewMenuService(store, plats)
	events := &[]queue.MenuPriceUpdatedEvent{}
	svc.publish = func(_ context.Context, ev queue.MenuPriceUpdatedEvent) error {
		*events = append(*events, ev)
		return nil
	}
	return svc, events
}

func TestGetMenuHydrated_DropsFailingLookups(t *testing.T) {
	store := newFakeStore()
	id, _ := store.CreateMenu(context.Background(), "chef1", "Lunch", "d", []int{7, 9})
	plats := fakePlats{plats: map[int]gateway.Plat{
		7: {ID: 7, Name: "Soupe", Price: 4.20},
		// plat 9 is unknown to the plats service
	}}
	svc, _ := newTestService(store, plats)

	m, err := svc.GetMenuHydrated(context.Background(), id)
	if err != nil {
		t.Fatalf("GetMenuHydrated: %v", err)
	}
	if len(m.Plats) != 1 || m.Plats[0].ID != 7 {
		t.Fatalf("plats = %+v, want only plat 7", m.Plats)
	}
}

func TestGetMenuHydrated_EmptyMenuHasEmptyPlatList(t *testing.T) {
	store := newFakeStore()
	id, _ := store.CreateMenu(context.Background(), "chef1", "Lunch", "d", nil)
	svc, _ := newTestService(store, fakePlats{})

	m, err := svc.GetMenuHydrated(context.Background(), id)
	if err != nil {
		t.Fatalf("GetMenuHydrated: %v", err)
	}
	if m.Plats == nil || len(m.Plats) != 0 {
		t.Fatalf("plats = %#v, want empty non-nil slice", m.Plats)
	}
}

func TestGetMenuHydrated_NotFound(t *testing.T) {
	svc, _ := newTestService(newFakeStore(), fakePlats{})
	if _, err := svc.GetMenuHydrated(context.Background(), 404); !errors.Is(err, repository.ErrMenuNotFound) {
		t.Fatalf("err = %v, want ErrMenuNotFound", err)
	}
}

func TestGetAllMenusHydrated(t *testing.T) {
	store := newFakeStore()
	_, _ = store.CreateMenu(context.Background(), "chef1", "Lunch", "d", []int{7})
	_, _ = store.CreateMenu(context.Background(), "chef2", "Dinner", "d", nil)
	plats := fakePlats{plats: map[int]gateway.Plat{7: {ID: 7, Name: "Soupe", Price: 4.20}}}
	svc, _ := newTestService(store, plats)

	menus, err := svc.GetAllMenusHydrated(context.Background())
	if err != nil {
		t.Fatalf("GetAllMenusHydrated: %v", err)
	}
	if len(menus) != 2 {
		t.Fatalf("got %d menus, want 2", len(menus))
	}
	if len(menus[0].Plats) != 1 || len(menus[1].Plats) != 0 {
		t.Fatalf("unexpected hydration: %+v", menus)
	}
}

func TestGetAllPlatsFromMenu_UnknownMenuIsNotFound(t *testing.T) {
	svc, _ := newTestService(newFakeStore(), fakePlats{})
	if _, err := svc.GetAllPlatsFromMenu(context.Background(), 404); !errors.Is(err, repository.ErrMenuNotFound) {
		t.Fatalf("err = %v, want ErrMenuNotFound", err)
	}
}

func TestAddPlatToMenu_PublishesEvent(t *testing.T) {
	store := newFakeStore()
	id, _ := store.CreateMenu(context.Background(), "chef1", "Lunch", "d", nil)
	svc, events := newTestService(store, fakePlats{})

	ok, err := svc.AddPlatToMenu(context.Background(), id, 7)
	if err != nil || !ok {
		t.Fatalf("AddPlatToMenu = (%v, %v)", ok, err)
	}
	if len(*events) != 1 {
		t.Fatalf("got %d events, want 1", len(*events))
	}
	ev := (*events)[0]
	if ev.IDMenu != id || ev.IDPlat != 7 || ev.Change != "plat_added" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestAddPlatToMenu_NoEventOnFailure(t *testing.T) {
	svc, events := newTestService(newFakeStore(), fakePlats{})

	ok, err := svc.AddPlatToMenu(context.Background(), 404, 7)
	if err != nil || ok {
		t.Fatalf("AddPlatToMenu = (%v, %v), want (false, nil)", ok, err)
	}
	if len(*events) != 0 {
		t.Fatalf("no event expected on failed mutation, got %+v", *events)
	}
}

func TestRemovePlatFromMenu_PublishesEvent(t *testing.T) {
	store := newFakeStore()
	id, _ := store.CreateMenu(context.Background(), "chef1", "Lunch", "d", []int{7})
	svc, events := newTestService(store, fakePlats{})

	ok, err := svc.RemovePlatFromMenu(context.Background(), id, 7)
	if err != nil || !ok {
		t.Fatalf("RemovePlatFromMenu = (%v, %v)", ok, err)
	}
	if len(*events) != 1 || (*events)[0].Change != "plat_removed" {
		t.Fatalf("unexpected events %+v", *events)
	}
}

func TestRemoveAllPlatsFromMenu_PublishesReset(t *testing.T) {
	store := newFakeStore()
	id, _ := store.CreateMenu(context.Background(), "chef1", "Lunch", "d", []int{7, 9})
	svc, events := newTestService(store, fakePlats{})

	ok, err := svc.RemoveAllPlatsFromMenu(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("RemoveAllPlatsFromMenu = (%v, %v)", ok, err)
	}
	if len(*events) != 1 || (*events)[0].Change != "reset" {
		t.Fatalf("unexpected events %+v", *events)
	}
	links, _ := svc.GetAllPlatsFromMenu(context.Background(), id)
	if len(links) != 0 {
		t.Fatalf("join rows remain after reset: %+v", links)
	}
}

func TestCreateMenu_PublishesOnlyWithInitialPlats(t *testing.T) {
	store := newFakeStore()
	svc, events := newTestService(store, fakePlats{})

	if _, err := svc.CreateMenu(context.Background(), "chef1", "Lunch", "d", nil); err != nil {
		t.Fatalf("CreateMenu: %v", err)
	}
	if len(*events) != 0 {
		t.Fatalf("no event expected for an empty menu, got %+v", *events)
	}

	if _, err := svc.CreateMenu(context.Background(), "chef1", "Dinner", "d", []int{7}); err != nil {
		t.Fatalf("CreateMenu: %v", err)
	}
	if len(*events) != 1 {
		t.Fatalf("got %d events, want 1", len(*events))
	}
}
