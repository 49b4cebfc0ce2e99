// Package repository contains data access logic separated from HTTP handlers.
// This file defines the Menu model and repository methods for CRUD
// operations.  A Menu carries a denormalized price column maintained by the
// association operations in menu_plat_association.go; nothing else is ever
// allowed to write that column.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to match sentinel error values
	"time"         // time holds the creation timestamp scanned from DATETIME

	"github.com/univamu/menus-api/internal/gateway"
)

// Menu represents a menu row persisted in the database.  Price is derived
// from the plats associated through Plat_menu and is never set directly by
// clients.  Plats is populated only on the hydrated read path (service
// layer); it does not correspond to a column.
type Menu struct {
	ID           int            `json:"id_menu"`
	Author       string         `json:"author"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Price        float64        `json:"price"`
	CreationDate time.Time      `json:"creation_date"`
	Plats        []gateway.Plat `json:"plats,omitempty"`
}

// MenuPlat is a raw row of the Plat_menu join table.
type MenuPlat struct {
	IDMenu int `json:"id_menu"`
	IDPlat int `json:"id_plat"`
}

// PriceFetcher is the slice of the plats gateway needed by association
// mutations.  *gateway.PlatsClient satisfies it.
type PriceFetcher interface {
	FetchPlatPrice(ctx context.Context, idPlat int) (float64, error)
}

// MenuRepo encapsulates all database queries related to menus and their
// plat associations.  It depends on a sql.DB connection pool and on the
// price side of the plats gateway.
type MenuRepo struct {
	db     *sql.DB      // db is the underlying database connection pool
	prices PriceFetcher // prices resolves a plat's current price remotely
}

// NewMenuRepo constructs a MenuRepo with the provided DB handle and price
// fetcher.  This function allows dependency injection of both in tests and
// at startup.
func NewMenuRepo(db *sql.DB, prices PriceFetcher) *MenuRepo {
	return &MenuRepo{db: db, prices: prices}
}

// GetMenu fetches a menu's scalar attributes by id.  It returns
// ErrMenuNotFound if no row is found.  The Plats field is left nil; the
// service layer hydrates it via the gateway.
func (r *MenuRepo) GetMenu(ctx context.Context, id int) (*Menu, error) {
	const q = `SELECT id_menu, author, title, description, price, creation_date
	           FROM Menu WHERE id_menu = ?`
	var m Menu
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Author, &m.Title, &m.Description, &m.Price, &m.CreationDate,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetAllMenus returns every menu row in storage order, without hydrating
// plat lists.
func (r *MenuRepo) GetAllMenus(ctx context.Context) ([]*Menu, error) {
	const q = `SELECT id_menu, author, title, description, price, creation_date FROM Menu`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Menu
	for rows.Next() {
		m := new(Menu)
		if err := rows.Scan(&m.ID, &m.Author, &m.Title, &m.Description, &m.Price, &m.CreationDate); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMenu inserts a menu row with price 0 and then associates each plat
// id in order through AddPlatToMenu, so the resulting price is the sum of
// the gateway-reported prices at creation time.  An empty platIDs slice is
// valid and leaves the menu with price 0 and no associations.  A failure
// partway through the association loop is returned as-is: the already
// inserted row and the associations applied so far are not rolled back.
func (r *MenuRepo) CreateMenu(ctx context.Context, author, title, description string, platIDs []int) (int, error) {
	const q = `INSERT INTO Menu (author, title, description, price) VALUES (?, ?, ?, 0)`
	res, err := r.db.ExecContext(ctx, q, author, title, description)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, idPlat := range platIDs {
		if _, err := r.AddPlatToMenu(ctx, int(id), idPlat); err != nil {
			return int(id), err
		}
	}
	return int(id), nil
}

// UpdateMenu updates the author, title and description of a menu.  Price,
// creation date and associations are untouched.  It returns false when no
// row matched the id.
func (r *MenuRepo) UpdateMenu(ctx context.Context, id int, author, title, description string) (bool, error) {
	const q = `UPDATE Menu SET author = ?, title = ?, description = ? WHERE id_menu = ?`
	res, err := r.db.ExecContext(ctx, q, author, title, description, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// DeleteMenu removes a menu row together with all of its join entries.  The
// two deletes run inside a transaction so the join table can never end up
// referencing a menu that no longer exists, even without the DB-level
// cascade.  It returns false when no menu row matched.
func (r *MenuRepo) DeleteMenu(ctx context.Context, id int) (deleted bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM Plat_menu WHERE id_menu = ?`, id); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM Menu WHERE id_menu = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}
