package repository

// This file holds the menu<->plat association operations, the only code
// allowed to mutate the denormalized price column of Menu.  Adding or
// removing a single plat calls out to the plats service for that plat's
// current price and then adjusts the menu price by that amount in a single
// atomic UPDATE expression.  There is deliberately no transaction spanning
// the remote call: the join-table write and the price adjustment happen
// after the price has been fetched, and a remote price change between
// association and dissociation will drift the stored price.  That drift is
// an accepted property of the live-lookup design.

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the association writes have to distinguish:
// a duplicate (id_menu, id_plat) pair, and a join insert rejected by the
// foreign key because the menu row does not exist (ER_NO_REFERENCED_ROW
// and its InnoDB variant ER_NO_REFERENCED_ROW_2).
const (
	mysqlDuplicateEntry   = 1062
	mysqlNoReferencedRow  = 1216
	mysqlNoReferencedRow2 = 1452
)

// isDuplicateEntry reports whether err is a MySQL duplicate key violation.
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// isMissingParentRow reports whether err is a foreign key violation caused
// by the referenced parent row being absent.
func isMissingParentRow(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) &&
		(me.Number == mysqlNoReferencedRow || me.Number == mysqlNoReferencedRow2)
}

// GetAllPlatsFromMenu returns the raw join rows for a menu, in insertion
// order.  No plat details are resolved here.
func (r *MenuRepo) GetAllPlatsFromMenu(ctx context.Context, idMenu int) ([]MenuPlat, error) {
	const q = `SELECT id_menu, id_plat FROM Plat_menu WHERE id_menu = ?`
	rows, err := r.db.QueryContext(ctx, q, idMenu)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MenuPlat{}
	for rows.Next() {
		var mp MenuPlat
		if err := rows.Scan(&mp.IDMenu, &mp.IDPlat); err != nil {
			return nil, err
		}
		out = append(out, mp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AddPlatToMenu associates a plat with a menu and increments the menu price
// by the plat's current remote price.  The steps are:
//  1. fetch the plat's price from the gateway; any failure aborts the
//     operation with ErrPriceUnavailable (never a silent zero),
//  2. insert the join row; a duplicate (id_menu, id_plat) pair surfaces as
//     ErrPlatAlreadyInMenu and a foreign key rejection (unknown menu id)
//     as ErrMenuNotFound,
//  3. apply `price = price + ?` in one statement so concurrent additions to
//     the same menu cannot lose updates.
// It returns true only when both the insert and the price update affected a
// row; a price update affecting zero rows means the menu row vanished
// between steps 2 and 3.
func (r *MenuRepo) AddPlatToMenu(ctx context.Context, idMenu, idPlat int) (bool, error) {
	price, err := r.prices.FetchPlatPrice(ctx, idPlat)
	if err != nil {
		return false, fmt.Errorf("%w: plat %d: %v", ErrPriceUnavailable, idPlat, err)
	}

	const qInsert = `INSERT INTO Plat_menu (id_menu, id_plat) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, idMenu, idPlat)
	if err != nil {
		if isDuplicateEntry(err) {
			return false, ErrPlatAlreadyInMenu
		}
		if isMissingParentRow(err) {
			return false, ErrMenuNotFound
		}
		return false, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	const qPrice = `UPDATE Menu SET price = price + ? WHERE id_menu = ?`
	res, err = r.db.ExecContext(ctx, qPrice, price, idMenu)
	if err != nil {
		return false, err
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return inserted != 0 && updated != 0, nil
}

// AddAllPlatsToMenu applies AddPlatToMenu once per id, in list order.  It
// stops at the first failing association and reports that failure;
// associations already applied earlier in the list are kept.
func (r *MenuRepo) AddAllPlatsToMenu(ctx context.Context, idMenu int, platIDs []int) (bool, error) {
	for _, idPlat := range platIDs {
		ok, err := r.AddPlatToMenu(ctx, idMenu, idPlat)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// RemovePlatFromMenu is the mirror of AddPlatToMenu: it fetches the plat's
// current remote price, deletes the join row and decrements the menu price
// by that amount.  Note the decrement uses the price as reported now, which
// may differ from the price in effect when the plat was added.  It returns
// false without touching the price when the association did not exist.
func (r *MenuRepo) RemovePlatFromMenu(ctx context.Context, idMenu, idPlat int) (bool, error) {
	price, err := r.prices.FetchPlatPrice(ctx, idPlat)
	if err != nil {
		return false, fmt.Errorf("%w: plat %d: %v", ErrPriceUnavailable, idPlat, err)
	}

	const qDelete = `DELETE FROM Plat_menu WHERE id_menu = ? AND id_plat = ?`
	res, err := r.db.ExecContext(ctx, qDelete, idMenu, idPlat)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if deleted == 0 {
		return false, nil
	}

	const qPrice = `UPDATE Menu SET price = price - ? WHERE id_menu = ?`
	res, err = r.db.ExecContext(ctx, qPrice, price, idMenu)
	if err != nil {
		return false, err
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return updated != 0, nil
}

// RemoveAllPlatsFromMenu deletes every join row of a menu in one statement
// and resets the price to exactly 0.  Unlike the one-by-one paths this does
// not consult the gateway at all: the reset is direct, so it also repairs
// any drift the live-lookup policy may have accumulated.  Both writes run
// in a transaction.  It returns false when the menu does not exist.
func (r *MenuRepo) RemoveAllPlatsFromMenu(ctx context.Context, idMenu int) (reset bool, err error) {
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

	if _, err = tx.ExecContext(ctx, `DELETE FROM Plat_menu WHERE id_menu = ?`, idMenu); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `UPDATE Menu SET price = 0 WHERE id_menu = ?`, idMenu)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}
