package database

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the Menu and Plat_menu tables when they do not exist
// yet.  The join table carries a composite primary key so the same plat can
// never be associated twice with the same menu, and the foreign key cascades
// deletes so a removed menu can never leave orphan join rows behind.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const menuTable = `
	CREATE TABLE IF NOT EXISTS Menu (
		id_menu       INT AUTO_INCREMENT PRIMARY KEY,
		author        VARCHAR(255)  NOT NULL,
		title         VARCHAR(255)  NOT NULL,
		description   TEXT          NOT NULL,
		price         DECIMAL(10,2) NOT NULL DEFAULT 0,
		creation_date DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	const platMenuTable = `
	CREATE TABLE IF NOT EXISTS Plat_menu (
		id_menu INT NOT NULL,
		id_plat INT NOT NULL,
		PRIMARY KEY (id_menu, id_plat),
		CONSTRAINT fk_plat_menu_menu FOREIGN KEY (id_menu)
			REFERENCES Menu (id_menu) ON DELETE CASCADE
	)`

	if _, err := db.ExecContext(ctx, menuTable); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, platMenuTable); err != nil {
		return err
	}
	return nil
}
