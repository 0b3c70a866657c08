package sqlite

import (
	"context"
	"database/sql"
)

// schema is the full relational model. order_items cascade-delete with
// their order. Orders carry customer snapshots and must outlive their
// user, so customerId is indexed but not constrained; activity entries
// likewise survive account deletion with the user reference cleared.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	email    TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	name     TEXT NOT NULL,
	role     TEXT NOT NULL DEFAULT 'customer',
	phone    TEXT
);

CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	animal      TEXT NOT NULL,
	category    TEXT NOT NULL,
	price       INTEGER NOT NULL,
	image       TEXT NOT NULL,
	stock       INTEGER NOT NULL DEFAULT 0,
	rating      REAL NOT NULL DEFAULT 0,
	brand       TEXT NOT NULL DEFAULT 'Save My Pet',
	lifeStage   TEXT NOT NULL DEFAULT 'Adult',
	sku         TEXT,
	description TEXT,
	ingredients TEXT
);

CREATE TABLE IF NOT EXISTS orders (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	customerId       INTEGER NOT NULL,
	customerName     TEXT NOT NULL,
	customerEmail    TEXT,
	customerPhone    TEXT,
	shippingAddress  TEXT,
	shippingCity     TEXT,
	shippingState    TEXT,
	total            INTEGER NOT NULL,
	status           TEXT NOT NULL DEFAULT 'pending',
	date             TEXT NOT NULL,
	lastStatusUpdate TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	orderId     INTEGER NOT NULL,
	productId   INTEGER,
	productName TEXT NOT NULL,
	quantity    INTEGER NOT NULL,
	price       INTEGER NOT NULL,
	FOREIGN KEY (orderId) REFERENCES orders (id) ON DELETE CASCADE,
	FOREIGN KEY (productId) REFERENCES products (id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS activity_log (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	userId    INTEGER,
	action    TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	FOREIGN KEY (userId) REFERENCES users (id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customerId);
CREATE INDEX IF NOT EXISTS idx_orders_status_date ON orders (status, date);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (orderId);
`

// Migrate applies the schema. Every statement is idempotent, so it is safe
// to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
