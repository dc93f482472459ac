package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL crea las tres tablas del sistema. La FK de movimientos a
// productos no tiene acción de borrado (el caso de uso deniega borrar un
// producto con historia); la de proveedores es SET NULL: la historia se
// conserva aunque el proveedor desaparezca.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS products (
	id          UUID PRIMARY KEY,
	sku         TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL DEFAULT '',
	subcategory TEXT NOT NULL DEFAULT '',
	cost_price  NUMERIC(14,2) NOT NULL DEFAULT 0,
	sale_price  NUMERIC(14,2) NOT NULL DEFAULT 0,
	stock       BIGINT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS suppliers (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	contact    TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	address    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS inventory_movements (
	id          UUID PRIMARY KEY,
	product_id  UUID NOT NULL REFERENCES products(id),
	type        TEXT NOT NULL,
	quantity    BIGINT NOT NULL,
	supplier_id UUID REFERENCES suppliers(id) ON DELETE SET NULL,
	notes       TEXT NOT NULL DEFAULT '',
	date        TIMESTAMPTZ NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_inventory_movements_product_date
	ON inventory_movements (product_id, date DESC);
CREATE INDEX IF NOT EXISTS idx_inventory_movements_date
	ON inventory_movements (date DESC);
`

// EnsureSchema crea las tablas si no existen. Idempotente; se ejecuta al
// arrancar la aplicación.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
