package db

var schema = `
CREATE TABLE IF NOT EXISTS products (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL UNIQUE,
	price NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS stock_movements (
	id BIGSERIAL PRIMARY KEY,
	product_id BIGINT NOT NULL REFERENCES products (id),
	action VARCHAR(32) NOT NULL CHECK (action IN ('stock_in', 'sale', 'manual_removal')),
	quantity INT NOT NULL CHECK (quantity > 0),
	recorded_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stock_movements_product_id ON stock_movements (product_id);

CREATE TABLE IF NOT EXISTS current_stock (
	product_id BIGINT PRIMARY KEY REFERENCES products (id),
	quantity INT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	last_updated TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_events (
	event_id UUID PRIMARY KEY,
	published_at TIMESTAMPTZ NOT NULL,
	event_name VARCHAR(255) NOT NULL,
	event_payload JSONB NOT NULL
);
`
