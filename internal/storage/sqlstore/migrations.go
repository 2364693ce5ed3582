package sqlstore

import "database/sql"

// schema sets up the ledger tables. It is valid for both SQLite and
// PostgreSQL and runs on startup to ensure tables exist.
// Tables are listed in foreign key order.
//
// Amounts are whole currency units in BIGINT; dates are Unix seconds.
// credit_entries.payment_id has no foreign key: reversal entries must
// keep pointing at payments that no longer exist.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS people (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users(id),
    name TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS movements (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users(id),
    kind TEXT NOT NULL CHECK (kind IN ('income', 'expense', 'payment')),
    category TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    amount BIGINT NOT NULL CHECK (amount >= 0),
    date BIGINT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS debt_lines (
    id TEXT PRIMARY KEY,
    movement_id TEXT NOT NULL REFERENCES movements(id),
    person_id TEXT NOT NULL REFERENCES people(id),
    share_amount BIGINT NOT NULL CHECK (share_amount >= 0),
    paid BIGINT NOT NULL DEFAULT 0 CHECK (paid >= 0),
    outstanding BIGINT NOT NULL DEFAULT 0 CHECK (outstanding >= 0),
    status TEXT NOT NULL,
    is_full_payer BOOLEAN NOT NULL DEFAULT FALSE,
    UNIQUE (movement_id, person_id)
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    debt_line_id TEXT NOT NULL REFERENCES debt_lines(id),
    amount BIGINT NOT NULL CHECK (amount > 0),
    date BIGINT NOT NULL,
    credit_funded BOOLEAN NOT NULL DEFAULT FALSE,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS indirect_allocations (
    id TEXT PRIMARY KEY,
    source_payment_id TEXT NOT NULL REFERENCES payments(id),
    destination_movement_id TEXT NOT NULL REFERENCES movements(id),
    destination_person_id TEXT NOT NULL REFERENCES people(id),
    destination_payment_id TEXT NOT NULL REFERENCES payments(id),
    amount_applied BIGINT NOT NULL CHECK (amount_applied > 0),
    date BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS credit_entries (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users(id),
    person_id TEXT NOT NULL REFERENCES people(id),
    amount BIGINT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('credit', 'debit')),
    origin TEXT NOT NULL,
    payment_id TEXT,
    comment TEXT NOT NULL DEFAULT '',
    date BIGINT NOT NULL,
    seq BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_people_owner_id ON people(owner_id);
CREATE INDEX IF NOT EXISTS idx_movements_owner_date ON movements(owner_id, date);
CREATE INDEX IF NOT EXISTS idx_debt_lines_movement_id ON debt_lines(movement_id);
CREATE INDEX IF NOT EXISTS idx_debt_lines_person_id ON debt_lines(person_id);
CREATE INDEX IF NOT EXISTS idx_payments_debt_line_id ON payments(debt_line_id);
CREATE INDEX IF NOT EXISTS idx_allocations_source ON indirect_allocations(source_payment_id);
CREATE INDEX IF NOT EXISTS idx_allocations_destination_payment ON indirect_allocations(destination_payment_id);
CREATE INDEX IF NOT EXISTS idx_allocations_destination_movement ON indirect_allocations(destination_movement_id);
CREATE INDEX IF NOT EXISTS idx_credit_entries_person ON credit_entries(owner_id, person_id);
CREATE INDEX IF NOT EXISTS idx_credit_entries_payment ON credit_entries(payment_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
