package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Nombres de los índices únicos del libro, usados para despachar el error de
// inserción: el mismo INSERT puede chocar con la numeración del bucket
// (carrera de commits concurrentes, reintentable) o con el upload ya
// confirmado (idempotencia, terminal).
const (
	entryBucketNumberConstraint = "accounting_entries_bucket_number_key"
	entryUploadConstraint       = "accounting_entries_upload_id_key"
)

// schemaDDL esquema completo de la aplicación, idempotente.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL,
	status        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);

CREATE TABLE IF NOT EXISTS companies (
	id              BIGSERIAL PRIMARY KEY,
	name            TEXT NOT NULL,
	normalized_name TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS companies_normalized_name_key ON companies (normalized_name);

CREATE TABLE IF NOT EXISTS expense_types (
	id              BIGSERIAL PRIMARY KEY,
	text            TEXT NOT NULL,
	normalized_text TEXT NOT NULL,
	pl_category     TEXT NOT NULL,
	sort_order      INTEGER NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS expense_types_normalized_text_key ON expense_types (normalized_text);

CREATE TABLE IF NOT EXISTS invoice_uploads (
	id                       UUID PRIMARY KEY,
	company_id               BIGINT NOT NULL REFERENCES companies (id),
	entry_type               TEXT NOT NULL,
	original_filename        TEXT NOT NULL,
	stored_filename          TEXT NOT NULL,
	stored_path              TEXT NOT NULL,
	uploaded_at              TIMESTAMPTZ NOT NULL,
	extraction_status        TEXT NOT NULL,
	extraction_error_code    TEXT,
	extraction_error_message TEXT,
	extracted_at             TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS invoice_uploads_company_idx ON invoice_uploads (company_id, uploaded_at DESC);

CREATE TABLE IF NOT EXISTS review_drafts (
	upload_id             UUID PRIMARY KEY REFERENCES invoice_uploads (id),
	document_date         TEXT NOT NULL,
	counterparty_name     TEXT NOT NULL,
	booking_text          TEXT NOT NULL,
	amount_gross          BIGINT NOT NULL,
	amount_net            BIGINT,
	amount_tax            BIGINT,
	payment_received_date TEXT,
	type_of_expense_id    BIGINT REFERENCES expense_types (id),
	created_at            TIMESTAMPTZ NOT NULL,
	updated_at            TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS review_drafts_expense_type_idx ON review_drafts (type_of_expense_id);

CREATE TABLE IF NOT EXISTS accounting_entries (
	id                    BIGSERIAL PRIMARY KEY,
	company_id            BIGINT NOT NULL REFERENCES companies (id),
	document_number       BIGINT NOT NULL,
	entry_type            TEXT NOT NULL,
	expense_pl_category   TEXT,
	document_date         TEXT NOT NULL,
	document_year         INTEGER NOT NULL,
	payment_received_date TEXT,
	type_of_expense_id    BIGINT REFERENCES expense_types (id),
	counterparty_name     TEXT NOT NULL,
	booking_text          TEXT NOT NULL,
	amount_gross          BIGINT NOT NULL,
	amount_net            BIGINT,
	amount_tax            BIGINT,
	upload_id             UUID NOT NULL REFERENCES invoice_uploads (id),
	extraction_status     TEXT NOT NULL,
	created_at            TIMESTAMPTZ NOT NULL,
	updated_at            TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS accounting_entries_bucket_number_key
	ON accounting_entries (company_id, document_year, entry_type, document_number);
CREATE UNIQUE INDEX IF NOT EXISTS accounting_entries_upload_id_key
	ON accounting_entries (upload_id);
CREATE INDEX IF NOT EXISTS accounting_entries_company_year_idx
	ON accounting_entries (company_id, document_year);
`

// EnsureSchema crea las tablas e índices si no existen. La restricción única
// del bucket (company_id, document_year, entry_type, document_number) es el
// respaldo duro de la numeración consecutiva; la de upload_id garantiza que un
// upload se confirme a lo sumo una vez.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
