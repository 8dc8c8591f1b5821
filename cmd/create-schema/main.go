package main

import (
	"context"
	"log"
	"os"

	"bizdel/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS business_profiles (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL UNIQUE REFERENCES users(id),
	business_name TEXT NOT NULL,
	business_type TEXT NOT NULL,
	business_address TEXT NOT NULL,
	contact_email TEXT NOT NULL,
	contact_phone TEXT NOT NULL,
	gstin TEXT,
	udyam_number TEXT,
	is_verified BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE SEQUENCE IF NOT EXISTS application_display_seq;

CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id),
	application_id TEXT NOT NULL UNIQUE,
	license_type TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	submitted_date TIMESTAMPTZ NOT NULL,
	expected_completion TIMESTAMPTZ,
	approved_date TIMESTAMPTZ,
	valid_until TIMESTAMPTZ,
	query_raised TEXT,
	notes TEXT,
	form_data JSONB,
	documents JSONB
);

CREATE TABLE IF NOT EXISTS compliance_items (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id),
	item_name TEXT NOT NULL,
	item_type TEXT NOT NULL,
	frequency TEXT NOT NULL,
	last_filed TIMESTAMPTZ,
	next_due TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'upcoming',
	reminder_sent BOOLEAN NOT NULL DEFAULT false
);

CREATE TABLE IF NOT EXISTS documents (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id),
	file_name TEXT NOT NULL,
	file_type TEXT NOT NULL,
	file_size BIGINT NOT NULL,
	upload_date TIMESTAMPTZ NOT NULL DEFAULT now(),
	category TEXT,
	is_verified BOOLEAN NOT NULL DEFAULT false
);

CREATE TABLE IF NOT EXISTS schemes (
	id UUID PRIMARY KEY,
	scheme_name TEXT NOT NULL,
	scheme_type TEXT NOT NULL,
	description TEXT NOT NULL,
	eligibility_criteria JSONB,
	funding_range TEXT NOT NULL DEFAULT '',
	application_url TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT true,
	government_level TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	type TEXT NOT NULL,
	is_read BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_applications_user_id ON applications(user_id);
CREATE INDEX IF NOT EXISTS idx_compliance_items_user_id ON compliance_items(user_id);
CREATE INDEX IF NOT EXISTS idx_compliance_items_next_due ON compliance_items(next_due);
CREATE INDEX IF NOT EXISTS idx_documents_user_id ON documents(user_id);
CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
`

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	log.Println("Schema created successfully")
}
