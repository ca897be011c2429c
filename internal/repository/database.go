package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

func InitDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS lead_submissions (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL DEFAULT '',
        email TEXT NOT NULL DEFAULT '',
        phone TEXT NOT NULL DEFAULT '',
        housing_type TEXT NOT NULL DEFAULT '',
        deal_type TEXT NOT NULL DEFAULT '',
        contact_type TEXT NOT NULL DEFAULT '',
        property_size INTEGER,
        status TEXT NOT NULL,
        organization_id INTEGER,
        person_id INTEGER,
        deal_id INTEGER,
        error_message TEXT NOT NULL DEFAULT '',
        created_at DATETIME NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_lead_submissions_created_at
        ON lead_submissions (created_at);
    `

	_, err := db.Exec(schema)
	return err
}
