package db_test

import (
	"context"
	"encoding/json"
	"testing"

	dbfiles "github.com/mstern/applytrack/db"
	dbpkg "github.com/mstern/applytrack/internal/db"
)

func openTestDB(t *testing.T) *dbpkg.DB {
	t.Helper()
	d, err := dbpkg.New(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared", nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestMigrateAppliesSchema(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	if err := dbpkg.Migrate(ctx, d, dbfiles.Migrations, dbfiles.SeedFiles); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// core tables exist and accept rows
	for _, q := range []string{
		`INSERT INTO applications (company, position, application_date) VALUES ('Acme', 'SWE', '2026-08-01')`,
		`INSERT INTO responses (application_id, response_type, response_date) VALUES (1, 'follow_up', '2026-08-02')`,
		`INSERT INTO interview_sessions (application_id, interview_type) VALUES (1, 'technical')`,
		`INSERT INTO outcomes (application_id, final_outcome, outcome_date) VALUES (1, 'offer', '2026-08-10')`,
		`INSERT INTO jobs (type, payload, status) VALUES ('test', '{}', 'queued')`,
	} {
		if _, err := d.Exec(ctx, q); err != nil {
			t.Fatalf("insert after migrate failed: %v\n%s", err, q)
		}
	}

	// the migration version is recorded
	var count int
	row := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = '0001_init'`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected migration to be recorded, count=%d", count)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	if err := dbpkg.Migrate(ctx, d, dbfiles.Migrations, dbfiles.SeedFiles); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if err := dbpkg.Migrate(ctx, d, dbfiles.Migrations, dbfiles.SeedFiles); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var count int
	row := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single recorded migration, got %d", count)
	}
}

func TestMigrateSeedsSchemaAndTemplates(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	if err := dbpkg.Migrate(ctx, d, dbfiles.Migrations, dbfiles.SeedFiles); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	var schemaJSON string
	row := d.QueryRow(ctx, `SELECT schema_json FROM ai_schemas WHERE version = 'v1'`)
	if err := row.Scan(&schemaJSON); err != nil {
		t.Fatalf("seeded schema missing: %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(schemaJSON), &parsed); err != nil {
		t.Fatalf("seeded schema is not valid json: %v", err)
	}

	// one bank per interview type, each a non-empty JSON array
	rows, err := d.QueryRows(ctx, `SELECT interview_type, templates_json FROM question_templates WHERE version = 'v1'`)
	if err != nil {
		t.Fatalf("query templates: %v", err)
	}
	defer rows.Close()

	banks := 0
	for rows.Next() {
		var iType, templates string
		if err := rows.Scan(&iType, &templates); err != nil {
			t.Fatalf("scan template: %v", err)
		}
		var bank []string
		if err := json.Unmarshal([]byte(templates), &bank); err != nil {
			t.Fatalf("bank %s is not a json array: %v", iType, err)
		}
		if len(bank) == 0 {
			t.Fatalf("bank %s is empty", iType)
		}
		banks++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	if banks < 3 {
		t.Fatalf("expected at least 3 seeded banks got %d", banks)
	}
}
