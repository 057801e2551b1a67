package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Migrate applies migrations and optional seed files. It keeps a
// `schema_migrations` table to track applied versions and applies any SQL
// file under `migrations/` in the embedded FS that has not been recorded
// yet. Seed files are applied idempotently (INSERT OR REPLACE).
func Migrate(ctx context.Context, d *DB, migrationFS embed.FS, seedFS embed.FS) error {
	if _, err := d.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	migDir := "migrations"
	entries, err := fs.ReadDir(migrationFS, migDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, fname := range files {
		// filename without extension is the migration version key
		version := strings.TrimSuffix(fname, path.Ext(fname))

		var count int
		row := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration applied count: %w", err)
		}
		if count > 0 {
			continue
		}

		b, err := fs.ReadFile(migrationFS, path.Join(migDir, fname))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", fname, err)
		}
		if _, err := d.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("exec migration %s: %w", fname, err)
		}

		if _, err := d.Exec(ctx, `INSERT INTO schema_migrations (version, applied) VALUES (?, strftime('%s','now'))`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", fname, err)
		}
	}

	// seed the question output schema used by the AI engine
	schemaPath := path.Join("seed", "question_schema_v1.json")
	if b, err := fs.ReadFile(seedFS, schemaPath); err == nil {
		if _, err := d.Exec(ctx, `INSERT OR REPLACE INTO ai_schemas (version, description, schema_json, created, updated) VALUES ('v1', 'question list v1 schema', ?, strftime('%s','now'), strftime('%s','now'))`, string(b)); err != nil {
			return fmt.Errorf("seed schema exec: %w", err)
		}
	}

	// seed the template question banks, one row per interview type
	if b, err := fs.ReadFile(seedFS, path.Join("seed", "question_templates_v1.json")); err == nil {
		if err := seedTemplates(ctx, d, b); err != nil {
			return fmt.Errorf("seed templates exec: %w", err)
		}
	}

	return nil
}

func seedTemplates(ctx context.Context, d *DB, raw []byte) error {
	banks, err := parseTemplateBanks(raw)
	if err != nil {
		return err
	}

	for typ, questions := range banks {
		if _, err := d.Exec(ctx, `INSERT OR REPLACE INTO question_templates (interview_type, version, templates_json, created, updated) VALUES (?, 'v1', ?, strftime('%s','now'), strftime('%s','now'))`, typ, questions); err != nil {
			return err
		}
	}

	return nil
}
