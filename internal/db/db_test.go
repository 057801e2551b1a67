package db_test

import (
	"context"
	"testing"

	dbpkg "github.com/mstern/applytrack/internal/db"
)

func TestNewAndExec(t *testing.T) {
	ctx := context.Background()
	d, err := dbpkg.New(ctx, "file:dbtest?mode=memory&cache=shared", nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	defer d.Close()

	if _, err := d.Exec(ctx, `CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	res, err := d.Exec(ctx, `INSERT INTO t (v) VALUES (?)`, "hello")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil || id == 0 {
		t.Fatalf("last insert id: id=%d err=%v", id, err)
	}

	var v string
	if err := d.QueryRow(ctx, `SELECT v FROM t WHERE id = ?`, id).Scan(&v); err != nil {
		t.Fatalf("query row: %v", err)
	}
	if v != "hello" {
		t.Fatalf("unexpected value %q", v)
	}

	rows, err := d.QueryRows(ctx, `SELECT v FROM t`)
	if err != nil {
		t.Fatalf("query rows: %v", err)
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row got %d", n)
	}

	if d.GetConn() == nil {
		t.Fatalf("expected underlying connection")
	}
}

func TestNewBadDSN(t *testing.T) {
	if _, err := dbpkg.New(context.Background(), "file:/nonexistent-dir/sub/dir/x.db?mode=ro", nil); err == nil {
		t.Fatalf("expected error for unopenable database")
	}
}
