package database

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoad_SortsAndSkips(t *testing.T) {
	files := fstest.MapFS{
		"003_tres.sql":  {Data: []byte("SELECT 3;")},
		"001_uno.sql":   {Data: []byte("SELECT 1;")},
		"002_dos.sql":   {Data: []byte("SELECT 2;")},
		"notas.sql":     {Data: []byte("SELECT 0;")},
		"abc_x.sql":     {Data: []byte("SELECT 0;")},
		"004_readme.md": {Data: []byte("# no")},
	}

	migrations, err := NewMigratorFS(nil, files).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	for i, mig := range migrations {
		if mig.Version != i+1 {
			t.Errorf("position %d: expected version %d, got %d", i, i+1, mig.Version)
		}
	}
	if migrations[1].Name != "002_dos.sql" || migrations[1].SQL != "SELECT 2;" {
		t.Errorf("unexpected migration: %+v", migrations[1])
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := NewMigrator(nil).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected embedded migrations")
	}
	sql := migrations[0].SQL
	for _, table := range []string{"users", "personal_access_tokens", "pacientes", "medicos", "citas"} {
		if !strings.Contains(sql, "CREATE TABLE IF NOT EXISTS "+table+" ") {
			t.Errorf("initial migration does not create table %s", table)
		}
	}

	var emailIndex bool
	for _, m := range migrations[1:] {
		if strings.Contains(m.SQL, "ON users (LOWER(email))") {
			emailIndex = true
		}
	}
	if !emailIndex {
		t.Error("expected a unique index on LOWER(email)")
	}
}
