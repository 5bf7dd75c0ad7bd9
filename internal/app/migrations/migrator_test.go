package migrations

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func TestListOrdersByVersion(t *testing.T) {
	files := fstest.MapFS{
		"002_highlights.sql": {Data: []byte("SELECT 1;")},
		"001_init.sql":       {Data: []byte("SELECT 1;")},
		"README.md":          {Data: []byte("notes")},
	}

	migrations, err := List(files)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("got %d migrations", len(migrations))
	}
	if migrations[0].Version != "001" || migrations[1].Name != "002_highlights.sql" {
		t.Fatalf("unexpected order: %+v", migrations)
	}
}

func TestListRejectsDuplicateVersions(t *testing.T) {
	files := fstest.MapFS{
		"001_init.sql":  {Data: []byte("SELECT 1;")},
		"001_again.sql": {Data: []byte("SELECT 1;")},
	}
	if _, err := List(files); err == nil {
		t.Fatal("expected duplicate version error")
	}
}

func TestEmbeddedSchema(t *testing.T) {
	migrations, err := List(Files())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(migrations) == 0 || migrations[0].Version != "001" {
		t.Fatalf("unexpected embedded migrations: %+v", migrations)
	}

	content, err := fs.ReadFile(Files(), migrations[0].Name)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	schema := string(content)
	for _, table := range []string{"branches", "pastors", "events", "church_info", "highlights", "testimonies", "admins"} {
		if !strings.Contains(schema, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Errorf("schema does not create %s", table)
		}
	}
	if !strings.Contains(schema, "REFERENCES branches(id) ON DELETE SET NULL") {
		t.Error("events must detach from deleted branches")
	}
}
