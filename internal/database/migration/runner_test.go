package migration

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func TestLoadMigrations_OrdersAndSkipsForeignFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"V10__messages.sql":   {Data: []byte("CREATE TABLE messages (id UUID);")},
		"V2__matches.sql":     {Data: []byte("\n  CREATE TABLE matches (id UUID);\n")},
		"V1__init.sql":        {Data: []byte("CREATE TABLE users (id UUID);")},
		"README.md":           {Data: []byte("notes")},
		"v3__lowercase.sql":   {Data: []byte("SELECT 1;")},
		"archive/V4__old.sql": {Data: []byte("SELECT 1;")},
	}

	migs, err := loadMigrations(fsys)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migs))
	}
	for i, want := range []int64{1, 2, 10} {
		if migs[i].Version != want {
			t.Fatalf("position %d: expected version %d, got %d", i, want, migs[i].Version)
		}
	}
	if migs[1].Name != "matches" || strings.HasPrefix(migs[1].SQL, "\n") {
		t.Fatalf("unexpected parsed migration: %+v", migs[1])
	}
}

func TestLoadMigrations_ChecksumIgnoresSurroundingWhitespace(t *testing.T) {
	a, err := loadMigrations(fstest.MapFS{"V1__init.sql": {Data: []byte("SELECT 1;")}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := loadMigrations(fstest.MapFS{"V1__init.sql": {Data: []byte("\n\nSELECT 1;\n")}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a[0].Checksum != b[0].Checksum {
		t.Fatalf("checksum should not depend on trailing whitespace")
	}
}

func TestLoadMigrations_Rejects(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"duplicate version": {
			"V1__init.sql":  {Data: []byte("SELECT 1;")},
			"V01__dupe.sql": {Data: []byte("SELECT 2;")},
		},
		"empty file": {
			"V1__init.sql": {Data: []byte("   \n")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := loadMigrations(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestJoinStatus(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	migs := []Migration{
		{Version: 1, Name: "init", Checksum: "aaa"},
		{Version: 2, Name: "messages", Checksum: "bbb"},
		{Version: 3, Name: "pending", Checksum: "ccc"},
	}
	applied := map[int64]appliedMigration{
		1: {Checksum: "aaa", AppliedAt: at},
		2: {Checksum: "changed", AppliedAt: at},
	}

	got := joinStatus(migs, applied)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if !got[0].Applied || got[0].Drifted || !got[0].AppliedAt.Equal(at) {
		t.Fatalf("unexpected status for v1: %+v", got[0])
	}
	if !got[1].Applied || !got[1].Drifted {
		t.Fatalf("expected v2 drifted: %+v", got[1])
	}
	if got[2].Applied {
		t.Fatalf("expected v3 pending: %+v", got[2])
	}
}

func TestRunner_NilDB(t *testing.T) {
	if err := (Runner{Dir: t.TempDir()}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
	if _, err := (Runner{Dir: t.TempDir()}).Status(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}
