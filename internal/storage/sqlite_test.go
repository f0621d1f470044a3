package storage

import (
	"fmt"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestMigrationsIdempotent runs Open twice on the same database and verifies
// the schema_version count stays correct (migration not re-applied).
func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}

	v1, err := s1.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	s1.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer s2.Close()

	v2, err := s2.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}

	if len(v1) != len(v2) {
		t.Errorf("migration count changed: %d -> %d", len(v1), len(v2))
	}
}

// TestMigrationsOrdered verifies migrations are applied in ascending numeric order.
func TestMigrationsOrdered(t *testing.T) {
	s := openTestStore(t)

	versions, err := s.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}

	if len(versions) == 0 {
		t.Fatal("expected at least one applied migration")
	}

	for i := 1; i < len(versions); i++ {
		if versions[i] <= versions[i-1] {
			t.Errorf("migrations not in ascending order: %v", versions)
			break
		}
	}
}

// TestIndexesExist verifies that indexes on the lookups table are created by the migration.
func TestIndexesExist(t *testing.T) {
	s := openTestStore(t)

	indexes := []string{"idx_lookups_looked_up_at", "idx_lookups_handle"}
	for _, idx := range indexes {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?", idx).Scan(&count)
		if err != nil {
			t.Fatalf("querying sqlite_master for %q: %v", idx, err)
		}
		if count != 1 {
			t.Errorf("index %q not found in sqlite_master", idx)
		}
	}
}

func lookupAt(id, handle, outcome string, at time.Time) Lookup {
	return Lookup{ID: id, Handle: handle, Outcome: outcome, LookedUpAt: at}
}

func TestSaveAndGetLookup(t *testing.T) {
	s := openTestStore(t)

	now := time.Now().UTC().Truncate(time.Second)
	l := Lookup{
		ID:         "lookup-1",
		Handle:     "octocat",
		Outcome:    OutcomeOK,
		HasConfig:  true,
		DurationMs: 142,
		LookedUpAt: now,
	}
	if err := s.SaveLookup(l); err != nil {
		t.Fatalf("SaveLookup: %v", err)
	}

	got, err := s.GetLookup("lookup-1")
	if err != nil {
		t.Fatalf("GetLookup: %v", err)
	}
	if got.Handle != "octocat" || got.Outcome != OutcomeOK || !got.HasConfig || got.DurationMs != 142 {
		t.Errorf("got %+v", got)
	}
	if !got.LookedUpAt.Equal(now) {
		t.Errorf("LookedUpAt = %v, want %v", got.LookedUpAt, now)
	}
}

func TestGetLookupNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetLookup("missing")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListLookups_NewestFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		l := lookupAt(fmt.Sprintf("l%d", i), fmt.Sprintf("user%d", i), OutcomeOK, base.Add(time.Duration(i)*time.Minute))
		if err := s.SaveLookup(l); err != nil {
			t.Fatalf("SaveLookup %d: %v", i, err)
		}
	}

	got, err := s.ListLookups(3, 0)
	if err != nil {
		t.Fatalf("ListLookups: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 lookups, got %d", len(got))
	}
	for i, want := range []string{"l4", "l3", "l2"} {
		if got[i].ID != want {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}

	page, err := s.ListLookups(3, 3)
	if err != nil {
		t.Fatalf("ListLookups offset: %v", err)
	}
	if len(page) != 2 || page[0].ID != "l1" || page[1].ID != "l0" {
		t.Errorf("second page = %+v", page)
	}
}

func TestListLookups_SameSecondUsesInsertOrder(t *testing.T) {
	s := openTestStore(t)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.SaveLookup(lookupAt("first", "a", OutcomeOK, at))
	s.SaveLookup(lookupAt("second", "b", OutcomeOK, at))

	got, err := s.ListLookups(10, 0)
	if err != nil {
		t.Fatalf("ListLookups: %v", err)
	}
	if len(got) != 2 || got[0].ID != "second" {
		t.Errorf("got %+v, want second first", got)
	}
}

func TestRecentHandles(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Lookup{
		lookupAt("1", "octocat", OutcomeOK, base),
		lookupAt("2", "torvalds", OutcomeOK, base.Add(time.Minute)),
		lookupAt("3", "ghost", OutcomeNotFound, base.Add(2*time.Minute)),
		lookupAt("4", "Octocat", OutcomeOK, base.Add(3*time.Minute)),
		lookupAt("5", "gaearon", OutcomeError, base.Add(4*time.Minute)),
	}
	for _, l := range entries {
		if err := s.SaveLookup(l); err != nil {
			t.Fatalf("SaveLookup %s: %v", l.ID, err)
		}
	}

	got, err := s.RecentHandles(10)
	if err != nil {
		t.Fatalf("RecentHandles: %v", err)
	}
	want := []string{"Octocat", "torvalds"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	limited, err := s.RecentHandles(1)
	if err != nil {
		t.Fatalf("RecentHandles(1): %v", err)
	}
	if len(limited) != 1 || limited[0] != "Octocat" {
		t.Errorf("limited = %v", limited)
	}
}

func TestDeleteLookupsBefore(t *testing.T) {
	s := openTestStore(t)

	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.SaveLookup(lookupAt("old1", "a", OutcomeOK, cutoff.Add(-48*time.Hour)))
	s.SaveLookup(lookupAt("old2", "b", OutcomeOK, cutoff.Add(-time.Hour)))
	s.SaveLookup(lookupAt("new", "c", OutcomeOK, cutoff.Add(time.Hour)))

	n, err := s.DeleteLookupsBefore(cutoff)
	if err != nil {
		t.Fatalf("DeleteLookupsBefore: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}

	rest, err := s.ListLookups(10, 0)
	if err != nil {
		t.Fatalf("ListLookups: %v", err)
	}
	if len(rest) != 1 || rest[0].ID != "new" {
		t.Errorf("remaining = %+v", rest)
	}
}
