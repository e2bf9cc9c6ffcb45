package fsstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/digest"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store/fsstore"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

// ── Credentials ──────────────────────────────────────────────────────────────

func TestCredentialStore_EnsureInitialized_SeedsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "config.json")
	cs := fsstore.NewCredentialStore(path)

	if err := cs.EnsureInitialized(context.Background()); err != nil {
		t.Fatalf("EnsureInitialized: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var file struct {
		Users []map[string]string `json:"users"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(file.Users) != 2 {
		t.Fatalf("expected 2 seeded users, got %d", len(file.Users))
	}
	for _, u := range file.Users {
		for _, k := range []string{"role", "login", "password", "secret", "name"} {
			if u[k] == "" {
				t.Errorf("seeded user missing %q: %v", k, u)
			}
		}
		if len(u["password"]) != digest.Size || len(u["secret"]) != digest.Size {
			t.Errorf("expected hex digests, got %v", u)
		}
	}
	if !strings.Contains(string(raw), "Петров П.П.") {
		t.Error("expected display names written unescaped")
	}
}

func TestCredentialStore_EnsureInitialized_NeverOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	custom := `{"users":[{"role":"security_officer","login":"night","password":"x","secret":"y","name":"Ночной"}]}`
	if err := os.WriteFile(path, []byte(custom), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cs := fsstore.NewCredentialStore(path)
	for i := 0; i < 2; i++ {
		if err := cs.EnsureInitialized(context.Background()); err != nil {
			t.Fatalf("EnsureInitialized #%d: %v", i, err)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != custom {
		t.Errorf("existing credential file was modified:\n%s", got)
	}
}

func TestCredentialStore_Find(t *testing.T) {
	cs := fsstore.NewCredentialStore(filepath.Join(t.TempDir(), "config.json"))
	ctx := context.Background()
	if err := cs.EnsureInitialized(ctx); err != nil {
		t.Fatalf("EnsureInitialized: %v", err)
	}

	rec, err := cs.Find(ctx, types.RoleSecurityOfficer, "defendservice")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if rec.DisplayName != "Петров П.П." {
		t.Errorf("unexpected display name %q", rec.DisplayName)
	}
	if rec.PasswordHash != digest.Sum("Security123!") {
		t.Error("unexpected password digest")
	}

	// Role must match as well as login.
	if _, err := cs.Find(ctx, types.RoleAccessAdmin, "defendservice"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for wrong role, got %v", err)
	}
	// Case-sensitive.
	if _, err := cs.Find(ctx, types.RoleSecurityOfficer, "DefendService"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for different case, got %v", err)
	}
}

func TestCredentialStore_Find_MissingFile(t *testing.T) {
	cs := fsstore.NewCredentialStore(filepath.Join(t.TempDir(), "absent.json"))

	_, err := cs.Find(context.Background(), types.RoleAccessAdmin, "guardianskk")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCredentialStore_Find_LegacyRoleLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	legacy := `{
    "users": [
        {"role": "Администратор доступа", "login": "guardianskk", "password": "` + digest.Sum("Admin123!") + `", "secret": "` + digest.Sum("security") + `", "name": "Иванов И.И."}
    ]
}`
	if err := os.WriteFile(path, []byte(legacy), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	rec, err := fsstore.NewCredentialStore(path).Find(context.Background(), types.RoleAccessAdmin, "guardianskk")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if rec.DisplayName != "Иванов И.И." {
		t.Errorf("unexpected display name %q", rec.DisplayName)
	}
}

// ── Requests ─────────────────────────────────────────────────────────────────

func TestRequestStore_SaveLoadList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "requests")
	rs := fsstore.NewRequestStore(dir)
	ctx := context.Background()

	created := time.Date(2026, 10, 16, 10, 30, 0, 0, time.Local)
	rec := types.VisitorPassRequest{
		Type:      types.RequestTypeIndividual,
		Visitor:   types.Visitor{LastName: "Сидоров", FirstName: "Иван"},
		Documents: types.Documents{PassportScan: "passport_scan_20261016_102900.jpg"},
		CreatedAt: types.NewTimestamp(created),
		CreatedBy: "Петров П.П.",
	}
	id := types.RequestID(created)

	if err := rs.Save(ctx, id, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, id))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "\n    \"type\": \"individual\"") {
		t.Errorf("expected 4-space indented JSON, got:\n%s", raw)
	}
	if !strings.Contains(string(raw), "Сидоров") {
		t.Error("expected cyrillic left unescaped")
	}

	got, err := rs.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Visitor.LastName != "Сидоров" || got.CreatedBy != "Петров П.П." {
		t.Errorf("unexpected record %+v", got)
	}

	ids, err := rs.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 1 || ids[0] != id {
		t.Errorf("expected [%s], got %v", id, ids)
	}
}

func TestRequestStore_SameSecondOverwrites(t *testing.T) {
	rs := fsstore.NewRequestStore(t.TempDir())
	ctx := context.Background()
	id := types.RequestID(time.Date(2026, 10, 16, 10, 30, 0, 0, time.Local))

	_ = rs.Save(ctx, id, types.VisitorPassRequest{CreatedBy: "first"})
	if err := rs.Save(ctx, id, types.VisitorPassRequest{CreatedBy: "second"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := rs.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CreatedBy != "second" {
		t.Errorf("expected last write to win, got %q", got.CreatedBy)
	}
}

func TestRequestStore_LoadRejectsTraversal(t *testing.T) {
	rs := fsstore.NewRequestStore(t.TempDir())

	if _, err := rs.Load(context.Background(), "../config.json"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRequestStore_List_MissingDir(t *testing.T) {
	rs := fsstore.NewRequestStore(filepath.Join(t.TempDir(), "nope"))

	ids, err := rs.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty list, got %v", ids)
	}
}

func TestRequestStore_Save_UnwritableDir(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "requests")
	// A regular file where the directory should be makes MkdirAll fail.
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	rs := fsstore.NewRequestStore(blocker)
	id := types.RequestID(time.Now())
	err := rs.Save(context.Background(), id, types.VisitorPassRequest{})
	if !errors.Is(err, store.ErrStorageWrite) {
		t.Errorf("expected ErrStorageWrite, got %v", err)
	}
}

// ── Documents ────────────────────────────────────────────────────────────────

func TestDocumentStore_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	ds := fsstore.NewDocumentStore(dir)

	if err := ds.Put(context.Background(), "photo_20261016_103000.png", strings.NewReader("PNGDATA")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "photo_20261016_103000.png"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "PNGDATA" {
		t.Errorf("unexpected content %q", got)
	}
}

func TestDocumentStore_Put_RejectsPathNames(t *testing.T) {
	ds := fsstore.NewDocumentStore(t.TempDir())

	if err := ds.Put(context.Background(), "../escape.jpg", strings.NewReader("x")); err == nil {
		t.Error("expected error for a name containing a path")
	}
}
