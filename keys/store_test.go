package keys

import (
	"crypto/ed25519"
	"os"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func testSeed() []byte {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	return seed
}

func TestStore_InitRootAndExport(t *testing.T) {
	s := testStore(t)

	textKey, path, err := s.InitRoot("alice", testSeed(), false)
	if err != nil {
		t.Fatalf("InitRoot: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat(%s): %v", path, err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("seed file mode = %o, want 600", perm)
	}

	exported, err := s.Export("alice", "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if exported != textKey {
		t.Fatalf("Export mismatch: got %s want %s", exported, textKey)
	}

	// Second init without overwrite must not clobber the seed.
	if _, _, err := s.InitRoot("alice", testSeed(), false); err == nil {
		t.Fatalf("expected error re-initializing without overwrite")
	}
}

func TestStore_DeriveRoleAndList(t *testing.T) {
	s := testStore(t)
	if _, _, err := s.InitRoot("alice", testSeed(), false); err != nil {
		t.Fatalf("InitRoot: %v", err)
	}

	roleKey, _, err := s.DeriveRole("alice", "approver", false)
	if err != nil {
		t.Fatalf("DeriveRole: %v", err)
	}
	rootKey, err := s.Export("alice", "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if roleKey == rootKey {
		t.Fatalf("role key must differ from root key")
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "alice" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if len(entries[0].Roles) != 1 || entries[0].Roles[0] != "approver" {
		t.Fatalf("unexpected roles: %+v", entries[0].Roles)
	}
}

func TestStore_LoadSeedPriority(t *testing.T) {
	s := testStore(t)
	seed := testSeed()
	if _, _, err := s.InitRoot("alice", seed, false); err != nil {
		t.Fatalf("InitRoot: %v", err)
	}

	got, err := s.LoadSeed("", "alice", "", "")
	if err != nil {
		t.Fatalf("LoadSeed(signer): %v", err)
	}
	if string(got) != string(seed) {
		t.Fatalf("LoadSeed returned wrong seed")
	}

	if _, err := s.LoadSeed("", "", "", ""); err == nil {
		t.Fatalf("expected error with no signer")
	}
}
