package localfs

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"errors"
	"os"
	"testing"

	"github.com/timbray/blueskidjava/keydir"
)

func testDER(t *testing.T) []byte {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey: %v", err)
	}
	return der
}

func testDir(t *testing.T) *Directory {
	t.Helper()
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestLocalFS_RoundTrip(t *testing.T) {
	d := testDir(t)
	der := testDER(t)

	id, err := d.Put(der)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !id.Defined() {
		t.Fatalf("expected defined CID")
	}
	if !d.Has(id) {
		t.Fatalf("Has: expected true after Put")
	}
	got, err := d.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(der) {
		t.Fatalf("payload mismatch")
	}

	// Idempotent Put.
	id2, err := d.Put(der)
	if err != nil {
		t.Fatalf("second Put: %v", err)
	}
	if id2 != id {
		t.Fatalf("Put not idempotent: %s vs %s", id, id2)
	}
}

func TestLocalFS_RejectsNonKeyPayload(t *testing.T) {
	d := testDir(t)
	_, err := d.Put([]byte("definitely not DER"))
	if !errors.Is(err, keydir.ErrNotEd25519) {
		t.Fatalf("Put(garbage): got %v want ErrNotEd25519", err)
	}
}

func TestLocalFS_GetMissing(t *testing.T) {
	d := testDir(t)
	der := testDER(t)
	id, err := d.Put(der)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	other := testDir(t)
	if _, err := other.Get(id); !keydir.IsNotFound(err) {
		t.Fatalf("Get(missing): got %v want ErrNotFound", err)
	}
	if other.Has(id) {
		t.Fatalf("Has(missing): expected false")
	}
}

func TestLocalFS_DetectsCorruption(t *testing.T) {
	d := testDir(t)
	der := testDER(t)
	id, err := d.Put(der)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Corrupt the stored object out-of-band.
	path := d.pathFor(id)
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	if err := os.WriteFile(path, testDER(t), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := d.Get(id); !errors.Is(err, keydir.ErrCIDMismatch) {
		t.Fatalf("Get(corrupted): got %v want ErrCIDMismatch", err)
	}
	if _, err := d.Put(der); !errors.Is(err, keydir.ErrImmutable) {
		t.Fatalf("Put(after corruption): got %v want ErrImmutable", err)
	}
}
