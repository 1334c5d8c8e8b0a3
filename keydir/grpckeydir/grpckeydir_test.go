package grpckeydir

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"errors"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/timbray/blueskidjava/keydir"
	"github.com/timbray/blueskidjava/keydir/localfs"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	dir, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	RegisterKeyDirServer(srv, &Server{Dir: dir})

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	return &Client{cc: cc, client: NewKeyDirClient(cc), Timeout: 2 * time.Second}
}

func TestGRPCKeyDir_LocalFS_RoundTrip(t *testing.T) {
	client := testClient(t)

	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey: %v", err)
	}

	id, err := client.Put(der)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !id.Defined() {
		t.Fatalf("expected defined CID")
	}
	if !client.Has(id) {
		t.Fatalf("Has: expected true")
	}
	got, err := client.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(der) {
		t.Fatalf("payload mismatch")
	}
}

func TestGRPCKeyDir_RejectsNonKeyPayload(t *testing.T) {
	client := testClient(t)
	_, err := client.Put([]byte("not a key"))
	if !errors.Is(err, keydir.ErrNotEd25519) {
		t.Fatalf("Put(garbage): got %v want ErrNotEd25519", err)
	}
}

func TestGRPCKeyDir_GetMissing(t *testing.T) {
	client := testClient(t)

	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey: %v", err)
	}

	// Fingerprint of a key that was never stored.
	other := testClient(t)
	id, err := other.Put(der)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	if _, err := client.Get(id); !keydir.IsNotFound(err) {
		t.Fatalf("Get(missing): got %v want ErrNotFound", err)
	}
	if client.Has(id) {
		t.Fatalf("Has(missing): expected false")
	}
}
