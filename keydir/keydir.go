// Package keydir defines a content-addressed directory of Ed25519 public
// keys. Objects are the SubjectPublicKeyInfo DER bytes of a key, stored
// immutably under their fingerprint CID.
package keydir

import (
	"crypto/ed25519"
	"crypto/x509"
	"fmt"

	"github.com/ipfs/go-cid"
)

// Directory is a minimal content-addressed public-key store.
//
// Contract:
// - Put MUST be idempotent and MUST reject payloads that are not a valid Ed25519 SubjectPublicKeyInfo.
// - Stored objects MUST be immutable.
// - CIDs MUST be derived from the bytes written.
// - Get MUST return ErrNotFound when the CID is absent.
type Directory interface {
	Put(der []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}

// CheckPayload verifies that der is a well-formed SubjectPublicKeyInfo
// carrying an Ed25519 key. Backends call this before accepting a Put.
func CheckPayload(der []byte) error {
	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotEd25519, err)
	}
	if _, ok := parsed.(ed25519.PublicKey); !ok {
		return fmt.Errorf("%w: key type is %T", ErrNotEd25519, parsed)
	}
	return nil
}
