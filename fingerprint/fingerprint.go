// Package fingerprint derives content identifiers for public keys.
//
// A fingerprint is a CIDv1 ("raw" multicodec) over the key's
// SubjectPublicKeyInfo DER bytes, so two keys have the same fingerprint
// exactly when their standard byte encodings are identical.
package fingerprint

import (
	"crypto"
	"crypto/ed25519"
	"crypto/x509"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/sha3"
)

// CIDv1RawSHA256 returns a CIDv1 string using the "raw" multicodec
// and a sha2-256 multihash.
func CIDv1RawSHA256(data []byte) string {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only errors for invalid inputs; with SHA2_256 and -1 length,
		// this should be unreachable.
		return ""
	}
	return cid.NewCidV1(cid.Raw, sum).String()
}

// CIDv1RawSHA256CID returns a CIDv1 (raw + sha2-256) derived from data.
func CIDv1RawSHA256CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// ForKey returns the fingerprint of an Ed25519 public key.
// hashAlg must be one of: sha256, sha3-256.
func ForKey(key crypto.PublicKey, hashAlg string) (string, error) {
	pub, ok := key.(ed25519.PublicKey)
	if !ok {
		return "", fmt.Errorf("key type is %T, should be Ed25519", key)
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", err
	}
	return ForDER(der, hashAlg)
}

// ForDER returns the fingerprint of raw SubjectPublicKeyInfo bytes.
func ForDER(der []byte, hashAlg string) (string, error) {
	switch hashAlg {
	case "sha256":
		return CIDv1RawSHA256(der), nil
	case "sha3-256":
		digest := sha3.Sum256(der)
		sum, err := multihash.Encode(digest[:], multihash.SHA3_256)
		if err != nil {
			return "", err
		}
		return cid.NewCidV1(cid.Raw, multihash.Multihash(sum)).String(), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %q", hashAlg)
	}
}
