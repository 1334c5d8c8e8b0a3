// Package keytext converts between in-memory Ed25519 public keys and their
// portable textual form: standard-alphabet base64 of the X.509
// SubjectPublicKeyInfo DER encoding, optionally wrapped in
// "-----BEGIN PUBLIC KEY-----" / "-----END PUBLIC KEY-----" armor.
//
// Both directions are pure, stateless transforms; all functions are safe for
// concurrent use.
package keytext

import (
	"crypto"
	"crypto/ed25519"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"strings"
)

// armorMarker is the substring that triggers de-armoring. Four dashes, so it
// matches the literal header regardless of how many leading dashes survive
// upstream mangling.
const armorMarker = "----BEGIN"

const (
	pemHeader = "-----BEGIN PUBLIC KEY-----"
	pemFooter = "-----END PUBLIC KEY-----"
)

// KeyToString renders an Ed25519 public key as base64 text of its
// SubjectPublicKeyInfo DER encoding. No armor is added and the output
// contains no line breaks.
//
// The algorithm is checked before any encoding is attempted: a non-Ed25519
// key fails with KindAlgorithm / KEYTEXT-ALG-001.
//
// StringToKey(KeyToString(k)) returns a key with a byte encoding identical
// to k's.
func KeyToString(key crypto.PublicKey) (string, error) {
	pub, ok := key.(ed25519.PublicKey)
	if !ok {
		return "", newError(KindAlgorithm, "KEYTEXT-ALG-001",
			fmt.Sprintf("key type is %T, should be Ed25519", key))
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", wrapError(KindEncoding, "KEYTEXT-DER-002", "cannot serialize key", err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}

// StringToKey parses base64 text, optionally ASCII-armored, and returns the
// Ed25519 public key it represents.
//
// Failure modes, in validation order:
//   - KindBase64 / KEYTEXT-B64-001: not valid base64 after de-armoring
//   - KindEncoding / KEYTEXT-DER-001: bytes are not a well-formed
//     SubjectPublicKeyInfo, or the embedded key is structurally invalid
//   - KindAlgorithm / KEYTEXT-ALG-002: a well-formed SubjectPublicKeyInfo
//     carrying a non-Ed25519 algorithm (the generic X.509 decoder accepts
//     RSA/EC OIDs, so the algorithm is re-checked after parsing)
func StringToKey(s string) (ed25519.PublicKey, error) {
	der, err := base64.StdEncoding.DecodeString(Dearmor(s))
	if err != nil {
		return nil, wrapError(KindBase64, "KEYTEXT-B64-001", "invalid base64", err)
	}
	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, wrapError(KindEncoding, "KEYTEXT-DER-001", "invalid public key encoding", err)
	}
	pub, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return nil, newError(KindAlgorithm, "KEYTEXT-ALG-002",
			fmt.Sprintf("key type is %T, should be Ed25519", parsed))
	}
	return pub, nil
}

// Dearmor strips PEM-style armor: the exact "PUBLIC KEY" header and footer
// lines plus every line break. Input without the armor marker is returned
// unchanged.
//
// All common line-break forms (\r\n, \n, \r) are removed regardless of host
// platform; armor produced on any OS de-armors the same way everywhere.
func Dearmor(s string) string {
	if !strings.Contains(s, armorMarker) {
		return s
	}
	s = strings.ReplaceAll(s, pemHeader, "")
	s = strings.ReplaceAll(s, pemFooter, "")
	s = strings.ReplaceAll(s, "\r\n", "")
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}
