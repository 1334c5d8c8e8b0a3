package keys

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	circled "github.com/cloudflare/circl/sign/ed25519"
)

// SignEd25519SHA256 returns a base64 signature over sha256(message).
func SignEd25519SHA256(message []byte, privateKey ed25519.PrivateKey) string {
	digest := sha256.Sum256(message)
	sig := ed25519.Sign(privateKey, digest[:])
	return base64.StdEncoding.EncodeToString(sig)
}

// VerifyEd25519SHA256 checks a base64 signature produced by
// SignEd25519SHA256. Verification runs on the circl Ed25519 scheme, which is
// wire-compatible with the signing side.
func VerifyEd25519SHA256(message []byte, pub ed25519.PublicKey, sigB64 string) error {
	if len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		return fmt.Errorf("invalid signature encoding: %w", err)
	}
	if len(sig) != ed25519.SignatureSize {
		return errors.New("invalid signature length")
	}
	digest := sha256.Sum256(message)
	if !circled.Verify(circled.PublicKey(pub), digest[:], sig) {
		return errors.New("signature did not verify")
	}
	return nil
}
