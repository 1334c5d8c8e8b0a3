package keytext

import (
	"encoding/hex"
	"testing"
)

// Known-answer vector: the Ed25519 public key with this raw 32-byte value has
// a SubjectPublicKeyInfo encoding whose base64 form is fixed.
const (
	vectorRawHex = "3b6a27bcceb6a42d62a3a8d02a6f0d73653215771de243a63ac048a18b59da29"
	vectorText   = "MCowBQYDK2VwAyEAO2onvM62pC1io6jQKm8Nc2UyFXcd4kOmOsBIoYtZ2ik="
)

func TestConformanceVector_StringToKey(t *testing.T) {
	pub, err := StringToKey(vectorText)
	if err != nil {
		t.Fatalf("StringToKey(vector): %v", err)
	}
	wantRaw, err := hex.DecodeString(vectorRawHex)
	if err != nil {
		t.Fatalf("decode vector hex: %v", err)
	}
	if string(pub) != string(wantRaw) {
		t.Fatalf("raw key mismatch: got %x want %s", []byte(pub), vectorRawHex)
	}
}

func TestConformanceVector_RoundTripExact(t *testing.T) {
	pub, err := StringToKey(vectorText)
	if err != nil {
		t.Fatalf("StringToKey(vector): %v", err)
	}
	text, err := KeyToString(pub)
	if err != nil {
		t.Fatalf("KeyToString: %v", err)
	}
	if text != vectorText {
		t.Fatalf("re-encoded text mismatch:\n got %s\nwant %s", text, vectorText)
	}
}

func TestConformanceVector_ArmoredForms(t *testing.T) {
	for _, sep := range []string{"\n", "\r\n"} {
		armored := fold(vectorText, 64, sep)
		pub, err := StringToKey(armored)
		if err != nil {
			t.Fatalf("StringToKey(armored %q): %v", sep, err)
		}
		text, err := KeyToString(pub)
		if err != nil {
			t.Fatalf("KeyToString: %v", err)
		}
		if text != vectorText {
			t.Fatalf("armored round-trip mismatch: got %s", text)
		}
	}
}
