package keydir

import "errors"

var (
	ErrNotFound    = errors.New("keydir: not found")
	ErrInvalidCID  = errors.New("keydir: invalid cid")
	ErrCIDMismatch = errors.New("keydir: cid mismatch")
	ErrImmutable   = errors.New("keydir: immutable object mismatch")
	ErrNotEd25519  = errors.New("keydir: not an ed25519 public key")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
