// Package keys provides key-management helpers around the keytext codec.
//
// Stable:
//   - Pure, deterministic primitives: seed parsing, role-seed derivation, and
//     rendering a seed's public key in the codec text form.
//
// Experimental:
//   - Filesystem-backed key storage and convenience helpers (Store and related
//     functions). These are local-first utilities, not a protocol contract.
package keys
