package localfs

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"

	"github.com/timbray/blueskidjava/fingerprint"
	"github.com/timbray/blueskidjava/keydir"
)

// Directory is a local filesystem-backed public-key directory.
//
// Keys are stored immutably as their SubjectPublicKeyInfo DER bytes, fanned
// out by fingerprint CID. This implementation is offline and deterministic:
// it never uses the network and never depends on wall-clock time.
type Directory struct {
	root string
}

// New constructs a filesystem directory rooted at root. The directory will be
// created if needed.
func New(root string) (*Directory, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Directory{root: root}, nil
}

func (d *Directory) Put(der []byte) (cid.Cid, error) {
	if err := keydir.CheckPayload(der); err != nil {
		return cid.Undef, err
	}
	id, err := fingerprint.CIDv1RawSHA256CID(der)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, keydir.ErrInvalidCID
	}

	path := d.pathFor(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cid.Undef, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o444)
	if err != nil {
		if os.IsExist(err) {
			existing, rerr := d.Get(id)
			if rerr != nil {
				// If the file exists but is unreadable or corrupted, treat as an immutability violation.
				return cid.Undef, keydir.ErrImmutable
			}
			if string(existing) != string(der) {
				return cid.Undef, keydir.ErrImmutable
			}
			return id, nil
		}
		return cid.Undef, err
	}
	defer f.Close()

	if _, err := f.Write(der); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return cid.Undef, err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return cid.Undef, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return cid.Undef, err
	}

	return id, nil
}

func (d *Directory) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, keydir.ErrInvalidCID
	}
	path := d.pathFor(id)
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, keydir.ErrNotFound
		}
		return nil, err
	}
	got, err := fingerprint.CIDv1RawSHA256CID(b)
	if err != nil {
		return nil, err
	}
	if got != id {
		return nil, keydir.ErrCIDMismatch
	}
	return b, nil
}

func (d *Directory) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	_, err := os.Stat(d.pathFor(id))
	return err == nil
}

func (d *Directory) pathFor(id cid.Cid) string {
	s := id.String()
	if len(s) < 2 {
		return filepath.Join(d.root, s)
	}
	return filepath.Join(d.root, s[:2], s)
}
