package keys

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store is a simple local-first key store.
//
// EXPERIMENTAL: this filesystem-backed storage surface is not part of the
// stable core API and may change in MINOR releases.
//
// Layout: <dir>/<name>/root.key holds the hex seed (0600), derived role keys
// live under <dir>/<name>/roles/<role>.key. Ed25519 only.
type Store struct {
	Directory string
}

type Entry struct {
	Name  string
	Roles []string
}

func DefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".blueskid", "keys"), nil
}

// Open returns a Store rooted at directory, or the default directory when
// directory is empty. The directory is not created until a key is written.
func Open(directory string) (*Store, error) {
	if directory == "" {
		var err error
		directory, err = DefaultDirectory()
		if err != nil {
			return nil, err
		}
	}
	return &Store{Directory: directory}, nil
}

func (s *Store) rootKeyPath(name string) string {
	return filepath.Join(s.Directory, name, "root.key")
}

func (s *Store) roleKeyPath(name, role string) string {
	return filepath.Join(s.Directory, name, "roles", role+".key")
}

func CheckKeyName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	for _, char := range name {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in name", char)
	}
	return nil
}

func CheckRole(role string) error {
	if role == "" {
		return errors.New("role cannot be empty")
	}
	for _, char := range role {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in role", char)
	}
	return nil
}

func ParseSeedHex(seedHex string) ([]byte, error) {
	seedHex = strings.TrimSpace(seedHex)
	seedHex = strings.TrimPrefix(seedHex, "0x")
	data, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(data) != ed25519.SeedSize {
		return nil, fmt.Errorf("expected seed length of %d bytes, got %d", ed25519.SeedSize, len(data))
	}
	return data, nil
}

func (s *Store) writeSeed(path string, seed []byte, overwrite bool) error {
	if len(seed) != ed25519.SeedSize {
		return fmt.Errorf("expected seed length of %d bytes", ed25519.SeedSize)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.WriteString(hex.EncodeToString(seed) + "\n"); err != nil {
		return err
	}
	return file.Close()
}

func (s *Store) readSeed(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeedHex(strings.TrimSpace(string(data)))
}

// InitRoot writes a root seed under name and returns the public key's codec
// text form plus the file it was stored at.
func (s *Store) InitRoot(name string, seed []byte, overwrite bool) (textKey string, path string, err error) {
	if err := CheckKeyName(name); err != nil {
		return "", "", err
	}
	path = s.rootKeyPath(name)
	if err := s.writeSeed(path, seed, overwrite); err != nil {
		return "", "", err
	}
	textKey, err = TextKeyFromSeed(seed)
	if err != nil {
		return "", "", err
	}
	return textKey, path, nil
}

// DeriveRole derives and stores a role key from name's root seed.
func (s *Store) DeriveRole(name, role string, overwrite bool) (textKey string, path string, err error) {
	if err := CheckKeyName(name); err != nil {
		return "", "", err
	}
	if err := CheckRole(role); err != nil {
		return "", "", err
	}
	rootSeed, err := s.readSeed(s.rootKeyPath(name))
	if err != nil {
		return "", "", err
	}
	roleSeed, err := DeriveRoleSeed(rootSeed, role)
	if err != nil {
		return "", "", err
	}
	path = s.roleKeyPath(name, role)
	if err := s.writeSeed(path, roleSeed, overwrite); err != nil {
		return "", "", err
	}
	textKey, err = TextKeyFromSeed(roleSeed)
	if err != nil {
		return "", "", err
	}
	return textKey, path, nil
}

// Export returns the codec text form of a stored key's public half.
// An empty role exports the root key.
func (s *Store) Export(name, role string) (string, error) {
	if err := CheckKeyName(name); err != nil {
		return "", err
	}
	var seed []byte
	var err error
	if role == "" {
		seed, err = s.readSeed(s.rootKeyPath(name))
	} else {
		if err := CheckRole(role); err != nil {
			return "", err
		}
		seed, err = s.readSeed(s.roleKeyPath(name, role))
	}
	if err != nil {
		return "", err
	}
	return TextKeyFromSeed(seed)
}

// LoadSeed resolves a signing seed from, in priority order: an explicit hex
// seed, a key file path, or a stored signer name (optionally with a role).
func (s *Store) LoadSeed(seedHex, signerName, signerRole, keyFile string) ([]byte, error) {
	if seedHex != "" {
		return ParseSeedHex(seedHex)
	}
	if keyFile != "" {
		return s.readSeed(keyFile)
	}
	if signerName != "" {
		if err := CheckKeyName(signerName); err != nil {
			return nil, err
		}
		if signerRole == "" {
			return s.readSeed(s.rootKeyPath(signerName))
		}
		if err := CheckRole(signerRole); err != nil {
			return nil, err
		}
		return s.readSeed(s.roleKeyPath(signerName, signerRole))
	}
	return nil, errors.New("no signer provided")
}

// List enumerates stored keys and their derived roles, sorted by name.
func (s *Store) List() ([]Entry, error) {
	entries, err := os.ReadDir(s.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var result []Entry
	for _, name := range names {
		rolesDir := filepath.Join(s.Directory, name, "roles")
		roleEntries, rerr := os.ReadDir(rolesDir)
		var roles []string
		if rerr == nil {
			for _, roleEntry := range roleEntries {
				if roleEntry.IsDir() {
					continue
				}
				if strings.HasSuffix(roleEntry.Name(), ".key") {
					roles = append(roles, strings.TrimSuffix(roleEntry.Name(), ".key"))
				}
			}
			sort.Strings(roles)
		}
		result = append(result, Entry{Name: name, Roles: roles})
	}
	return result, nil
}
