package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ipfs/go-cid"

	"github.com/timbray/blueskidjava/fingerprint"
	"github.com/timbray/blueskidjava/keydir"
	"github.com/timbray/blueskidjava/keydir/grpckeydir"
	"github.com/timbray/blueskidjava/keydir/localfs"
	"github.com/timbray/blueskidjava/keys"
	"github.com/timbray/blueskidjava/keytext"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "encode":
		return cmdEncode(args[1:], out, errOut)
	case "decode":
		return cmdDecode(args[1:], out, errOut)
	case "fingerprint":
		return cmdFingerprint(args[1:], out, errOut)
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "sign":
		return cmdSign(args[1:], out, errOut)
	case "verify":
		return cmdVerify(args[1:], out, errOut)
	case "dir":
		return cmdDir(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "blueskid: Ed25519 public-key text tooling")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  blueskid encode <file|->")
	fmt.Fprintln(w, "  blueskid decode <file|->")
	fmt.Fprintln(w, "  blueskid fingerprint [--hash sha256|sha3-256] <file|->")
	fmt.Fprintln(w, "  blueskid key init --name <name> [--seed-hex <64hex>] [--dir <path>] [--force]")
	fmt.Fprintln(w, "  blueskid key derive --from <name> --role <role> [--dir <path>] [--force]")
	fmt.Fprintln(w, "  blueskid key list [--dir <path>]")
	fmt.Fprintln(w, "  blueskid key export --name <name> [--role <role>] [--dir <path>]")
	fmt.Fprintln(w, "  blueskid sign (--seed-hex <64hex> | --signer <name> [--signer-role <role>] | --key-file <path>) [--dir <path>] <file|->")
	fmt.Fprintln(w, "  blueskid verify --key <text|file> --sig <base64> <file|->")
	fmt.Fprintln(w, "  blueskid dir put (--root <path> | --remote <addr>) <file|->")
	fmt.Fprintln(w, "  blueskid dir get (--root <path> | --remote <addr>) <cid>")
	fmt.Fprintln(w, "  blueskid dir has (--root <path> | --remote <addr>) <cid>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - key text is base64 of the X.509 SubjectPublicKeyInfo; PEM armor is accepted on input")
	fmt.Fprintln(w, "  - encode normalizes any accepted form (armored or not) to the single-line base64 form")
	fmt.Fprintln(w, "  - --seed-hex must be 32 bytes (64 hex chars) ed25519 seed")
	fmt.Fprintln(w, "  - keys are stored under ~/.blueskid/keys/<name> (0600 seed files)")
	fmt.Fprintln(w, "  - dir stores SubjectPublicKeyInfo bytes under their fingerprint CID")
}

// readInput reads a file argument, with "-" meaning stdin.
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// readKeyText resolves an argument that is either key text itself or a path
// to a file containing it.
func readKeyText(arg string) (string, error) {
	if arg == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	if _, err := os.Stat(arg); err == nil {
		b, rerr := os.ReadFile(arg)
		if rerr != nil {
			return "", rerr
		}
		return string(b), nil
	}
	return arg, nil
}

func cmdEncode(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blueskid encode <file|->")
		return 2
	}
	b, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read key: %v\n", err)
		return 1
	}
	pub, err := keytext.StringToKey(strings.TrimSpace(string(b)))
	if err != nil {
		fmt.Fprintf(errOut, "invalid key text: %v\n", err)
		return 1
	}
	text, err := keytext.KeyToString(pub)
	if err != nil {
		fmt.Fprintf(errOut, "encode: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, text)
	return 0
}

func cmdDecode(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blueskid decode <file|->")
		return 2
	}
	text, err := readKeyText(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read key: %v\n", err)
		return 1
	}
	pub, err := keytext.StringToKey(strings.TrimSpace(text))
	if err != nil {
		fmt.Fprintf(errOut, "invalid key text: %v\n", err)
		return 1
	}
	fp, err := fingerprint.ForKey(pub, "sha256")
	if err != nil {
		fmt.Fprintf(errOut, "fingerprint: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, "Algorithm: Ed25519")
	fmt.Fprintf(out, "Key: %s\n", hex.EncodeToString(pub))
	fmt.Fprintf(out, "Fingerprint: %s\n", fp)
	return 0
}

func cmdFingerprint(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("fingerprint", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var hashAlg string
	fs.StringVar(&hashAlg, "hash", "sha256", "Fingerprint hash: sha256 or sha3-256")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blueskid fingerprint [--hash sha256|sha3-256] <file|->")
		return 2
	}
	text, err := readKeyText(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read key: %v\n", err)
		return 1
	}
	pub, err := keytext.StringToKey(strings.TrimSpace(text))
	if err != nil {
		fmt.Fprintf(errOut, "invalid key text: %v\n", err)
		return 1
	}
	fp, err := fingerprint.ForKey(pub, hashAlg)
	if err != nil {
		fmt.Fprintf(errOut, "fingerprint: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, fp)
	return 0
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printKeyUsage(errOut)
		return 2
	}
	switch args[0] {
	case "init":
		return cmdKeyInit(args[1:], out, errOut)
	case "derive":
		return cmdKeyDerive(args[1:], out, errOut)
	case "list":
		return cmdKeyList(args[1:], out, errOut)
	case "export":
		return cmdKeyExport(args[1:], out, errOut)
	case "help", "-h", "--help":
		printKeyUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n\n", args[0])
		printKeyUsage(errOut)
		return 2
	}
}

func printKeyUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: blueskid key <subcommand> ...")
	fmt.Fprintln(w, "subcommands: init, derive, list, export")
}

func cmdKeyInit(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key init", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var seedHex string
	var dir string
	var force bool

	fs.StringVar(&name, "name", "", "Key name (directory under ~/.blueskid/keys)")
	fs.StringVar(&seedHex, "seed-hex", "", "Optional ed25519 seed as 64 hex chars (for reproducible demos)")
	fs.StringVar(&dir, "dir", "", "Key store directory (default ~/.blueskid/keys)")
	fs.BoolVar(&force, "force", false, "Overwrite existing key files")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	if err := keys.CheckKeyName(name); err != nil {
		fmt.Fprintf(errOut, "invalid --name: %v\n", err)
		return 2
	}
	ks, err := keys.Open(dir)
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}

	var seed []byte
	if seedHex != "" {
		var derr error
		seed, derr = keys.ParseSeedHex(seedHex)
		if derr != nil {
			fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", derr)
			return 2
		}
	} else {
		seed = make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			fmt.Fprintf(errOut, "rand: %v\n", err)
			return 1
		}
	}

	textKey, rootPath, err := ks.InitRoot(name, seed, force)
	if err != nil {
		fmt.Fprintf(errOut, "write key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Created root key: %s\n", textKey)
	fmt.Fprintf(out, "Stored at: %s\n", rootPath)
	return 0
}

func cmdKeyDerive(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var from string
	var role string
	var dir string
	var force bool

	fs.StringVar(&from, "from", "", "Root key name")
	fs.StringVar(&role, "role", "", "Role to derive")
	fs.StringVar(&dir, "dir", "", "Key store directory (default ~/.blueskid/keys)")
	fs.BoolVar(&force, "force", false, "Overwrite existing key files")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if from == "" || role == "" {
		fmt.Fprintln(errOut, "missing --from or --role")
		return 2
	}
	ks, err := keys.Open(dir)
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	textKey, path, err := ks.DeriveRole(from, role, force)
	if err != nil {
		fmt.Fprintf(errOut, "derive key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Derived role key: %s\n", textKey)
	fmt.Fprintf(out, "Stored at: %s\n", path)
	return 0
}

func cmdKeyList(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key list", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var dir string
	fs.StringVar(&dir, "dir", "", "Key store directory (default ~/.blueskid/keys)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	ks, err := keys.Open(dir)
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	entries, err := ks.List()
	if err != nil {
		fmt.Fprintf(errOut, "list keys: %v\n", err)
		return 1
	}
	for _, e := range entries {
		if len(e.Roles) == 0 {
			fmt.Fprintln(out, e.Name)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", e.Name, strings.Join(e.Roles, ","))
	}
	return 0
}

func cmdKeyExport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key export", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var role string
	var dir string

	fs.StringVar(&name, "name", "", "Key name")
	fs.StringVar(&role, "role", "", "Optional role (if set, exports derived role key)")
	fs.StringVar(&dir, "dir", "", "Key store directory (default ~/.blueskid/keys)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	ks, err := keys.Open(dir)
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	textKey, err := ks.Export(name, role)
	if err != nil {
		fmt.Fprintf(errOut, "export key: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, textKey)
	return 0
}

func cmdSign(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var seedHex string
	var signer string
	var signerRole string
	var keyFile string
	var dir string

	fs.StringVar(&seedHex, "seed-hex", "", "Ed25519 seed as 64 hex chars")
	fs.StringVar(&signer, "signer", "", "Stored key name")
	fs.StringVar(&signerRole, "signer-role", "", "Stored key role")
	fs.StringVar(&keyFile, "key-file", "", "Path to a seed file")
	fs.StringVar(&dir, "dir", "", "Key store directory (default ~/.blueskid/keys)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blueskid sign (--seed-hex | --signer | --key-file) <file|->")
		return 2
	}
	msg, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read message: %v\n", err)
		return 1
	}
	ks, err := keys.Open(dir)
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	seed, err := ks.LoadSeed(seedHex, signer, signerRole, keyFile)
	if err != nil {
		fmt.Fprintf(errOut, "load signer: %v\n", err)
		return 1
	}
	priv := ed25519.NewKeyFromSeed(seed)
	_, _ = fmt.Fprintln(out, keys.SignEd25519SHA256(msg, priv))
	return 0
}

func cmdVerify(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var keyArg string
	var sigB64 string

	fs.StringVar(&keyArg, "key", "", "Public key text, or a file containing it")
	fs.StringVar(&sigB64, "sig", "", "Base64 signature")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if keyArg == "" || sigB64 == "" || fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blueskid verify --key <text|file> --sig <base64> <file|->")
		return 2
	}
	text, err := readKeyText(keyArg)
	if err != nil {
		fmt.Fprintf(errOut, "read key: %v\n", err)
		return 1
	}
	pub, err := keytext.StringToKey(strings.TrimSpace(text))
	if err != nil {
		fmt.Fprintf(errOut, "invalid key text: %v\n", err)
		return 1
	}
	msg, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read message: %v\n", err)
		return 1
	}
	if err := keys.VerifyEd25519SHA256(msg, pub, sigB64); err != nil {
		fmt.Fprintf(errOut, "verify: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, "OK")
	return 0
}

func cmdDir(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: blueskid dir <put|get|has> ...")
		return 2
	}
	sub := args[0]

	fs := flag.NewFlagSet("dir "+sub, flag.ContinueOnError)
	fs.SetOutput(errOut)
	var root string
	var remote string
	fs.StringVar(&root, "root", "", "Local directory root")
	fs.StringVar(&remote, "remote", "", "Remote keydir daemon address")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(errOut, "usage: blueskid dir %s (--root <path> | --remote <addr>) <arg>\n", sub)
		return 2
	}

	d, closeFn, err := openDirectory(root, remote)
	if err != nil {
		fmt.Fprintf(errOut, "dir: %v\n", err)
		return 2
	}
	if closeFn != nil {
		defer closeFn()
	}

	switch sub {
	case "put":
		text, err := readKeyText(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "read key: %v\n", err)
			return 1
		}
		pub, err := keytext.StringToKey(strings.TrimSpace(text))
		if err != nil {
			fmt.Fprintf(errOut, "invalid key text: %v\n", err)
			return 1
		}
		der, err := x509.MarshalPKIXPublicKey(pub)
		if err != nil {
			fmt.Fprintf(errOut, "serialize key: %v\n", err)
			return 1
		}
		id, err := d.Put(der)
		if err != nil {
			fmt.Fprintf(errOut, "put: %v\n", err)
			return 1
		}
		_, _ = fmt.Fprintln(out, id.String())
		return 0
	case "get":
		id, err := cid.Decode(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "invalid cid: %v\n", err)
			return 2
		}
		der, err := d.Get(id)
		if err != nil {
			fmt.Fprintf(errOut, "get: %v\n", err)
			return 1
		}
		parsed, err := x509.ParsePKIXPublicKey(der)
		if err != nil {
			fmt.Fprintf(errOut, "stored bytes are not a key: %v\n", err)
			return 1
		}
		text, err := keytext.KeyToString(parsed)
		if err != nil {
			fmt.Fprintf(errOut, "encode: %v\n", err)
			return 1
		}
		_, _ = fmt.Fprintln(out, text)
		return 0
	case "has":
		id, err := cid.Decode(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "invalid cid: %v\n", err)
			return 2
		}
		_, _ = fmt.Fprintln(out, d.Has(id))
		return 0
	default:
		fmt.Fprintf(errOut, "unknown dir subcommand: %s\n", sub)
		return 2
	}
}

func openDirectory(root, remote string) (keydir.Directory, func(), error) {
	switch {
	case root != "" && remote != "":
		return nil, nil, fmt.Errorf("--root and --remote are mutually exclusive")
	case remote != "":
		client, err := grpckeydir.Dial(remote, grpckeydir.DialOptions{})
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	case root != "":
		d, err := localfs.New(root)
		if err != nil {
			return nil, nil, err
		}
		return d, nil, nil
	default:
		return nil, nil, fmt.Errorf("one of --root or --remote is required")
	}
}
