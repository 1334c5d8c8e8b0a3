package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/timbray/blueskidjava/keydir/grpckeydir"
	"github.com/timbray/blueskidjava/keydir/localfs"
)

func main() {
	fs := flag.NewFlagSet("blueskid-keydird", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7788", "listen address")
	root := fs.String("root", "", "directory root for stored keys")

	_ = fs.Parse(os.Args[1:])
	if *root == "" {
		fmt.Fprintln(os.Stderr, "missing --root")
		os.Exit(2)
	}

	dir, err := localfs.New(*root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpckeydir.RegisterKeyDirServer(s, &grpckeydir.Server{Dir: dir})

	fmt.Fprintf(os.Stderr, "blueskid-keydird listening on %s (root=%s)\n", lis.Addr().String(), *root)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
