package grpckeydir

import (
	"context"
	"errors"

	"github.com/ipfs/go-cid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/timbray/blueskidjava/fingerprint"
	"github.com/timbray/blueskidjava/keydir"
)

// Server exposes a keydir.Directory over the KeyDir gRPC service.
type Server struct {
	UnimplementedKeyDirServer
	Dir keydir.Directory
}

func (s *Server) Put(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	if s == nil || s.Dir == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing directory")
	}
	der := in.GetValue()
	// Validate and recompute the fingerprint on the server side too.
	if err := keydir.CheckPayload(der); err != nil {
		return nil, status.Error(codes.InvalidArgument, keydir.ErrNotEd25519.Error())
	}
	expected, err := fingerprint.CIDv1RawSHA256CID(der)
	if err != nil {
		return nil, status.Error(codes.Internal, "fingerprint computation failed")
	}
	id, err := s.Dir.Put(der)
	if err != nil {
		return nil, mapErr(err)
	}
	if id.String() != expected.String() {
		return nil, status.Error(codes.DataLoss, keydir.ErrCIDMismatch.Error())
	}
	return wrapperspb.String(id.String()), nil
}

func (s *Server) Get(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Dir == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing directory")
	}
	id, err := cid.Decode(in.GetValue())
	if err != nil || !id.Defined() {
		return nil, status.Error(codes.InvalidArgument, keydir.ErrInvalidCID.Error())
	}
	der, err := s.Dir.Get(id)
	if err != nil {
		return nil, mapErr(err)
	}
	got, err := fingerprint.CIDv1RawSHA256CID(der)
	if err != nil {
		return nil, status.Error(codes.Internal, "fingerprint computation failed")
	}
	if got.String() != id.String() {
		return nil, status.Error(codes.DataLoss, keydir.ErrCIDMismatch.Error())
	}
	return wrapperspb.Bytes(der), nil
}

func (s *Server) Has(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if s == nil || s.Dir == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing directory")
	}
	id, err := cid.Decode(in.GetValue())
	if err != nil || !id.Defined() {
		return nil, status.Error(codes.InvalidArgument, keydir.ErrInvalidCID.Error())
	}
	return wrapperspb.Bool(s.Dir.Has(id)), nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, keydir.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, keydir.ErrInvalidCID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, keydir.ErrNotEd25519):
		return status.Error(codes.InvalidArgument, keydir.ErrNotEd25519.Error())
	case errors.Is(err, keydir.ErrCIDMismatch):
		return status.Error(codes.DataLoss, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
