package grpckeydir

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/timbray/blueskidjava/keydir"
)

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return keydir.ErrNotFound
	case codes.InvalidArgument:
		// Server uses InvalidArgument for malformed CIDs and non-key payloads.
		if st.Message() == keydir.ErrNotEd25519.Error() {
			return keydir.ErrNotEd25519
		}
		return keydir.ErrInvalidCID
	case codes.DataLoss:
		// Server uses DataLoss when bytes do not match the requested CID.
		return keydir.ErrCIDMismatch
	default:
		// Best-effort: if the server sent a known keydir error message, preserve it.
		switch st.Message() {
		case keydir.ErrNotFound.Error():
			return keydir.ErrNotFound
		case keydir.ErrInvalidCID.Error():
			return keydir.ErrInvalidCID
		case keydir.ErrNotEd25519.Error():
			return keydir.ErrNotEd25519
		case keydir.ErrCIDMismatch.Error():
			return keydir.ErrCIDMismatch
		default:
			return err
		}
	}
}
