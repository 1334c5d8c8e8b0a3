package grpckeydir

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// KeyDirServer is the server API for the KeyDir gRPC service.
//
// We intentionally use protobuf well-known wrapper types so this package does
// not require a protoc/codegen toolchain.
//
// Proto definition: keydir.proto.
type KeyDirServer interface {
	Put(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	Get(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
}

// UnimplementedKeyDirServer can be embedded to have forward compatible implementations.
type UnimplementedKeyDirServer struct{}

func (UnimplementedKeyDirServer) Put(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Put not implemented")
}
func (UnimplementedKeyDirServer) Get(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedKeyDirServer) Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Has not implemented")
}

// RegisterKeyDirServer registers the KeyDir service on a gRPC server.
func RegisterKeyDirServer(s grpc.ServiceRegistrar, srv KeyDirServer) {
	s.RegisterService(&KeyDir_ServiceDesc, srv)
}

// KeyDirClient is the client API for the KeyDir gRPC service.
type KeyDirClient interface {
	Put(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Get(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Has(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

type keyDirClient struct{ cc grpc.ClientConnInterface }

func NewKeyDirClient(cc grpc.ClientConnInterface) KeyDirClient { return &keyDirClient{cc: cc} }

func (c *keyDirClient) Put(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/blueskid.keydir.v1.KeyDir/Put", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *keyDirClient) Get(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/blueskid.keydir.v1.KeyDir/Get", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *keyDirClient) Has(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	err := c.cc.Invoke(ctx, "/blueskid.keydir.v1.KeyDir/Has", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _KeyDir_Put_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KeyDirServer).Put(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/blueskid.keydir.v1.KeyDir/Put"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KeyDirServer).Put(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _KeyDir_Get_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KeyDirServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/blueskid.keydir.v1.KeyDir/Get"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KeyDirServer).Get(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _KeyDir_Has_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KeyDirServer).Has(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/blueskid.keydir.v1.KeyDir/Has"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KeyDirServer).Has(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// KeyDir_ServiceDesc is the grpc.ServiceDesc for KeyDir service.
var KeyDir_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "blueskid.keydir.v1.KeyDir",
	HandlerType: (*KeyDirServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Put", Handler: _KeyDir_Put_Handler},
		{MethodName: "Get", Handler: _KeyDir_Get_Handler},
		{MethodName: "Has", Handler: _KeyDir_Has_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "keydir.proto",
}
