// Package rpc is the gRPC contract between the vault client and the blob
// server. Messages are protobuf well-known types, so no generated code is
// needed: the service descriptor below is written in the shape protoc-gen-go-grpc
// would produce.
//
//	service VaultStore {
//	  rpc GetVault(google.protobuf.Empty) returns (google.protobuf.BytesValue);
//	  rpc PutVault(google.protobuf.BytesValue) returns (google.protobuf.Empty);
//	  rpc Ping(google.protobuf.Empty) returns (google.protobuf.StringValue);
//	}
//
// Every call carries the caller's access token and owner id as metadata.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "safetrace.vault.VaultStore"

const (
	VaultStore_GetVault_FullMethodName = "/" + ServiceName + "/GetVault"
	VaultStore_PutVault_FullMethodName = "/" + ServiceName + "/PutVault"
	VaultStore_Ping_FullMethodName     = "/" + ServiceName + "/Ping"
)

// PingOK is the status string returned by a healthy server.
const PingOK = "OK"

// VaultStoreClient is the client API for the VaultStore service.
type VaultStoreClient interface {
	GetVault(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	PutVault(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type vaultStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewVaultStoreClient(cc grpc.ClientConnInterface) VaultStoreClient {
	return &vaultStoreClient{cc}
}

func (c *vaultStoreClient) GetVault(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, VaultStore_GetVault_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultStoreClient) PutVault(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, VaultStore_PutVault_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultStoreClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, VaultStore_Ping_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// VaultStoreServer is the server API for the VaultStore service.
type VaultStoreServer interface {
	GetVault(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
	PutVault(context.Context, *wrapperspb.BytesValue) (*emptypb.Empty, error)
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// UnimplementedVaultStoreServer can be embedded to have forward compatible implementations.
type UnimplementedVaultStoreServer struct{}

func (UnimplementedVaultStoreServer) GetVault(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetVault not implemented")
}

func (UnimplementedVaultStoreServer) PutVault(context.Context, *wrapperspb.BytesValue) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PutVault not implemented")
}

func (UnimplementedVaultStoreServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}

func RegisterVaultStoreServer(s grpc.ServiceRegistrar, srv VaultStoreServer) {
	s.RegisterService(&VaultStore_ServiceDesc, srv)
}

func _VaultStore_GetVault_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultStoreServer).GetVault(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: VaultStore_GetVault_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultStoreServer).GetVault(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _VaultStore_PutVault_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultStoreServer).PutVault(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: VaultStore_PutVault_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultStoreServer).PutVault(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _VaultStore_Ping_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultStoreServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: VaultStore_Ping_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(VaultStoreServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// VaultStore_ServiceDesc is the grpc.ServiceDesc for the VaultStore service.
var VaultStore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VaultStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetVault",
			Handler:    _VaultStore_GetVault_Handler,
		},
		{
			MethodName: "PutVault",
			Handler:    _VaultStore_PutVault_Handler,
		},
		{
			MethodName: "Ping",
			Handler:    _VaultStore_Ping_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "safetrace/vault.proto",
}
