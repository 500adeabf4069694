package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/safetrace/internal/common"
	"github.com/dmitrijs2005/safetrace/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) GetVault(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	blob, err := s.vaults.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, status.Error(codes.NotFound, "no vault stored")
		}
		s.logger.Error(ctx, "get vault failed", "owner", ownerID, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Debug(ctx, "vault read", "owner", ownerID, "bytes", len(blob))
	return wrapperspb.Bytes(blob), nil
}

func (s *GRPCServer) PutVault(ctx context.Context, in *wrapperspb.BytesValue) (*emptypb.Empty, error) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	revision, err := s.vaults.Put(ctx, ownerID, in.GetValue())
	if err != nil {
		s.logger.Error(ctx, "put vault failed", "owner", ownerID, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "vault stored", "owner", ownerID, "revision", revision, "bytes", len(in.GetValue()))
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(rpc.PingOK), nil
}
