// Package ybot declares the YBotService gRPC contract. Messages travel as
// google.protobuf.Struct so the service needs no generated code:
//
//	rpc ChooseMove(Struct{bot_id, yen}) returns (Struct{x, y, z})
package ybot

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName      = "ybot.YBotService"
	ChooseMoveMethod = "/" + ServiceName + "/ChooseMove"
)

type YBotServiceServer interface {
	ChooseMove(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type YBotServiceClient interface {
	ChooseMove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type yBotServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewYBotServiceClient(cc grpc.ClientConnInterface) YBotServiceClient {
	return &yBotServiceClient{cc: cc}
}

func (c *yBotServiceClient) ChooseMove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ChooseMoveMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterYBotServiceServer(s grpc.ServiceRegistrar, srv YBotServiceServer) {
	s.RegisterService(&YBotServiceDesc, srv)
}

func chooseMoveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(YBotServiceServer).ChooseMove(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ChooseMoveMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(YBotServiceServer).ChooseMove(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var YBotServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*YBotServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ChooseMove", Handler: chooseMoveHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ybot.proto",
}
