package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "helmet.v1.DeviceGateway"

	MethodPostReading   = "/" + ServiceName + "/PostReading"
	MethodGetAssignment = "/" + ServiceName + "/GetAssignment"
	MethodRaisePanic    = "/" + ServiceName + "/RaisePanic"
)

// DeviceGatewayServer is the device facing API. Messages are structpb.Struct so
// firmware can evolve its payload without regenerating stubs.
type DeviceGatewayServer interface {
	PostReading(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetAssignment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RaisePanic(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv DeviceGatewayServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DeviceGatewayServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DeviceGatewayServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var DeviceGatewayServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DeviceGatewayServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PostReading",
			Handler:    unaryHandler(MethodPostReading, DeviceGatewayServer.PostReading),
		},
		{
			MethodName: "GetAssignment",
			Handler:    unaryHandler(MethodGetAssignment, DeviceGatewayServer.GetAssignment),
		},
		{
			MethodName: "RaisePanic",
			Handler:    unaryHandler(MethodRaisePanic, DeviceGatewayServer.RaisePanic),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "helmet/v1/device_gateway.proto",
}

func RegisterDeviceGatewayServer(s grpc.ServiceRegistrar, srv DeviceGatewayServer) {
	s.RegisterService(&DeviceGatewayServiceDesc, srv)
}

type DeviceGatewayClient struct {
	cc grpc.ClientConnInterface
}

func NewDeviceGatewayClient(cc grpc.ClientConnInterface) *DeviceGatewayClient {
	return &DeviceGatewayClient{cc: cc}
}

func (c *DeviceGatewayClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DeviceGatewayClient) PostReading(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPostReading, in, opts...)
}

func (c *DeviceGatewayClient) GetAssignment(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetAssignment, in, opts...)
}

func (c *DeviceGatewayClient) RaisePanic(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRaisePanic, in, opts...)
}
