package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Messages on this service are google.protobuf.Struct, so no generated code is needed.

const (
	MonitoringServiceName = "telemonitoring.v1.MonitoringService"

	MethodRegisterReading = "/" + MonitoringServiceName + "/RegisterReading"
	MethodGetThresholds   = "/" + MonitoringServiceName + "/GetThresholds"
	MethodSetThreshold    = "/" + MonitoringServiceName + "/SetThreshold"
	MethodGetAlerts       = "/" + MonitoringServiceName + "/GetAlerts"
	MethodPostLimiter     = "/" + MonitoringServiceName + "/PostLimiter"
)

type MonitoringServiceServer interface {
	RegisterReading(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetThresholds(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetThreshold(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAlerts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PostLimiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(MonitoringServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// methodHandler matches grpc.MethodDesc.Handler, whose named type is unexported.
type methodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

func unaryHandler(fullMethod string, call unaryCall) methodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MonitoringServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MonitoringServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var MonitoringServiceDesc = grpc.ServiceDesc{
	ServiceName: MonitoringServiceName,
	HandlerType: (*MonitoringServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterReading", Handler: unaryHandler(MethodRegisterReading, MonitoringServiceServer.RegisterReading)},
		{MethodName: "GetThresholds", Handler: unaryHandler(MethodGetThresholds, MonitoringServiceServer.GetThresholds)},
		{MethodName: "SetThreshold", Handler: unaryHandler(MethodSetThreshold, MonitoringServiceServer.SetThreshold)},
		{MethodName: "GetAlerts", Handler: unaryHandler(MethodGetAlerts, MonitoringServiceServer.GetAlerts)},
		{MethodName: "PostLimiter", Handler: unaryHandler(MethodPostLimiter, MonitoringServiceServer.PostLimiter)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "telemonitoring/v1/monitoring.proto",
}

func RegisterMonitoringServiceServer(s grpc.ServiceRegistrar, srv MonitoringServiceServer) {
	s.RegisterService(&MonitoringServiceDesc, srv)
}

type MonitoringServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMonitoringServiceClient(cc grpc.ClientConnInterface) *MonitoringServiceClient {
	return &MonitoringServiceClient{cc: cc}
}

func (c *MonitoringServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MonitoringServiceClient) RegisterReading(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRegisterReading, in, opts...)
}

func (c *MonitoringServiceClient) GetThresholds(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetThresholds, in, opts...)
}

func (c *MonitoringServiceClient) SetThreshold(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodSetThreshold, in, opts...)
}

func (c *MonitoringServiceClient) GetAlerts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetAlerts, in, opts...)
}

func (c *MonitoringServiceClient) PostLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodPostLimiter, in, opts...)
}
