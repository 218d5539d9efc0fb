package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/monitor"
)

// CreateRequestIDInterceptor carries x-request-id (or a fresh ULID) into the context and echoes it back.
func (s *MonitoringServer) CreateRequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		requestID := requestIDFromMetadata(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(MetadataRequestID, requestID))
		return handler(monitor.WithRequestID(ctx, requestID), req)
	}
}

func (s *MonitoringServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targetMethodMap := common.Reducer(targetMethods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if _, ok := targetMethodMap[info.FullMethod]; ok {
			actor, err := ActorFromContext(ctx)
			if err != nil {
				return nil, status.Error(codes.Unauthenticated, err.Error())
			}
			if !s.CheckActorLimiter(monitor.ActorKey(actor.UserID)) {
				return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
			}
		}

		return handler(ctx, req)
	}
}

// RateLimitedMethods are all methods but PostLimiter, so an admin can always lift a limit.
var RateLimitedMethods = []string{
	MethodRegisterReading,
	MethodGetThresholds,
	MethodSetThreshold,
	MethodGetAlerts,
}

// NewServer wires the service with its interceptors.
func NewServer(s *MonitoringServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.CreateRequestIDInterceptor(),
		s.CreateRateLimitInterceptor(RateLimitedMethods),
	))
	server := grpc.NewServer(opts...)
	RegisterMonitoringServiceServer(server, s)
	return server
}
