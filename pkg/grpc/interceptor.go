package grpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
)

// CreateRateLimitInterceptor throttles the listed methods per helmetId field.
func (g *DeviceGateway) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
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
			if s, ok := req.(*structpb.Struct); ok {
				helmetID := s.GetFields()[fieldHelmetID].GetStringValue()
				if !g.CheckHelmetLimiter(helmetID) {
					common.GetLoggerWith(common.LoggerNameGrpcServer).Debug("Rate limited",
						zap.String("method", info.FullMethod),
						zap.String("helmet_id", helmetID),
					)
					return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
				}
			}
		}

		return handler(ctx, req)
	}
}
