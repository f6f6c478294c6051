package grpc

import (
	"golang.org/x/time/rate"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/iot"
)

type DeviceGateway struct {
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore
}

var _ DeviceGatewayServer = (*DeviceGateway)(nil)

func (g *DeviceGateway) GetLimiter(helmetID string) *rate.Limiter {
	if g.RateLimiterStore == nil {
		return nil
	} else {
		return g.RateLimiterStore.GetLimiter(helmetID)
	}
}

func (g *DeviceGateway) CheckHelmetLimiter(helmetID string) bool {
	if g.RateLimiterStore == nil {
		return true
	}
	return g.RateLimiterStore.Allow(helmetID)
}
