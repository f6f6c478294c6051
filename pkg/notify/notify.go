// Package notify fans alert events out to dashboards and pagers.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

const (
	EventAlertCreated      string = "alert.created"
	EventAlertAcknowledged string = "alert.acknowledged"

	DefaultChannel string = "helmet:alerts"

	recentLimit int64 = 100
)

type AlertEvent struct {
	Kind  string       `json:"kind"`
	At    int64        `json:"at"`
	Alert models.Alert `json:"alert"`
}

type Publisher interface {
	PublishAlert(ctx context.Context, event AlertEvent) error
	// RecentAlerts returns the newest events first.
	RecentAlerts(ctx context.Context, limit int) ([]AlertEvent, error)
	Close() error
}

type NopPublisher struct{}

func (NopPublisher) PublishAlert(context.Context, AlertEvent) error { return nil }

func (NopPublisher) RecentAlerts(context.Context, int) ([]AlertEvent, error) {
	return []AlertEvent{}, nil
}

func (NopPublisher) Close() error { return nil }

// RedisPublisher publishes every event on a pub/sub channel and keeps a capped
// list of recent events for clients that connect late.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  common.GetLoggerWith(common.LoggerNameNotify, zap.String("channel", channel)),
	}
}

func (p *RedisPublisher) recentKey() string {
	return p.channel + ":recent"
}

func (p *RedisPublisher) PublishAlert(ctx context.Context, event AlertEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode alert event: %w", err)
	}

	_, err = p.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Publish(ctx, p.channel, data)
		pipe.LPush(ctx, p.recentKey(), data)
		pipe.LTrim(ctx, p.recentKey(), 0, recentLimit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish alert event: %w", err)
	}

	p.logger.Debug("Published alert event", zap.String("kind", event.Kind), zap.String("alert_id", event.Alert.ID))
	return nil
}

func (p *RedisPublisher) RecentAlerts(ctx context.Context, limit int) ([]AlertEvent, error) {
	if limit <= 0 || int64(limit) > recentLimit {
		limit = int(recentLimit)
	}
	items, err := p.client.LRange(ctx, p.recentKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read recent alert events: %w", err)
	}
	events := make([]AlertEvent, 0, len(items))
	for _, item := range items {
		var e AlertEvent
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			p.logger.Warn("Skipping malformed alert event", zap.Error(err))
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
