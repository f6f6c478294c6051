package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/config"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/db"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/iot"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/notify"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb/badgerstore"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb/firebasestore"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/tsdb"
)

func openStore(ctx context.Context, cfg *config.Config) (rtdb.Store, error) {
	switch cfg.DBType {
	case config.DBTypeFirebase:
		return firebasestore.New(ctx, cfg.FirebaseDatabaseURL, cfg.FirebaseCredentialsFile)
	case config.DBTypeFile:
		return db.GetInstance(db.UseSqlitePathDialector(cfg.DBPath)).Store(), nil
	case config.DBTypeBadger:
		return badgerstore.Open(badgerstore.Options{Path: cfg.BadgerPath})
	case config.DBTypeMemory:
		return badgerstore.OpenInMemory()
	default:
		return nil, fmt.Errorf("unknown %s: %s", common.EnvKeyHelmetDBType, cfg.DBType)
	}
}

// buildCore opens the store and every optional collaborator that is configured.
// The returned cleanup closes them in reverse order.
func buildCore(ctx context.Context, cfg *config.Config) (*iot.IOT, func(), error) {
	logger := common.GetLogger()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Store opened", zap.String("type", cfg.DBType))

	core := &iot.IOT{
		Store:    store,
		Location: cfg.Location,
	}
	closers := []func(){func() { _ = store.Close() }}

	if cfg.RedisEnabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, alert events will fail until it recovers", zap.Error(err))
		}
		publisher := notify.NewRedisPublisher(client, cfg.Redis.Channel)
		core.Notifier = publisher
		closers = append(closers, func() { _ = publisher.Close() })
		logger.Info("Alert fan-out enabled", zap.String("redis", cfg.Redis.Addr))
	}

	if cfg.InfluxEnabled() {
		sink := tsdb.NewInfluxSink(cfg.Influx.URL, cfg.Influx.Token, cfg.Influx.Org, cfg.Influx.Bucket)
		core.Sink = sink
		closers = append(closers, sink.Close)
		logger.Info("Telemetry mirror enabled", zap.String("influxdb", cfg.Influx.URL))
	}

	core.WithDefaultServices()

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return core, cleanup, nil
}
