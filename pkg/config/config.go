// Package config turns the process environment into a validated Config.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	z "github.com/Oudwins/zog"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/mqtt"
)

const (
	DBTypeFirebase string = "firebase"
	DBTypeFile     string = "file"
	DBTypeMemory   string = "memory"
	DBTypeBadger   string = "badger"

	DefaultHttpHostPort string  = ":1080"
	DefaultTimezone     string  = "Africa/Harare"
	DefaultRate         float64 = 5
	DefaultBurst        int     = 10
	DefaultDBPath       string  = "helmets.db"
	DefaultBadgerPath   string  = "data/badger"
	DefaultMQTTClientID string  = "smart-helmet-backend"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

type ClerkConfig struct {
	SecretKey string
	APIURL    string
}

type Config struct {
	DBType     string
	DBPath     string
	BadgerPath string

	FirebaseDatabaseURL     string
	FirebaseCredentialsFile string

	HttpHostPort   string
	GrpcHostPort   string
	AllowedOrigins []string
	Location       *time.Location

	DefaultRate  float64
	DefaultBurst int

	Clerk  ClerkConfig
	Redis  RedisConfig
	Influx InfluxConfig
	MQTT   mqtt.Options
}

func (c *Config) IdentityEnabled() bool { return c.Clerk.SecretKey != "" }
func (c *Config) RedisEnabled() bool    { return c.Redis.Addr != "" }
func (c *Config) InfluxEnabled() bool   { return c.Influx.URL != "" }
func (c *Config) MQTTEnabled() bool     { return c.MQTT.Broker != "" }

var (
	rateValidator  = z.Float64().GT(0)
	burstValidator = z.Int().GTE(1)
)

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envOr(key, fallback string) string {
	if v := env(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	return common.Filter(
		common.Mapper(strings.Split(raw, ","), strings.TrimSpace),
		func(s string) bool { return s != "" },
	)
}

// Load reads the environment. Every problem found is reported at once, keyed by
// the offending env key, as a validation error.
func Load() (*Config, error) {
	cfg := &Config{
		DBType:     envOr(common.EnvKeyHelmetDBType, DBTypeMemory),
		DBPath:     envOr(common.EnvKeyHelmetDbPath, DefaultDBPath),
		BadgerPath: envOr(common.EnvKeyHelmetBadgerPath, DefaultBadgerPath),

		FirebaseDatabaseURL:     env(common.EnvKeyFirebaseDatabaseURL),
		FirebaseCredentialsFile: env(common.EnvKeyFirebaseCredentialsFile),

		HttpHostPort:   envOr(common.EnvKeyHelmetHttpHostPort, DefaultHttpHostPort),
		GrpcHostPort:   env(common.EnvKeyHelmetGrpcHostPort),
		AllowedOrigins: splitList(env(common.EnvKeyCorsAllowedOrigins)),

		DefaultRate:  DefaultRate,
		DefaultBurst: DefaultBurst,

		Clerk: ClerkConfig{
			SecretKey: env(common.EnvKeyClerkSecretKey),
			APIURL:    env(common.EnvKeyClerkAPIURL),
		},
		Redis: RedisConfig{
			Addr:     env(common.EnvKeyRedisAddr),
			Password: os.Getenv(common.EnvKeyRedisPassword),
			Channel:  env(common.EnvKeyAlertChannel),
		},
		Influx: InfluxConfig{
			URL:    env(common.EnvKeyInfluxURL),
			Token:  env(common.EnvKeyInfluxToken),
			Org:    env(common.EnvKeyInfluxOrg),
			Bucket: env(common.EnvKeyInfluxBucket),
		},
		MQTT: mqtt.Options{
			Broker:   env(common.EnvKeyMQTTBroker),
			ClientID: envOr(common.EnvKeyMQTTClientID, DefaultMQTTClientID),
			Username: env(common.EnvKeyMQTTUsername),
			Password: os.Getenv(common.EnvKeyMQTTPassword),
			Topic:    envOr(common.EnvKeyMQTTTopic, mqtt.DefaultTopic),
		},
	}

	problems := map[string]string{}

	switch cfg.DBType {
	case DBTypeMemory, DBTypeBadger, DBTypeFile:
	case DBTypeFirebase:
		if cfg.FirebaseDatabaseURL == "" {
			problems[common.EnvKeyFirebaseDatabaseURL] = "required when " + common.EnvKeyHelmetDBType + " is firebase"
		}
	default:
		problems[common.EnvKeyHelmetDBType] = fmt.Sprintf("unknown store type %q", cfg.DBType)
	}

	loc, err := time.LoadLocation(envOr(common.EnvKeyHelmetTimezone, DefaultTimezone))
	if err != nil {
		problems[common.EnvKeyHelmetTimezone] = err.Error()
	}
	cfg.Location = loc

	if raw := env(common.EnvKeyHelmetDefaultRate); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || len(rateValidator.Validate(&v)) > 0 {
			problems[common.EnvKeyHelmetDefaultRate] = "should be a positive float64 value"
		} else {
			cfg.DefaultRate = v
		}
	}

	if raw := env(common.EnvKeyHelmetDefaultBurst); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || len(burstValidator.Validate(&v)) > 0 {
			problems[common.EnvKeyHelmetDefaultBurst] = "should be an int value of at least 1"
		} else {
			cfg.DefaultBurst = v
		}
	}

	if raw := env(common.EnvKeyRedisDB); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			problems[common.EnvKeyRedisDB] = "should be a non-negative int value"
		} else {
			cfg.Redis.DB = v
		}
	}

	if cfg.InfluxEnabled() && (cfg.Influx.Org == "" || cfg.Influx.Bucket == "") {
		problems[common.EnvKeyInfluxBucket] = "org and bucket are required when " + common.EnvKeyInfluxURL + " is set"
	}

	if len(problems) > 0 {
		return nil, common.NewValidationError("invalid configuration", problems)
	}
	return cfg, nil
}
