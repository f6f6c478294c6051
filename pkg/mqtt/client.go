package mqtt

import (
	"context"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
)

const handleTimeout = 10 * time.Second

type MessageHandler func(ctx context.Context, topic string, payload []byte) error

type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      byte
}

type Subscriber struct {
	client paho.Client
	topic  string
}

// messageCallback adapts a handler to paho. Handler errors are logged and the
// message is dropped so one bad payload cannot stall the subscription.
func messageCallback(handler MessageHandler) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
		defer cancel()

		if err := handler(ctx, msg.Topic(), msg.Payload()); err != nil {
			common.GetLoggerWith(common.LoggerNameMQTT).Error("Error handling MQTT message",
				zap.String("topic", msg.Topic()),
				zap.Error(err),
			)
		}
	}
}

func clientOptions(opts Options) *paho.ClientOptions {
	o := paho.NewClientOptions()
	o.AddBroker(opts.Broker)
	o.SetClientID(opts.ClientID)

	if opts.Username != "" {
		o.SetUsername(opts.Username)
	}
	if opts.Password != "" {
		o.SetPassword(opts.Password)
	}

	o.SetAutoReconnect(true)
	o.SetCleanSession(true)
	o.SetConnectionLostHandler(func(_ paho.Client, err error) {
		common.GetLoggerWith(common.LoggerNameMQTT).Warn("MQTT connection lost", zap.Error(err))
	})
	return o
}

// Subscribe connects to the broker and routes every message on opts.Topic to handler.
func Subscribe(opts Options, handler MessageHandler) (*Subscriber, error) {
	if opts.Topic == "" {
		opts.Topic = DefaultTopic
	}

	client := paho.NewClient(clientOptions(opts))
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	if token := client.Subscribe(opts.Topic, opts.QoS, messageCallback(handler)); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("failed to subscribe to topic %s: %w", opts.Topic, token.Error())
	}

	common.GetLoggerWith(common.LoggerNameMQTT).Info("Subscribed to helmet telemetry",
		zap.String("broker", opts.Broker),
		zap.String("topic", opts.Topic),
	)
	return &Subscriber{client: client, topic: opts.Topic}, nil
}

func (s *Subscriber) Close() {
	if token := s.client.Unsubscribe(s.topic); token.Wait() && token.Error() != nil {
		common.GetLoggerWith(common.LoggerNameMQTT).Warn("Failed to unsubscribe", zap.Error(token.Error()))
	}
	s.client.Disconnect(250)
}
