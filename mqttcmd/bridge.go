// Package mqttcmd accepts command lines over MQTT. Each message on the
// command topic is dispatched and the reply is published on the result
// topic.
package mqttcmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"i4.energy/across/smscmd/dispatch"
)

// ErrNoBroker is returned by Connect when no broker URL is configured.
var ErrNoBroker = errors.New("mqtt broker is required")

const (
	// ResultSuffix is appended to the command topic for replies.
	ResultSuffix = "/result"

	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 250 // milliseconds
)

// Config describes the broker connection.
type Config struct {
	Broker   string // e.g. "tcp://localhost:1883"
	ClientID string
	Topic    string
	Username string
	Password string
}

// Publisher is the part of mqtt.Client used to send replies.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Bridge connects an MQTT topic to a dispatcher.
type Bridge struct {
	Logger     *slog.Logger
	Dispatcher *dispatch.Dispatcher
	Topic      string

	client mqtt.Client
}

// ClientOptions builds the paho options for cfg. The subscription is
// made in the OnConnect handler so it is restored after a reconnect.
func (b *Bridge) ClientOptions(cfg Config) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetOrderMatters(false)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		b.Logger.Warn("MQTT connection lost", "error", err)
	})
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		b.Logger.Info("MQTT connected, subscribing", "topic", b.Topic)
		token := c.Subscribe(b.Topic, 0, func(c mqtt.Client, m mqtt.Message) {
			b.HandleMessage(c, m)
		})
		if token.Wait() && token.Error() != nil {
			b.Logger.Error("MQTT subscribe failed", "error", token.Error(), "topic", b.Topic)
		}
	})
	return opts
}

// Connect opens the broker connection. It returns once the first
// connection attempt completes or ctx is done.
func (b *Bridge) Connect(ctx context.Context, cfg Config) error {
	if cfg.Broker == "" {
		return ErrNoBroker
	}
	if b.Topic == "" {
		b.Topic = cfg.Topic
	}

	b.client = mqtt.NewClient(b.ClientOptions(cfg))
	token := b.client.Connect()
	select {
	case <-ctx.Done():
		b.client.Disconnect(disconnectQuiesce)
		return ctx.Err()
	case <-token.Done():
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.Broker, err)
	}
	return nil
}

// Close disconnects from the broker.
func (b *Bridge) Close() {
	if b.client != nil {
		b.client.Disconnect(disconnectQuiesce)
	}
}

// HandleMessage dispatches the payload of m as one command line and
// publishes the reply.
func (b *Bridge) HandleMessage(pub Publisher, m mqtt.Message) dispatch.Result {
	line := string(m.Payload())
	res := b.Dispatcher.Handle(line)
	b.Logger.Debug("MQTT command processed", "topic", m.Topic(), "command", res.Command, "outcome", res.Outcome.String())

	token := pub.Publish(b.Topic+ResultSuffix, 0, false, res.String())
	if !token.WaitTimeout(publishTimeout) {
		b.Logger.Warn("MQTT publish timed out", "topic", b.Topic+ResultSuffix)
	} else if err := token.Error(); err != nil {
		b.Logger.Error("MQTT publish failed", "error", err, "topic", b.Topic+ResultSuffix)
	}
	return res
}
