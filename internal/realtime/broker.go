package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"likering/internal/api/dto"
	"likering/internal/model"
	"likering/internal/service"
	"likering/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Event is what a websocket client receives.
type Event struct {
	Type string          `json:"type"`
	Data dto.MessageInfo `json:"data"`
}

// envelope carries an event across instances over Redis pub/sub.
type envelope struct {
	To    string `json:"to"`
	Event Event  `json:"event"`
}

// Broker delivers new-message events to recipients. With a Redis client every
// API instance receives every event and delivers it to its own connections;
// without one, delivery is local to this process.
type Broker struct {
	hub     *Hub
	rdb     *redis.Client
	channel string
}

// NewBroker creates a broker delivering to hub.
func NewBroker(hub *Hub) *Broker {
	return &Broker{hub: hub}
}

// WithRedis fans events out through channel.
func (b *Broker) WithRedis(rdb *redis.Client, channel string) *Broker {
	b.rdb = rdb
	b.channel = channel
	return b
}

// NotifyMessage implements service.MessageNotifier.
func (b *Broker) NotifyMessage(ctx context.Context, msg *model.Message) error {
	env := envelope{
		To: msg.ToUsername,
		Event: Event{
			Type: "message",
			Data: service.ToMessageInfo(msg),
		},
	}

	if b.rdb == nil {
		return b.deliver(&env)
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode message event: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish message event: %w", err)
	}
	return nil
}

// Run relays events from Redis to local connections until ctx is done. It
// returns immediately when no Redis client is configured.
func (b *Broker) Run(ctx context.Context) error {
	if b.rdb == nil {
		return nil
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}
	logger.Info("Realtime broker subscribed", zap.String("channel", b.channel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
				logger.Warn("Dropping malformed message event", zap.Error(err))
				continue
			}
			_ = b.deliver(&env)
		}
	}
}

func (b *Broker) deliver(env *envelope) error {
	payload, err := json.Marshal(env.Event)
	if err != nil {
		return fmt.Errorf("failed to encode message event: %w", err)
	}
	n := b.hub.Deliver(env.To, payload)
	logger.Debug("Message event delivered", zap.String("to", env.To), zap.Int("connections", n))
	return nil
}
