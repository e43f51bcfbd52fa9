package relay

import (
	"context"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"real_estate/pkg/logger"
)

// DeliverFunc hands a frame to the local subscribers of a room.
type DeliverFunc func(room string, frame []byte)

// Fanout moves a frame from the publishing instance to every instance
// holding subscribers, including the publisher itself.
type Fanout interface {
	Publish(ctx context.Context, room string, frame []byte) error
	Subscribe(ctx context.Context, deliver DeliverFunc) error
	Close() error
}

// LocalFanout delivers in-process. It suits a single instance.
type LocalFanout struct {
	mu      sync.RWMutex
	deliver DeliverFunc
}

func NewLocalFanout() *LocalFanout {
	return &LocalFanout{}
}

func (f *LocalFanout) Publish(ctx context.Context, room string, frame []byte) error {
	f.mu.RLock()
	deliver := f.deliver
	f.mu.RUnlock()

	if deliver != nil {
		deliver(room, frame)
	}
	return nil
}

func (f *LocalFanout) Subscribe(ctx context.Context, deliver DeliverFunc) error {
	f.mu.Lock()
	f.deliver = deliver
	f.mu.Unlock()
	return nil
}

func (f *LocalFanout) Close() error {
	return nil
}

const redisChannelPrefix = "relay:room:"

// RedisFanout publishes on relay:room:<id> and pattern-subscribes to every
// room channel, so frames reach subscribers on any replica.
type RedisFanout struct {
	client *redis.Client
	log    logger.Logger

	mu     sync.Mutex
	pubsub *redis.PubSub
	done   chan struct{}
}

func NewRedisFanout(client *redis.Client, log logger.Logger) *RedisFanout {
	return &RedisFanout{
		client: client,
		log:    log,
	}
}

func (f *RedisFanout) Publish(ctx context.Context, room string, frame []byte) error {
	return f.client.Publish(ctx, redisChannelPrefix+room, frame).Err()
}

// Subscribe returns once the pattern subscription is confirmed. Delivery
// runs on a background goroutine until Close.
func (f *RedisFanout) Subscribe(ctx context.Context, deliver DeliverFunc) error {
	pubsub := f.client.PSubscribe(ctx, redisChannelPrefix+"*")
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return err
	}

	done := make(chan struct{})
	f.mu.Lock()
	f.pubsub = pubsub
	f.done = done
	f.mu.Unlock()

	go func() {
		defer close(done)
		for msg := range pubsub.Channel() {
			room := strings.TrimPrefix(msg.Channel, redisChannelPrefix)
			deliver(room, []byte(msg.Payload))
		}
	}()

	f.log.Info("Relay subscribed to redis fan-out", "pattern", redisChannelPrefix+"*")
	return nil
}

func (f *RedisFanout) Close() error {
	f.mu.Lock()
	pubsub, done := f.pubsub, f.done
	f.pubsub = nil
	f.mu.Unlock()

	if pubsub == nil {
		return nil
	}
	err := pubsub.Close()
	<-done
	return err
}
