package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Realtime channel and event names. A client subscribes to its own
// user-updates channel and reacts to verification decisions immediately.
const (
	RealtimeChannelPrefix         = "user-updates:"
	RealtimeEventVerification     = "verification_result"
	RealtimeTypeVerificationOK    = "verification_approved"
	RealtimeTypeVerificationNotOK = "verification_rejected"
)

// StatusPayload is the message body pushed on a user's private channel.
type StatusPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

// RealtimePublisher pushes ephemeral per-user messages. Delivery is
// at-most-once and best-effort: a disconnected client misses the push and
// falls back to polling its notification list.
type RealtimePublisher interface {
	PublishVerificationResult(ctx context.Context, userID uuid.UUID, payload StatusPayload) error
}

type redisRealtimePublisher struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisRealtimePublisher(client *redis.Client, log *logrus.Logger) RealtimePublisher {
	return &redisRealtimePublisher{
		client: client,
		log:    log,
	}
}

func (p *redisRealtimePublisher) PublishVerificationResult(ctx context.Context, userID uuid.UUID, payload StatusPayload) error {
	envelope := struct {
		Event   string        `json:"event"`
		Payload StatusPayload `json:"payload"`
	}{
		Event:   RealtimeEventVerification,
		Payload: payload,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	channel := fmt.Sprintf("%s%s", RealtimeChannelPrefix, userID.String())
	if err := p.client.Publish(ctx, channel, body).Err(); err != nil {
		p.log.Warnf("Failed to publish realtime message on %s: %+v", channel, err)
		return err
	}

	return nil
}
