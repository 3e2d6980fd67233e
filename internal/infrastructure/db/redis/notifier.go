package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/consumershield/claims-core/internal/core/domain"
)

const notificationOutboxKey = "notifications:outbox"

// Notifier publishes status-change notifications to a Redis list that an
// external sender process drains. The core only defines the message
// shape; transport to the claimant (email, push) happens elsewhere.
type Notifier struct {
	client *redis.Client
}

func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{client: client}
}

type statusChangedMessage struct {
	Type            string    `json:"type"`
	ClaimID         string    `json:"claim_id"`
	NewStatus       string    `json:"new_status"`
	RecipientUserID string    `json:"recipient_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (n *Notifier) StatusChanged(ctx context.Context, claimID string, newStatus domain.ClaimStatus, recipientUserID string) error {
	msg := statusChangedMessage{
		Type:            "claim.status_changed",
		ClaimID:         claimID,
		NewStatus:       string(newStatus),
		RecipientUserID: recipientUserID,
		CreatedAt:       time.Now().UTC(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := n.client.LPush(ctx, notificationOutboxKey, payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
