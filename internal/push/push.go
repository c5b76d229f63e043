package push

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// ErrNotFound is returned when no subscription matches the given id
var ErrNotFound = errors.New("subscription not found")

// Broadcaster manages stored push subscriptions and delivers payloads
// to their endpoints. Delivery is a plain HTTP POST of the message
// JSON; the push service itself is an external collaborator.
type Broadcaster struct {
	store  *docstore.Store
	client *http.Client
}

// NewBroadcaster creates a broadcaster backed by the document store
func NewBroadcaster(store *docstore.Store) *Broadcaster {
	return &Broadcaster{
		store: store,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Subscriptions returns all stored push subscriptions
func (b *Broadcaster) Subscriptions() ([]models.PushSubscription, error) {
	subs := []models.PushSubscription{}
	if err := b.store.Read(docstore.DocPushSubscriptions, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Subscribe stores a new subscription, replacing any existing entry
// with the same endpoint
func (b *Broadcaster) Subscribe(sub models.PushSubscription) (*models.PushSubscription, error) {
	if sub.Endpoint == "" {
		return nil, fmt.Errorf("subscription endpoint is required")
	}

	sub.ID = "push-" + uuid.New().String()[:8]
	sub.CreatedAt = time.Now()

	var subs []models.PushSubscription
	err := b.store.Update(docstore.DocPushSubscriptions, &subs, func() error {
		kept := subs[:0]
		for _, existing := range subs {
			if existing.Endpoint != sub.Endpoint {
				kept = append(kept, existing)
			}
		}
		subs = append(kept, sub)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

// Unsubscribe removes a subscription by id
func (b *Broadcaster) Unsubscribe(id string) error {
	found := false
	var subs []models.PushSubscription
	err := b.store.Update(docstore.DocPushSubscriptions, &subs, func() error {
		kept := subs[:0]
		for _, existing := range subs {
			if existing.ID == id {
				found = true
				continue
			}
			kept = append(kept, existing)
		}
		subs = kept
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Deliver posts msg to a single subscription endpoint. A 404 or 410
// response marks the subscription as gone.
func (b *Broadcaster) Deliver(sub models.PushSubscription, msg models.PushMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, sub.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("TTL", "86400")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("push delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		if err := b.Unsubscribe(sub.ID); err != nil {
			log.Printf("[Push] Failed to prune dead subscription %s: %v", sub.ID, err)
		}
		return fmt.Errorf("subscription is gone (status %d)", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
