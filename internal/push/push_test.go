package push

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/models"
)

func newBroadcaster(t *testing.T) *Broadcaster {
	t.Helper()
	store, err := docstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return NewBroadcaster(store)
}

func TestSubscribeDeduplicatesEndpoint(t *testing.T) {
	b := newBroadcaster(t)

	first, err := b.Subscribe(models.PushSubscription{Endpoint: "https://push.example.com/a"})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	second, err := b.Subscribe(models.PushSubscription{Endpoint: "https://push.example.com/a"})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if first.ID == second.ID {
		t.Error("expected a fresh id for the replacing subscription")
	}

	subs, err := b.Subscriptions()
	if err != nil {
		t.Fatalf("Subscriptions failed: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 subscription after re-subscribe, got %d", len(subs))
	}
	if subs[0].ID != second.ID {
		t.Errorf("expected the newer subscription to win")
	}
}

func TestUnsubscribeUnknownID(t *testing.T) {
	b := newBroadcaster(t)

	if err := b.Unsubscribe("push-missing"); err == nil {
		t.Fatal("expected an error for an unknown id")
	}
}

func TestDeliverPrunesGoneSubscription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer server.Close()

	b := newBroadcaster(t)
	sub, err := b.Subscribe(models.PushSubscription{Endpoint: server.URL})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := b.Deliver(*sub, models.PushMessage{Title: "Duyuru"}); err == nil {
		t.Fatal("expected an error for a gone endpoint")
	}

	subs, err := b.Subscriptions()
	if err != nil {
		t.Fatalf("Subscriptions failed: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("expected the gone subscription to be pruned, got %d", len(subs))
	}
}

func TestDeliverSetsHeaders(t *testing.T) {
	var gotContentType, gotTTL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotTTL = r.Header.Get("TTL")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	b := newBroadcaster(t)
	sub, err := b.Subscribe(models.PushSubscription{Endpoint: server.URL})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := b.Deliver(*sub, models.PushMessage{Title: "Duyuru"}); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
	if gotTTL != "86400" {
		t.Errorf("expected TTL header, got %q", gotTTL)
	}
}
