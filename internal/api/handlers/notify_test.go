package handlers

import (
	"net/http"
	"testing"
)

func TestSendEmailFanOut(t *testing.T) {
	env := setupTestEnv(t)
	h := NewNotifyHandler(env.sender, env.audit)

	c, w := jsonContext(t, http.MethodPost, "/api/notify/email", map[string]interface{}{
		"recipients": []string{"a@example.com", "b@example.com"},
		"subject":    "Yılbaşı Menüsü",
		"body":       "Yılbaşı menümüz yayında.",
	})
	h.SendEmail(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.sender.Count() != 2 {
		t.Fatalf("expected 2 emails, got %d", env.sender.Count())
	}

	var summary struct {
		Sent   int `json:"sent"`
		Failed int `json:"failed"`
	}
	decodeBody(t, w, &summary)
	if summary.Sent != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestSendEmailRequiresRecipients(t *testing.T) {
	env := setupTestEnv(t)
	h := NewNotifyHandler(env.sender, env.audit)

	c, w := jsonContext(t, http.MethodPost, "/api/notify/email", map[string]interface{}{
		"subject": "Duyuru",
	})
	h.SendEmail(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env.sender.Count() != 0 {
		t.Fatalf("expected no emails, got %d", env.sender.Count())
	}
}
