package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/reset"
)

func TestResetHandler_ChallengeThenWrongAnswer(t *testing.T) {
	env := setupTestEnv(t)
	service := reset.NewService(env.store)
	handler := NewResetHandler(service, nil, env.audit)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	handler.GetChallenge(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var challenge struct {
		ID       string `json:"id"`
		Question string `json:"question"`
	}
	decodeBody(t, w, &challenge)
	if challenge.ID == "" || challenge.Question == "" {
		t.Fatal("expected a challenge id and question")
	}

	cc, cw := jsonContext(t, http.MethodPost, "/api/reset", map[string]string{
		"challenge_id": challenge.ID,
		"answer":       "kesinlikle hayir",
	})
	handler.ConfirmReset(cc)

	if cw.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for wrong answer, got %d", cw.Code)
	}
}

func TestResetHandler_UnknownChallenge(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewResetHandler(reset.NewService(env.store), nil, env.audit)

	c, w := jsonContext(t, http.MethodPost, "/api/reset", map[string]string{
		"challenge_id": "rst-missing",
		"answer":       "evet",
	})
	handler.ConfirmReset(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestResetHandler_MissingBody(t *testing.T) {
	env := setupTestEnv(t)
	handler := NewResetHandler(reset.NewService(env.store), nil, env.audit)

	c, w := jsonContext(t, http.MethodPost, "/api/reset", map[string]string{})
	handler.ConfirmReset(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
