package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"slidecraft/internal/generation"
	"slidecraft/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func dialProgress(t *testing.T, hub *Hub, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws/generation", hub.ProgressHandler)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/generation?token=" + token
	return websocket.DefaultDialer.Dial(url, nil)
}

func TestProgressHandlerStreamsOwnerEvents(t *testing.T) {
	utils.SetJWTSecret("ws-secret", time.Hour)
	token, err := utils.GenerateJWTToken("user-1", "u@example.com")
	if err != nil {
		t.Fatal(err)
	}

	hub := NewHub(nil)
	conn, _, err := dialProgress(t, hub, token)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var hello map[string]interface{}
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	if hello["type"] != "connected" {
		t.Fatalf("welcome = %v", hello)
	}
	if hub.Connections("user-1") != 1 {
		t.Fatalf("connections = %d", hub.Connections("user-1"))
	}

	// Events for other users are not delivered.
	hub.PublishProgress("user-2", "deck-x", generation.Progress{Stage: generation.StageStarted})
	hub.PublishProgress("user-1", "deck-1", generation.Progress{Stage: generation.StageSlide, Index: 2, Total: 5, Title: "Benefits"})

	var msg ProgressMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read progress: %v", err)
	}
	if msg.DeckID != "deck-1" || msg.Stage != generation.StageSlide || msg.Index != 2 || msg.Title != "Benefits" {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestProgressHandlerRejectsBadToken(t *testing.T) {
	utils.SetJWTSecret("ws-secret", time.Hour)
	_, resp, err := dialProgress(t, NewHub(nil), "garbage")
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("response = %+v", resp)
	}
}
