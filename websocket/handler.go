package websocket

import (
	"net/http"
	"strings"

	"slidecraft/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// Origins are already restricted by the CORS layer in front of the API.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProgressHandler upgrades an authenticated request and streams the user's
// generation progress until the client goes away. Browsers cannot set
// headers on websocket requests, so the token may come from ?token=.
func (h *Hub) ProgressHandler(c *gin.Context) {
	var tokenString string
	if authz := c.GetHeader("Authorization"); authz != "" {
		parts := strings.Split(authz, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Authorization token required"})
		return
	}

	claims, err := utils.ParseJWTToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{Conn: conn, UserID: claims.UserID}
	h.Register(client)
	defer h.Unregister(client)

	client.SafeWriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Connected to generation progress",
		"userId":  claims.UserID,
	})

	// Inbound messages are ignored; reading keeps control frames flowing
	// and tells us when the peer disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("progress websocket closed", "user", claims.UserID, "error", err)
			}
			return
		}
	}
}
