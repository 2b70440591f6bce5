package system

import (
	"encoding/json"

	"casa360/internal/realtime"
	"casa360/pkg/utils"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type WebSocketController struct {
	Hub    *realtime.Hub
	Logger *zap.Logger
}

func NewWebSocketController(hub *realtime.Hub, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		Hub:    hub,
		Logger: logger,
	}
}

// clientMessage is what the browser sends over the socket. Changes flow the
// other way only; the socket is never a write path into the data.
type clientMessage struct {
	Type  string `json:"type"` // subscribe | unsubscribe
	Table string `json:"table"`
	Event string `json:"event,omitempty"` // insert | update | delete | *
}

// HandleConnection authenticates the connection from the token query param
// (browsers cannot set headers on websocket upgrades) and then serves
// subscribe/unsubscribe requests until the peer goes away.
func (c *WebSocketController) HandleConnection(conn *websocket.Conn) {
	token := conn.Query("token")
	claims, err := utils.ValidateToken(token)
	if err != nil {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
		conn.Close()
		return
	}

	client := realtime.NewClient(conn, claims.FamilyID, claims.UserID)
	c.Hub.Register(client)
	defer func() {
		c.Hub.Unregister(client)
		conn.Close()
	}()

	c.Logger.Debug("websocket connected",
		zap.String("userId", claims.UserID),
		zap.String("familyId", claims.FamilyID))

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Table == "" {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"bad message"}`))
			continue
		}

		switch msg.Type {
		case "subscribe":
			client.Subscribe(msg.Table, msg.Event)
		case "unsubscribe":
			client.Unsubscribe(msg.Table)
		default:
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unknown type"}`))
		}
	}
}
