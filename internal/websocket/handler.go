package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs runs a room connection until the peer goes away. The handler gets
// the join callback before any message is read so it can seed the room and
// send the initial snapshot.
func ServeWs(hub *Hub, c *websocket.Conn, roomID, kind string, userID uuid.UUID, handler MessageHandler) {
	client := &Client{
		Hub:     hub,
		Conn:    c,
		RoomID:  roomID,
		Kind:    kind,
		UserID:  userID,
		Send:    make(chan []byte, 256),
		handler: handler,
	}
	client.Hub.register <- client

	go client.writePump()
	handler.HandleJoin(client)
	client.readPump() // blocks in the connection handler goroutine
}
