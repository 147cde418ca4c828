package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gwebsocket "github.com/gorilla/websocket"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/wsbroadcast"
)

var upgrader = gwebsocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWs upgrades the connection and registers it with the hub so it
// starts receiving PAIRING_GENERATED / STANDINGS_UPDATED broadcasts.
func ServeWs(hub *wsbroadcast.Hub, c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &wsbroadcast.Client{Conn: conn, Send: make(chan []byte, 256)}
	hub.Register(client)

	go client.WritePump()
	go client.ReadPump(hub)
}
