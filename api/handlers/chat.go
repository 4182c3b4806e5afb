package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/whosonpole/whos-on-pole-api/api"
	"github.com/whosonpole/whos-on-pole-api/databases"
	"github.com/whosonpole/whos-on-pole-api/models"
)

const (
	chatWriteWait      = 10 * time.Second
	chatPongWait       = 60 * time.Second
	chatPingPeriod     = (chatPongWait * 9) / 10
	chatMaxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub relays paddock chat messages between connected clients. Every relayed
// message is persisted first so a chat_message report has a row to point at.
type Hub struct {
	MDB databases.ChatMessageDatabase

	clients    map[*ChatClient]bool
	broadcast  chan []byte
	register   chan *ChatClient
	unregister chan *ChatClient
}

// NewHub creates the hub; callers run it with `go hub.Run()`
func NewHub(mdb databases.ChatMessageDatabase) *Hub {
	return &Hub{
		MDB:        mdb,
		clients:    make(map[*ChatClient]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *ChatClient),
		unregister: make(chan *ChatClient),
	}
}

// Run owns the client set; all membership changes and fan-out go through
// the hub goroutine so no locking is needed
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow consumer, drop the connection
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// ChatClient is one websocket connection in the paddock chat
type ChatClient struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	userID   string
	username string
}

type inboundChatMessage struct {
	Body string `json:"body"`
}

func (c *ChatClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(chatMaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(chatPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(chatPongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.S().Debugw("chat connection closed", "userId", c.userID, "error", err)
			}
			return
		}

		var inbound inboundChatMessage
		if err := json.Unmarshal(raw, &inbound); err != nil || inbound.Body == "" {
			continue
		}

		message := models.ChatMessage{
			ID:        primitive.NewObjectID(),
			UserID:    c.userID,
			Username:  c.username,
			Body:      inbound.Body,
			CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
		}

		ctx, cancel := context.WithTimeout(context.Background(), api.QueryTimeout)
		_, err = c.hub.MDB.InsertOne(ctx, message)
		cancel()
		if err != nil {
			zap.S().Errorw("failed to persist chat message", "error", err, "userId", c.userID)
			continue
		}

		// broadcast the persisted form so clients see the id they would
		// report against
		b, err := json.Marshal(message)
		if err != nil {
			continue
		}
		c.hub.broadcast <- b
	}
}

func (c *ChatClient) writePump() {
	ticker := time.NewTicker(chatPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Chat upgrades authenticated requests into the paddock chat hub
type Chat struct {
	Hub *Hub
	UDB databases.UserDatabase
}

// ServeWsHandler upgrades the request to a websocket and joins the hub
func (ch Chat) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	userID := api.UserIDFromContext(r.Context())

	username := ""
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		ctx, cancel := api.WithQueryTimeout(r.Context())
		if user, err := ch.UDB.FindOne(ctx, bson.M{"_id": oid}); err == nil {
			username = user.Username
		}
		cancel()
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("failed to upgrade chat connection", "error", err)
		return
	}

	client := &ChatClient{
		hub:      ch.Hub,
		conn:     conn,
		send:     make(chan []byte, 16),
		userID:   userID,
		username: username,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
