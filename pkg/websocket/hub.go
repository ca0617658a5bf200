// Package websocket carries the live results feed: quiz owners connect and
// receive each graded submission as it lands.
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"quizlink/internal/auth"
	"quizlink/internal/models"
	"quizlink/internal/response"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Message is the JSON frame pushed to watchers.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// QuizResolver maps a slug-or-id reference to the quiz's slug and owner.
// Implemented by the quiz service; the indirection keeps this package from
// importing it.
type QuizResolver interface {
	OwnerOf(idOrSlug string) (slug string, ownerID uint, err error)
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	slug string
}

type roomMessage struct {
	slug    string
	payload []byte
}

// Hub keeps one room per quiz slug. Rooms are created when the first
// watcher connects and dropped when the last one leaves. All room state is
// owned by the Run goroutine; broadcasts are funneled through it so a send
// can never race a channel close.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
	quizzes    QuizResolver
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 64),
	}
}

func (h *Hub) SetQuizResolver(resolver QuizResolver) {
	h.quizzes = resolver
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.rooms[client.slug] == nil {
				h.rooms[client.slug] = make(map[*Client]bool)
			}
			h.rooms[client.slug][client] = true

		case client := <-h.unregister:
			h.drop(client)

		case msg := <-h.broadcast:
			for client := range h.rooms[msg.slug] {
				select {
				case client.send <- msg.payload:
				default:
					h.drop(client)
				}
			}
		}
	}
}

// drop must only be called from the Run goroutine.
func (h *Hub) drop(client *Client) {
	room, ok := h.rooms[client.slug]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.slug)
	}
}

// NotifySubmission publishes a graded attempt to the quiz's room. Watchers
// too slow to drain their buffer are dropped; a saturated hub drops the
// event instead of stalling submission handling.
func (h *Hub) NotifySubmission(slug string, submission models.SubmissionDTO) {
	payload, err := json.Marshal(Message{Type: "submission", Data: submission})
	if err != nil {
		log.Printf("ws encode: %v", err)
		return
	}

	select {
	case h.broadcast <- roomMessage{slug: slug, payload: payload}:
	default:
		log.Printf("ws broadcast buffer full, dropping event for %s", slug)
	}
}

// HandleWebSocket upgrades a quiz owner's connection and attaches it to the
// quiz's room. Must run behind the auth middleware.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	idOrSlug := mux.Vars(r)["idOrSlug"]
	slug, ownerID, err := h.quizzes.OwnerOf(idOrSlug)
	if err != nil {
		response.Error(w, http.StatusNotFound, "Quiz not found")
		return
	}
	if ownerID != identity.UserID {
		response.Error(w, http.StatusForbidden, "Unauthorized")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		slug: slug,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump discards inbound frames; the feed is one-way. It exists to
// service pongs and to notice the peer going away.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read: %v", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
