// ABOUTME: WebSocket session bridging a host UI to the viewport engine
// ABOUTME: Geometry and scroll events flow in, notifications and effects flow out

package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"docview-engine/core/domain"
	"docview-engine/core/interfaces"
	"docview-engine/core/registry"
	"docview-engine/infrastructure/provider/snapshot"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// sendBuffer bounds the outbound queue; a slow client drops messages
	// rather than stalling the engine's notification path.
	sendBuffer = 64
)

// Engine is the subset of the coordinator the session drives.
type Engine interface {
	HandleScrollEvent(offset float64)
	ScrollToPage(pageNumber int, key domain.DocumentKey, source domain.Source, opts *domain.ScrollOptions) bool
	SetProgrammaticScroll(active bool)
	RestorePosition(key domain.DocumentKey) bool
	SetPageCount(key domain.DocumentKey, count int)
	AddListener(identifier string, key domain.DocumentKey, fn registry.ListenerFunc)
	RemoveListener(identifier string, key domain.DocumentKey)
}

// inboundMessage is the envelope for host-to-engine messages.
type inboundMessage struct {
	Type string `json:"type"`

	// scroll
	Offset float64 `json:"offset,omitempty"`

	// geometry
	Snapshot *snapshot.Snapshot `json:"snapshot,omitempty"`

	// pageCount, scrollToPage, restore
	Key        string                `json:"key,omitempty"`
	Count      int                   `json:"count,omitempty"`
	PageNumber int                   `json:"pageNumber,omitempty"`
	Source     string                `json:"source,omitempty"`
	Options    *domain.ScrollOptions `json:"options,omitempty"`

	// programmatic
	Active bool `json:"active,omitempty"`
}

// outboundMessage is the envelope for engine-to-host messages.
type outboundMessage struct {
	Type       string                   `json:"type"`
	PageChange *domain.PageChange       `json:"pageChange,omitempty"`
	Completion *domain.ScrollCompletion `json:"completion,omitempty"`
	Effect     *snapshot.Effect         `json:"effect,omitempty"`
	Success    *bool                    `json:"success,omitempty"`
}

// Session wires one WebSocket connection to the engine. Inbound messages
// carry geometry snapshots and user actions; outbound messages carry page
// change notifications, scroll completions, and UI effects. The session
// registers as a listener under its own identifier, so navigations it
// initiates are not echoed back to it.
type Session struct {
	id       string
	conn     *websocket.Conn
	engine   Engine
	provider *snapshot.Provider
	logger   interfaces.Logger
	send     chan outboundMessage
	done     chan struct{}
}

// NewSession creates a session for an upgraded connection.
func NewSession(conn *websocket.Conn, engine Engine, provider *snapshot.Provider, logger interfaces.Logger) *Session {
	return &Session{
		id:       "ws-" + uuid.New().String(),
		conn:     conn,
		engine:   engine,
		provider: provider,
		logger:   logger,
		send:     make(chan outboundMessage, sendBuffer),
		done:     make(chan struct{}),
	}
}

// ID returns the session's listener identifier.
func (s *Session) ID() string {
	return s.id
}

// Run services the connection until the peer disconnects. It blocks.
func (s *Session) Run() {
	s.engine.AddListener(s.id, domain.AllDocuments, s.onEvent)
	s.provider.SetEffectSink(s.id, s.onEffect)

	defer func() {
		s.provider.ClearEffectSink(s.id)
		s.engine.RemoveListener(s.id, domain.AllDocuments)
		close(s.done)
		s.conn.Close()
	}()

	go s.writePump()
	s.readLoop()
}

func (s *Session) onEvent(e registry.Event) {
	msg := outboundMessage{}
	switch {
	case e.PageChange != nil:
		msg.Type = "pageChange"
		msg.PageChange = e.PageChange
	case e.Completion != nil:
		msg.Type = "completion"
		msg.Completion = e.Completion
	default:
		return
	}
	s.enqueue(msg)
}

func (s *Session) onEffect(effect snapshot.Effect) {
	e := effect
	s.enqueue(outboundMessage{Type: "effect", Effect: &e})
}

// enqueue drops the message when the client cannot keep up.
func (s *Session) enqueue(msg outboundMessage) {
	select {
	case s.send <- msg:
	default:
		s.logger.Warn("WebSocket send buffer full, dropping message", map[string]interface{}{
			"session": s.id,
			"type":    msg.Type,
		})
	}
}

func (s *Session) readLoop() {
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket closed unexpectedly", map[string]interface{}{
					"session": s.id,
					"error":   err.Error(),
				})
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("Dropping malformed WebSocket message", map[string]interface{}{
				"session": s.id,
				"error":   err.Error(),
			})
			continue
		}

		s.dispatch(msg)
	}
}

func (s *Session) dispatch(msg inboundMessage) {
	switch msg.Type {
	case "scroll":
		s.engine.HandleScrollEvent(msg.Offset)

	case "geometry":
		if msg.Snapshot != nil {
			s.provider.Apply(*msg.Snapshot)
		}

	case "pageCount":
		s.engine.SetPageCount(domain.DocumentKey(msg.Key), msg.Count)

	case "scrollToPage":
		success := s.engine.ScrollToPage(
			msg.PageNumber,
			domain.DocumentKey(msg.Key),
			domain.Source(msg.Source),
			msg.Options,
		)
		s.enqueue(outboundMessage{Type: "scrollToPageResult", Success: &success})

	case "programmatic":
		s.engine.SetProgrammaticScroll(msg.Active)

	case "restore":
		restored := s.engine.RestorePosition(domain.DocumentKey(msg.Key))
		s.enqueue(outboundMessage{Type: "restoreResult", Success: &restored})

	default:
		s.logger.Debug("Ignoring unknown WebSocket message type", map[string]interface{}{
			"session": s.id,
			"type":    msg.Type,
		})
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The REST layer already handles CORS; the socket accepts any origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler returns an http.HandlerFunc that upgrades requests and runs a
// session per connection.
func Handler(engine Engine, provider *snapshot.Provider, logger interfaces.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade failed", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}

		session := NewSession(conn, engine, provider, logger)
		logger.Info("WebSocket session started", map[string]interface{}{
			"session": session.ID(),
		})

		session.Run()

		logger.Info("WebSocket session ended", map[string]interface{}{
			"session": session.ID(),
		})
	}
}
