package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ConnectionManager fans events out to the WebSocket clients watching each
// draft. Connections are pooled by draft ID; a slow client whose send buffer
// fills is dropped rather than allowed to stall the broadcast loop.
type ConnectionManager struct {
	rooms map[uuid.UUID]map[*Connection]bool
	mu    sync.RWMutex

	upgrader websocket.Upgrader
	config   ConnectionConfig

	broadcastCh chan broadcast
}

// Connection is one client WebSocket attached to a draft room.
type Connection struct {
	ID      string
	DraftID uuid.UUID
	Conn    *websocket.Conn
	Send    chan []byte
	Manager *ConnectionManager

	ConnectedAt time.Time
}

// ConnectionConfig holds WebSocket tuning knobs.
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

type broadcast struct {
	draftID uuid.UUID
	event   *RoomEvent
}

// DefaultConnectionConfig returns the default WebSocket configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// NewConnectionManager creates a connection manager with the given config.
func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		rooms: make(map[uuid.UUID]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan broadcast, 1000),
	}
}

// Start runs the broadcast loop until ctx is cancelled.
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			return
		case b := <-cm.broadcastCh:
			cm.handleBroadcast(b)
		}
	}
}

// Upgrade promotes an HTTP request to a WebSocket connection and registers it
// in the draft's room.
func (cm *ConnectionManager) Upgrade(w http.ResponseWriter, r *http.Request, draftID uuid.UUID) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("upgrade connection: %w", err)
	}

	c := &Connection{
		ID:          uuid.New().String(),
		DraftID:     draftID,
		Conn:        conn,
		Send:        make(chan []byte, 256),
		Manager:     cm,
		ConnectedAt: time.Now(),
	}

	cm.register(c)

	go c.writePump()
	go c.readPump()

	log.Info().
		Str("connection_id", c.ID).
		Str("draft_id", draftID.String()).
		Msg("websocket connection established")

	return nil
}

func (cm *ConnectionManager) register(c *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.rooms[c.DraftID] == nil {
		cm.rooms[c.DraftID] = make(map[*Connection]bool)
	}
	cm.rooms[c.DraftID][c] = true
}

func (cm *ConnectionManager) unregister(c *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	room, ok := cm.rooms[c.DraftID]
	if !ok {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}

	delete(room, c)
	close(c.Send)
	if len(room) == 0 {
		delete(cm.rooms, c.DraftID)
	}

	log.Info().
		Str("connection_id", c.ID).
		Str("draft_id", c.DraftID.String()).
		Msg("websocket connection closed")
}

// BroadcastToDraft queues an event for every connection in the draft's room.
// Drops the event if the broadcast buffer is full.
func (cm *ConnectionManager) BroadcastToDraft(draftID uuid.UUID, event *RoomEvent) {
	select {
	case cm.broadcastCh <- broadcast{draftID: draftID, event: event}:
	default:
		log.Warn().Str("draft_id", draftID.String()).Msg("broadcast channel full, dropping event")
	}
}

func (cm *ConnectionManager) handleBroadcast(b broadcast) {
	cm.mu.RLock()
	room, ok := cm.rooms[b.draftID]
	if !ok {
		cm.mu.RUnlock()
		return
	}
	targets := make([]*Connection, 0, len(room))
	for c := range room {
		targets = append(targets, c)
	}
	cm.mu.RUnlock()

	data, err := json.Marshal(b.event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	for _, c := range targets {
		select {
		case c.Send <- data:
		default:
			log.Warn().
				Str("connection_id", c.ID).
				Msg("send buffer full, closing connection")
			cm.unregister(c)
			c.Conn.Close()
		}
	}

	log.Debug().
		Str("event_type", string(b.event.Type)).
		Str("draft_id", b.draftID.String()).
		Int("connections", len(targets)).
		Msg("event broadcasted")
}

// Stats reports active connection counts per draft.
func (cm *ConnectionManager) Stats() map[string]interface{} {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	total := 0
	perDraft := make(map[string]int)
	for draftID, room := range cm.rooms {
		total += len(room)
		perDraft[draftID.String()] = len(room)
	}

	return map[string]interface{}{
		"total_connections": total,
		"active_drafts":     len(cm.rooms),
		"draft_connections": perDraft,
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregister(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("failed to write message")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		return nil
	})

	// Clients are read-only consumers; inbound frames only reset the
	// read deadline.
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("unexpected websocket close")
			}
			break
		}
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}
