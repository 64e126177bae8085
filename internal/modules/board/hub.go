package board

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"atithi/internal/domain"
)

// Event is a live update pushed to every connected desk dashboard.
type Event struct {
	Type       string    `json:"type"`
	RoomID     int64     `json:"room_id,omitempty"`
	RoomNumber string    `json:"room_number,omitempty"`
	BookingID  int64     `json:"booking_id,omitempty"`
	Status     string    `json:"status"`
	At         time.Time `json:"at"`
}

// Hub fans events out to connected staff clients. There is no
// per-user routing; every event goes to everyone.
type Hub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[userID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[userID] = conn
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[userID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, userID)
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

// Broadcast writes the event to every connection, dropping the ones
// that fail.
func (h *Hub) Broadcast(event Event) {
	h.mutex.RLock()
	conns := make(map[int64]*websocket.Conn, len(h.connections))
	for id, conn := range h.connections {
		conns[id] = conn
	}
	h.mutex.RUnlock()

	for id, conn := range conns {
		if conn == nil {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) PublishRoomStatus(roomID int64, roomNumber string, status domain.RoomStatus) {
	h.Broadcast(Event{
		Type:       "room_status",
		RoomID:     roomID,
		RoomNumber: roomNumber,
		Status:     string(status),
		At:         time.Now().UTC(),
	})
}

func (h *Hub) PublishBookingStatus(bookingID int64, status domain.BookingStatus) {
	h.Broadcast(Event{
		Type:      "booking_status",
		BookingID: bookingID,
		Status:    string(status),
		At:        time.Now().UTC(),
	})
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}
