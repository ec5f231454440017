package realtime

import (
	"sync"

	"panal/internal/models"
)

// ChannelHub mantiene las conexiones suscritas a cada canal de proyecto
// y reparte los mensajes nuevos entre ellas. Las conexiones cuya escritura
// falla se dan de baja en el propio reparto.
type ChannelHub struct {
	mu       sync.RWMutex
	channels map[int64]map[*Conn]struct{}
}

func NewChannelHub() *ChannelHub {
	return &ChannelHub{
		channels: make(map[int64]map[*Conn]struct{}),
	}
}

func (h *ChannelHub) Subscribe(channelID int64, conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.channels[channelID] == nil {
		h.channels[channelID] = make(map[*Conn]struct{})
	}
	h.channels[channelID][conn] = struct{}{}
}

func (h *ChannelHub) Unsubscribe(channelID int64, conn *Conn) {
	h.mu.Lock()
	h.drop(channelID, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// Count devuelve cuántas conexiones están suscritas al canal.
func (h *ChannelHub) Count(channelID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channelID])
}

func (h *ChannelHub) Broadcast(msg *models.ChannelMessage) {
	h.mu.RLock()
	conns := make([]*Conn, 0, len(h.channels[msg.ChannelID]))
	for conn := range h.channels[msg.ChannelID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	var dead []*Conn
	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			dead = append(dead, conn)
		}
	}
	if len(dead) == 0 {
		return
	}

	h.mu.Lock()
	for _, conn := range dead {
		h.drop(msg.ChannelID, conn)
	}
	h.mu.Unlock()
	for _, conn := range dead {
		_ = conn.Close()
	}
}

// drop quita la conexión del canal; el llamante tiene el lock.
func (h *ChannelHub) drop(channelID int64, conn *Conn) {
	if conns, ok := h.channels[channelID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.channels, channelID)
		}
	}
}
