package handlers

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"mutual/internal/escrow"
	"mutual/internal/models"
)

// DealStatusEvent событие сделки для подписчиков websocket.
// Type совпадает с типом события движка, например `DealStatusChanged`.
type DealStatusEvent struct {
	Type       string            `json:"type" example:"DealStatusChanged"`
	Deal       models.Deal       `json:"deal"`
	Attributes map[string]string `json:"attributes"`
	At         time.Time         `json:"at"`
}

var dealStatusClients = struct {
	sync.RWMutex
	m map[string]map[*websocket.Conn]bool
}{m: make(map[string]map[*websocket.Conn]bool)}

func sendDealStatusEvent(conn *websocket.Conn, ev DealStatusEvent) error {
	return conn.WriteJSON(ev)
}

// BroadcastDealEvent рассылает событие подписчикам сделки.
func BroadcastDealEvent(ev escrow.Event) {
	if ev.Deal == nil {
		return
	}
	msg := DealStatusEvent{Type: ev.Type, Deal: *ev.Deal, Attributes: ev.Attributes, At: ev.At}
	dealStatusClients.Lock()
	conns := dealStatusClients.m[ev.Deal.ID]
	for c := range conns {
		if err := sendDealStatusEvent(c, msg); err != nil {
			c.Close()
			delete(conns, c)
		}
	}
	dealStatusClients.Unlock()
}

// DealStatusEmitter подключает рассылку websocket к событиям движка.
type DealStatusEmitter struct{}

func (DealStatusEmitter) Emit(ev escrow.Event) { BroadcastDealEvent(ev) }

// DealStatusWS godoc
// @Summary Websocket событий сделки
// @Description Стороны сделки и админ получают DealStatusEvent при каждом изменении сделки.
// @Tags deals
// @Security Signature
// @Param id path string true "ID сделки"
// @Success 101 {object} handlers.DealStatusEvent "Switching Protocols"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /ws/deals/{id}/status [get]
func DealStatusWS(engine *escrow.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, ok := loadViewableDeal(c, engine)
		if !ok {
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		dealStatusClients.Lock()
		conns, ok := dealStatusClients.m[d.ID]
		if !ok {
			conns = make(map[*websocket.Conn]bool)
			dealStatusClients.m[d.ID] = conns
		}
		conns[conn] = true
		dealStatusClients.Unlock()
		defer func() {
			dealStatusClients.Lock()
			delete(dealStatusClients.m[d.ID], conn)
			if len(dealStatusClients.m[d.ID]) == 0 {
				delete(dealStatusClients.m, d.ID)
			}
			dealStatusClients.Unlock()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
