package notifications

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	logging "github.com/ipfs/go-log/v2"
	"gorm.io/gorm"

	"mutual/internal/escrow"
	"mutual/internal/models"
)

var log = logging.Logger("notifications")

var (
	db      *gorm.DB
	clients = struct {
		sync.RWMutex
		m map[string]map[*websocket.Conn]bool
	}{m: make(map[string]map[*websocket.Conn]bool)}
)

// SetDB устанавливает соединение с базой данных для обновления уведомлений.
func SetDB(d *gorm.DB) {
	db = d
}

// AddClient добавляет соединение вебсокета участника.
func AddClient(party string, conn *websocket.Conn) {
	clients.Lock()
	defer clients.Unlock()
	conns, ok := clients.m[party]
	if !ok {
		conns = make(map[*websocket.Conn]bool)
		clients.m[party] = conns
	}
	conns[conn] = true
}

// RemoveClient удаляет соединение вебсокета участника.
func RemoveClient(party string, conn *websocket.Conn) {
	clients.Lock()
	defer clients.Unlock()
	if conns, ok := clients.m[party]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(clients.m, party)
		}
	}
}

// Send отправляет уведомление через указанное соединение.
// При успешной отправке поле SentAt обновляется в базе данных.
func Send(conn *websocket.Conn, n models.Notification) error {
	if err := conn.WriteJSON(n); err != nil {
		return err
	}
	if db != nil {
		now := time.Now()
		db.Model(&models.Notification{}).Where("id = ?", n.ID).Update("sent_at", now)
	}
	return nil
}

// Broadcast отправляет уведомление всем соединениям участника.
func Broadcast(party string, n models.Notification) {
	clients.Lock()
	defer clients.Unlock()
	for c := range clients.m[party] {
		if err := Send(c, n); err != nil {
			c.Close()
			delete(clients.m[party], c)
		}
	}
}

// Notify сохраняет уведомление и рассылает его открытым соединениям участника.
func Notify(party, typ string, payload any) (*models.Notification, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	n := models.Notification{Party: party, Type: typ, Payload: b}
	if db != nil {
		if err := db.Create(&n).Error; err != nil {
			return nil, err
		}
	}
	Broadcast(party, n)
	return &n, nil
}

// DealPayload тело уведомления о событии сделки.
type DealPayload struct {
	DealID     string            `json:"dealId"`
	Status     models.DealStatus `json:"status"`
	Attributes map[string]string `json:"attributes"`
}

// Emitter уведомляет обе стороны сделки о событиях движка.
type Emitter struct{}

func (Emitter) Emit(ev escrow.Event) {
	if ev.Deal == nil {
		return
	}
	p := DealPayload{DealID: ev.Deal.ID, Status: ev.Deal.Status, Attributes: ev.Attributes}
	for _, party := range []string{ev.Deal.ProjectOwner, ev.Deal.Kol} {
		if _, err := Notify(party, ev.Type, p); err != nil {
			log.Errorf("notifying %s about %s: %s", party, ev.Type, err)
		}
	}
}

var _ escrow.Emitter = Emitter{}
