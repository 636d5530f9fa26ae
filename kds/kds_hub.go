package kds

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lasantapapa/pos-app/models"
	"github.com/lasantapapa/pos-app/utils"
)

// Event types pushed to connected displays. Clients do not interpret the
// payload beyond the event name; on any event they re-fetch the full view,
// which makes every reload idempotent.
const (
	EventOrderUpdate   = "order_update"
	EventCatalogUpdate = "catalog_update"
	EventKitchenNotif  = "kitchen_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected display (cocina, caja, admin). One connection
// per view mount; the connection is unregistered when its read loop ends.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient releases a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// ClientCount reports how many displays are connected.
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

// BroadcastOrderUpdate tells displays an order changed; they re-fetch.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastCatalogUpdate tells displays the product catalog changed.
func BroadcastCatalogUpdate() {
	broadcast(Message{
		Event: EventCatalogUpdate,
		Data:  nil,
	})
}

// BroadcastKitchenNotification sends a plain text notice to all displays.
func BroadcastKitchenNotification(message string) {
	broadcast(Message{
		Event: EventKitchenNotif,
		Data:  message,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to %s client: %v", msg.Event, role, err)
			continue
		}
	}
}
