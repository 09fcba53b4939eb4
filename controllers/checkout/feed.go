package checkoutControllers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/storefront-api/models"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

type feedEvent struct {
	Type string                 `json:"type"`
	Data models.CheckoutSession `json:"data"`
}

type feedClient struct {
	conn *websocket.Conn
	send chan feedEvent
}

// Feed pushes newly recorded checkout sessions to connected admin dashboards.
// Each client has its own writer goroutine; Broadcast never touches a socket.
type Feed struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*feedClient]struct{}
}

func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*feedClient]struct{}),
	}
}

// GET /admin/ws/checkouts
func (f *Feed) Handler(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &feedClient{conn: conn, send: make(chan feedEvent, sendBuffer)}
	f.mu.Lock()
	f.clients[cl] = struct{}{}
	f.mu.Unlock()

	go cl.writeLoop()
	defer f.drop(cl)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast queues a checkout.created event for every client. A client whose
// queue is full is dropped.
func (f *Feed) Broadcast(s models.CheckoutSession) {
	event := feedEvent{Type: "checkout.created", Data: s}

	f.mu.Lock()
	defer f.mu.Unlock()
	for cl := range f.clients {
		select {
		case cl.send <- event:
		default:
			log.Println("⚠️ Dropping slow checkout feed client")
			delete(f.clients, cl)
			close(cl.send)
		}
	}
}

func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// drop unregisters cl; send is closed exactly once, under mu.
func (f *Feed) drop(cl *feedClient) {
	f.mu.Lock()
	if _, ok := f.clients[cl]; ok {
		delete(f.clients, cl)
		close(cl.send)
	}
	f.mu.Unlock()
}

func (cl *feedClient) writeLoop() {
	defer cl.conn.Close()
	for event := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteJSON(event); err != nil {
			log.Printf("⚠️ Checkout feed write failed: %v", err)
			return
		}
	}
	_ = cl.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}
