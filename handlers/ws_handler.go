package handlers

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"myapp/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketHandler upgrades /ws/metrics/ and /ws/status/ and runs one push
// channel per connection.
type WebSocketHandler struct {
	upgrader    websocket.Upgrader
	groups      services.GroupRegistry
	gauge       services.ConnectionGauge
	metricsSpec services.ChannelSpec
	statusSpec  services.ChannelSpec
}

func NewWebSocketHandler(groups services.GroupRegistry, gauge services.ConnectionGauge, metricsSpec, statusSpec services.ChannelSpec, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		groups:      groups,
		gauge:       gauge,
		metricsSpec: metricsSpec,
		statusSpec:  statusSpec,
	}
}

// checkOrigin accepts non-browser clients, same-host pages and the configured
// CORS origins.
func checkOrigin(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
			return true
		}
		for _, allowed := range allowedOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
		return false
	}
}

func (wh *WebSocketHandler) Metrics(c *gin.Context) {
	wh.serve(c, wh.metricsSpec)
}

func (wh *WebSocketHandler) Status(c *gin.Context) {
	wh.serve(c, wh.statusSpec)
}

func (wh *WebSocketHandler) serve(c *gin.Context, spec services.ChannelSpec) {
	conn, err := wh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	cl := newClient(conn)
	channel := services.NewPushChannel(spec, cl, wh.groups, wh.gauge)
	go wh.writePump(cl, channel.ID())

	if err := channel.Open(c.Request.Context()); err != nil {
		log.Printf("Failed to open push channel %s: %v", channel.ID(), err)
		channel.Close()
		cl.close()
		return
	}

	// The loop also ends on a failed send; drop the connection so the read pump returns.
	go func() {
		<-channel.Done()
		conn.Close()
	}()

	wh.readPump(cl, channel.ID())

	channel.Close()
	cl.close()
}

// readPump blocks until the peer goes away. Inbound messages carry no meaning on
// these channels and are discarded.
func (wh *WebSocketHandler) readPump(cl *client, id string) {
	defer log.Printf("Client %s disconnecting", id)

	cl.conn.SetReadLimit(maxMessageSize)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close error for client %s: %v", id, err)
			}
			return
		}
	}
}

func (wh *WebSocketHandler) writePump(cl *client, id string) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case message, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per message so every frame is a single JSON document.
			if err := cl.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Error writing to client %s: %v", id, err)
				return
			}

		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Error sending ping to client %s: %v", id, err)
				return
			}
		}
	}
}
