package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"myapp/models"
	"myapp/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyProvider struct {
	mu    sync.Mutex
	calls int
}

// Sample fails on the first call only.
func (p *flakyProvider) Sample(ctx context.Context) (*models.SystemMetrics, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls == 1 {
		return nil, errors.New("warming up")
	}
	return &models.SystemMetrics{CPUPercent: 1, MemoryPercent: 2, DiskPercent: 3, Hostname: "ws-host", Timestamp: services.Now()}, nil
}

type wsFixture struct {
	server *httptest.Server
	hub    *services.HubService
	gauge  prometheus.Gauge
}

func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := services.NewHubService()
	t.Cleanup(hub.Stop)
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_ws_active_connections"})

	statusSpec := services.ChannelSpec{
		Group:      models.GroupStatus,
		Interval:   20 * time.Millisecond,
		UpdateType: models.MessageStatusUpdate,
		Subject:    "status",
		Sample: func(ctx context.Context) (interface{}, error) {
			return &models.SystemStatus{Application: "healthy", Database: "Connected", Hostname: "ws-host", Timestamp: services.Now()}, nil
		},
	}

	h := NewWebSocketHandler(hub, gauge,
		services.MetricsChannelSpec(&flakyProvider{}, 20*time.Millisecond),
		statusSpec,
		[]string{"http://allowed.example"},
	)

	r := gin.New()
	r.GET("/ws/metrics/", h.Metrics)
	r.GET("/ws/status/", h.Status)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return &wsFixture{server: server, hub: hub, gauge: gauge}
}

func (f *wsFixture) dial(t *testing.T, path string, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) models.PushMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg models.PushMessage
	require.NoError(t, json.Unmarshal(raw, &msg), string(raw))
	return msg
}

func TestWebSocket_MetricsStream(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t, "/ws/metrics/", nil)
	defer conn.Close()

	first := readMessage(t, conn)
	assert.Equal(t, models.MessageError, first.Type)
	assert.Equal(t, "Error getting metrics: warming up", first.Message)

	second := readMessage(t, conn)
	assert.Equal(t, models.MessageMetricsUpdate, second.Type)
	data := second.Data.(map[string]interface{})
	assert.Equal(t, "ws-host", data["hostname"])

	assert.Equal(t, 1.0, testutil.ToFloat64(f.gauge))
	members, err := f.hub.Members(context.Background(), models.GroupMetrics)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestWebSocket_StatusStream(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t, "/ws/status/", nil)
	defer conn.Close()

	msg := readMessage(t, conn)
	assert.Equal(t, models.MessageStatusUpdate, msg.Type)
	assert.Equal(t, "Connected", msg.Data.(map[string]interface{})["database"])
}

func TestWebSocket_DisconnectDeregisters(t *testing.T) {
	f := newWSFixture(t)
	ctx := context.Background()

	a := f.dial(t, "/ws/status/", nil)
	b := f.dial(t, "/ws/status/", nil)
	defer b.Close()
	readMessage(t, a)
	readMessage(t, b)

	require.Eventually(t, func() bool {
		members, _ := f.hub.Members(ctx, models.GroupStatus)
		return len(members) == 2
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, a.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	a.Close()

	require.Eventually(t, func() bool {
		members, _ := f.hub.Members(ctx, models.GroupStatus)
		return len(members) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return testutil.ToFloat64(f.gauge) == 1 }, 2*time.Second, 10*time.Millisecond)

	// The remaining client keeps receiving.
	assert.Equal(t, models.MessageStatusUpdate, readMessage(t, b).Type)
}

func TestWebSocket_RejectsForeignOrigin(t *testing.T) {
	f := newWSFixture(t)
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws/status/"

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn := f.dial(t, "/ws/status/", http.Header{"Origin": {"http://allowed.example"}})
	conn.Close()
}

func TestClient_SendAfterClose(t *testing.T) {
	cl := &client{send: make(chan []byte, 1)}

	require.NoError(t, cl.Send([]byte("a")))
	assert.ErrorIs(t, cl.Send([]byte("b")), errSendBufferFull)

	cl.close()
	cl.close()
	assert.ErrorIs(t, cl.Send([]byte("c")), services.ErrChannelClosed)
}
