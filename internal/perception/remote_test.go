package perception

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/invaders/internal/logging"
)

// detector answers each request through handle. Returning false from handle
// closes the connection.
func detector(t *testing.T, handle func(conn *websocket.Conn, req detectRequest) bool) (string, *atomic.Int32) {
	t.Helper()
	var conns atomic.Int32
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conns.Add(1)
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req detectRequest
			if err := msgpack.Unmarshal(raw, &req); err != nil {
				return
			}
			if !handle(conn, req) {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http"), &conns
}

func reply(t *testing.T, conn *websocket.Conn, resp detectResponse) {
	data, err := msgpack.Marshal(&resp)
	assert.NoError(t, err)
	assert.NoError(t, conn.WriteMessage(websocket.BinaryMessage, data))
}

func TestRemoteModelRoundTrip(t *testing.T) {
	want := face(0.1, 0.02)
	url, _ := detector(t, func(conn *websocket.Conn, req detectRequest) bool {
		assert.Equal(t, 640, req.Width)
		assert.Equal(t, 480, req.Height)
		reply(t, conn, detectResponse{Seq: req.Seq, Faces: [][]Point{want}})
		return true
	})

	m := NewRemoteModel(url, logging.Nop())
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	faces, err := m.EstimateFaces(ctx, Frame{Width: 640, Height: 480})
	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.Equal(t, want, faces[0])
}

func TestRemoteModelSkipsStaleResponses(t *testing.T) {
	url, _ := detector(t, func(conn *websocket.Conn, req detectRequest) bool {
		reply(t, conn, detectResponse{Seq: req.Seq + 100, Faces: [][]Point{face(0.3, 0)}})
		reply(t, conn, detectResponse{Seq: req.Seq})
		return true
	})

	m := NewRemoteModel(url, logging.Nop())
	defer m.Close()

	faces, err := m.EstimateFaces(context.Background(), Frame{})
	require.NoError(t, err)
	assert.Empty(t, faces)
}

func TestRemoteModelDetectorError(t *testing.T) {
	url, _ := detector(t, func(conn *websocket.Conn, req detectRequest) bool {
		reply(t, conn, detectResponse{Seq: req.Seq, Error: "model not loaded"})
		return true
	})

	m := NewRemoteModel(url, logging.Nop())
	defer m.Close()

	_, err := m.EstimateFaces(context.Background(), Frame{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestRemoteModelRedialsAfterFailure(t *testing.T) {
	var requests atomic.Int32
	url, conns := detector(t, func(conn *websocket.Conn, req detectRequest) bool {
		if requests.Add(1) == 1 {
			return false
		}
		reply(t, conn, detectResponse{Seq: req.Seq, Faces: [][]Point{face(0, 0)}})
		return true
	})

	m := NewRemoteModel(url, logging.Nop())
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := m.EstimateFaces(ctx, Frame{})
	require.Error(t, err)

	faces, err := m.EstimateFaces(ctx, Frame{})
	require.NoError(t, err)
	assert.Len(t, faces, 1)
	assert.Equal(t, int32(2), conns.Load())
}

func TestRemoteModelDialFailure(t *testing.T) {
	m := NewRemoteModel("ws://127.0.0.1:1/detect", logging.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := m.EstimateFaces(ctx, Frame{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial detector")
	assert.NoError(t, m.Close())
}
