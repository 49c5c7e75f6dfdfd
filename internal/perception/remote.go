package perception

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

type detectRequest struct {
	Seq    uint64 `msgpack:"seq"`
	Width  int    `msgpack:"width"`
	Height int    `msgpack:"height"`
	Pixels []byte `msgpack:"pixels,omitempty"`
}

type detectResponse struct {
	Seq   uint64    `msgpack:"seq"`
	Faces [][]Point `msgpack:"faces"`
	Error string    `msgpack:"error,omitempty"`
}

// RemoteModel is a Model served by an external landmark detector over a
// websocket. Each detection is one binary msgpack request answered by one
// response carrying the same sequence number. A failed connection is dropped
// and redialed on the next detection.
type RemoteModel struct {
	url    string
	dialer *websocket.Dialer
	log    *zap.SugaredLogger

	mu   sync.Mutex
	conn *websocket.Conn
	seq  uint64
}

// NewRemoteModel creates a client for the detector at url (ws:// or wss://).
// No connection is made until the first detection.
func NewRemoteModel(url string, log *zap.SugaredLogger) *RemoteModel {
	return &RemoteModel{
		url: url,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// EstimateFaces sends frame to the detector and waits for its landmarks.
func (m *RemoteModel) EstimateFaces(ctx context.Context, frame Frame) ([]Landmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conn, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(5 * time.Second)
	}
	conn.SetWriteDeadline(deadline)
	conn.SetReadDeadline(deadline)

	m.seq++
	req := detectRequest{Seq: m.seq, Width: frame.Width, Height: frame.Height, Pixels: frame.Pixels}
	data, err := msgpack.Marshal(&req)
	if err != nil {
		return nil, errors.Wrap(err, "encode detect request")
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		m.drop()
		return nil, errors.Wrap(err, "send detect request")
	}

	for {
		kind, raw, err := conn.ReadMessage()
		if err != nil {
			m.drop()
			return nil, errors.Wrap(err, "read detect response")
		}
		if kind != websocket.BinaryMessage {
			continue
		}

		var resp detectResponse
		if err := msgpack.Unmarshal(raw, &resp); err != nil {
			m.drop()
			return nil, errors.Wrap(err, "decode detect response")
		}
		if resp.Seq != req.Seq {
			// Answer to a request that already timed out on our side.
			m.log.Debugw("skipping stale detect response", "seq", resp.Seq, "want", req.Seq)
			continue
		}
		if resp.Error != "" {
			return nil, errors.Errorf("detector: %s", resp.Error)
		}

		faces := make([]Landmarks, len(resp.Faces))
		for i, f := range resp.Faces {
			faces[i] = Landmarks(f)
		}
		return faces, nil
	}
}

// Close closes the connection if one is open.
func (m *RemoteModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return nil
	}
	conn := m.conn
	m.conn = nil
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return conn.Close()
}

func (m *RemoteModel) connect(ctx context.Context) (*websocket.Conn, error) {
	if m.conn != nil {
		return m.conn, nil
	}
	conn, _, err := m.dialer.DialContext(ctx, m.url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "dial detector %s", m.url)
	}
	m.log.Infow("connected to detector", "url", m.url)
	m.conn = conn
	return conn, nil
}

func (m *RemoteModel) drop() {
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
}
