package push

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketSource reads text frames from a websocket endpoint.
type WebSocketSource struct {
	url    string
	token  func() string
	dialer websocket.Dialer
}

// NewWebSocketSource returns a source dialing url. token, when set, supplies a
// bearer token for the handshake.
func NewWebSocketSource(url string, token func() string) *WebSocketSource {
	return &WebSocketSource{
		url:    url,
		token:  token,
		dialer: websocket.Dialer{HandshakeTimeout: 5 * time.Second},
	}
}

func (s *WebSocketSource) Name() string { return "websocket" }

func (s *WebSocketSource) Run(ctx context.Context, handle Handler) error {
	header := http.Header{}
	if s.token != nil {
		if token := s.token(); token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	conn, resp, err := s.dialer.DialContext(ctx, s.url, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return err
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-stop:
		}
	}()

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			_ = conn.Close()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		if messageType == websocket.TextMessage || messageType == websocket.BinaryMessage {
			handle(payload)
		}
	}
}
