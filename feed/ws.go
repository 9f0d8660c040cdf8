package feed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultReadTimeout = 30 * time.Second

// WSFeed is a live session stream over a websocket.
type WSFeed struct {
	conn        *websocket.Conn
	log         *slog.Logger
	readTimeout time.Duration

	mu     sync.Mutex
	closed bool
}

// DialWS connects to url. header may carry auth.
func DialWS(ctx context.Context, url string, header http.Header, log *slog.Logger) (*WSFeed, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	log.Info("ws feed connected", slog.String("url", url))
	return &WSFeed{conn: conn, log: log, readTimeout: defaultReadTimeout}, nil
}

// SetReadTimeout bounds the wait for each frame. Zero disables it.
func (f *WSFeed) SetReadTimeout(d time.Duration) { f.readTimeout = d }

// Read blocks for the next message.
func (f *WSFeed) Read() (Message, error) {
	if f.isClosed() {
		return Message{}, ErrClosed
	}
	if f.readTimeout > 0 {
		_ = f.conn.SetReadDeadline(time.Now().Add(f.readTimeout))
	}
	_, data, err := f.conn.ReadMessage()
	if err != nil {
		if f.isClosed() {
			return Message{}, ErrClosed
		}
		return Message{}, err
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, &DecodeError{Raw: data, Err: err}
	}
	return m, nil
}

// DecodeError is a frame that was not a valid Message. The stream is still
// usable after one.
type DecodeError struct {
	Raw []byte
	Err error
}

func (e *DecodeError) Error() string { return "decode frame: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// Run reads and dispatches messages until ctx is done, the server closes
// the stream, or a read fails. Bad frames are logged and skipped. A normal
// close or cancellation returns nil.
func (f *WSFeed) Run(ctx context.Context, h Handler) error {
	stop := context.AfterFunc(ctx, func() { _ = f.Close() })
	defer stop()

	for {
		m, err := f.Read()
		var de *DecodeError
		switch {
		case err == nil:
		case errors.As(err, &de):
			f.log.Warn("ws feed: bad frame", slog.Any("err", err))
			continue
		case errors.Is(err, ErrClosed), websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
			return nil
		default:
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := Dispatch(ctx, m, h); err != nil {
			f.log.Warn("ws feed: dropped message", slog.String("type", m.Type), slog.Any("err", err))
		}
	}
}

func (f *WSFeed) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *WSFeed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()

	_ = f.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return f.conn.Close()
}
