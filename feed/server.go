package feed

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// ReplayServer streams a recorded game to every websocket client that
// connects, one frame per Interval, then closes normally. It stands in for
// a live venue when exercising `courtside live`.
type ReplayServer struct {
	Messages []Message
	Interval time.Duration
	Log      *slog.Logger
}

func (s *ReplayServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("replay server: upgrade", slog.Any("err", err))
		return
	}
	defer conn.Close()

	log.Info("replay client connected", slog.String("remote", r.RemoteAddr), slog.Int("frames", len(s.Messages)))

	var tick <-chan time.Time
	if s.Interval > 0 {
		t := time.NewTicker(s.Interval)
		defer t.Stop()
		tick = t.C
	}

	for i, m := range s.Messages {
		if tick != nil {
			select {
			case <-tick:
			case <-r.Context().Done():
				return
			}
		}
		if err := conn.WriteJSON(m); err != nil {
			log.Warn("replay server: write", slog.Int("frame", i), slog.Any("err", err))
			return
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "end of replay"))
	// wait for the client's close reply so it sees a clean shutdown
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
