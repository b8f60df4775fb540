package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rubiojr/apodview/pkg/page"
	"github.com/rubiojr/apodview/pkg/realtime"
)

const (
	writeTimeout   = 10 * time.Second
	maxMessageSize = 4096
)

// ClientMessage is a user input sent by the page script.
type ClientMessage struct {
	Type     string `json:"type"`
	Index    int    `json:"index,omitempty"`
	Key      string `json:"key,omitempty"`
	Closable bool   `json:"closable,omitempty"`
}

// ServerMessage is pushed to the page script.
type ServerMessage struct {
	Type    string            `json:"type"`
	Session string            `json:"session,omitempty"`
	Regions map[string]string `json:"regions,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Event converts m into a page event.
func (m ClientMessage) Event() (page.Event, error) {
	switch m.Type {
	case "fetch":
		return page.FetchRequested{}, nil
	case "card":
		return page.CardActivated{Index: m.Index}, nil
	case "card_key":
		return page.CardKeyPressed{Index: m.Index, Key: m.Key}, nil
	case "overlay_click":
		return page.OverlayClicked{Closable: m.Closable}, nil
	case "close":
		return page.CloseRequested{}, nil
	case "key":
		return page.KeyPressed{Key: m.Key}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", m.Type)
	}
}

// HandleWS upgrades the connection and runs one page session on it.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan ServerMessage, 16)
	sess := s.newSession(page.WithListener(func(v page.View, changed []page.Region) {
		regions, err := s.views.RenderRegions(ctx, v, changed)
		if err != nil {
			s.log.Errorf("rendering regions: %v", err)
			return
		}
		select {
		case out <- ServerMessage{Type: "render", Regions: regions}:
		case <-ctx.Done():
		}
	}))

	if err := s.write(conn, ServerMessage{Type: "init", Session: sess.ID()}); err != nil {
		s.log.Warnf("sending init: %v", err)
		return
	}

	s.sessions.Add(1)
	defer s.sessions.Add(-1)
	s.log.Debugf("session %s connected from %s", sess.ID(), r.RemoteAddr)

	listenerID, notices := s.hub.Register()
	defer s.hub.Unregister(listenerID)

	go func() {
		if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Errorf("session %s: %v", sess.ID(), err)
		}
	}()
	go s.forwardNotices(ctx, cancel, sess, notices, out)
	go s.writeLoop(ctx, cancel, conn, out)

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warnf("session %s read: %v", sess.ID(), err)
			}
			break
		}
		ev, err := msg.Event()
		if err != nil {
			s.log.Debugf("session %s: %v", sess.ID(), err)
			continue
		}
		if !sess.Post(ev) {
			break
		}
	}
	s.log.Debugf("session %s closed", sess.ID())
}

func (s *Server) forwardNotices(ctx context.Context, cancel context.CancelFunc, sess *page.Session, notices <-chan realtime.Notice, out chan<- ServerMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-notices:
			if !ok {
				return
			}
			switch n.Type {
			case realtime.NoticeSource:
				if n.Source != nil {
					sess.Post(page.SourceChanged{Source: n.Source})
				}
			case realtime.NoticeShutdown:
				select {
				case out <- ServerMessage{Type: "notice", Message: "server shutting down"}:
				case <-ctx.Done():
				}
				cancel()
				return
			}
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out <-chan ServerMessage) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			// Drain what is already queued so a shutdown notice gets out.
			for {
				select {
				case msg := <-out:
					if s.write(conn, msg) != nil {
						return
					}
				default:
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
						time.Now().Add(time.Second))
					_ = conn.Close()
					return
				}
			}
		case msg := <-out:
			if err := s.write(conn, msg); err != nil {
				s.log.Debugf("write: %v", err)
				return
			}
		}
	}
}

func (s *Server) write(conn *websocket.Conn, msg ServerMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}
