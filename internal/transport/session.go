package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/andrewq/collabcode/internal/protocol"
	"github.com/andrewq/collabcode/internal/room"
	"github.com/andrewq/collabcode/pkg/logger"
)

// handleWebSocket upgrades the connection and runs its event loop.
// Unlike kolabpad's connection handler (which infers the document from
// the URL path), this protocol's first client message names the room
// via a `joined` event (§6), matching original_source/server.py's
// socket.on('joined', ...) handshake.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	sess := &session{conn: conn, server: s}
	if err := sess.handle(c.Request.Context()); err != nil {
		logger.Info("session ended", "error", err)
	}
}

// session is one client's connection lifetime: it owns no document
// state of its own (that lives in the Room it joins), only the
// plumbing to read client envelopes and write replies/broadcasts.
type session struct {
	conn      *websocket.Conn
	server    *Server
	sendMu    sync.Mutex
	sessionID string
	roomID    string
	room      *room.Room
	hub       *hub
}

// handle runs until the connection closes or a protocol error occurs.
// The first message MUST be a `joined` envelope (§6); anything else is
// a malformed handshake and the connection is dropped per §7's
// "unknown room: ... log and drop" policy.
func (s *session) handle(ctx context.Context) error {
	var joined protocol.Envelope
	if err := wsjson.Read(ctx, s.conn, &joined); err != nil {
		return fmt.Errorf("read joined: %w", err)
	}
	if joined.Event != protocol.EventJoined {
		logger.Error("first message was not joined", "event", joined.Event)
		return fmt.Errorf("expected %s, got %s", protocol.EventJoined, joined.Event)
	}

	var payload protocol.JoinedPayload
	if err := unmarshalPayload(joined.Payload, &payload); err != nil {
		return fmt.Errorf("joined payload: %w", err)
	}

	r, ok := s.server.registry.Get(payload.RoomID)
	if !ok {
		logger.Error("joined unknown room", "room_id", payload.RoomID)
		return fmt.Errorf("unknown room %q", payload.RoomID)
	}

	sessionID, err := room.RandomID(12)
	if err != nil {
		return fmt.Errorf("generate session id: %w", err)
	}

	s.sessionID = sessionID
	s.roomID = payload.RoomID
	s.room = r
	s.hub = s.server.hubs.get(payload.RoomID)

	r.Join(sessionID)
	updates := s.hub.register(sessionID)

	logger.Info("session joined", "room_id", s.roomID, "session_id", sessionID)

	if err := s.sendAfterJoin(ctx); err != nil {
		s.hub.unregister(sessionID)
		return fmt.Errorf("send after-join: %w", err)
	}

	done := make(chan struct{})
	go s.forwardBroadcasts(ctx, updates, done)
	// unregister must run before we wait on done: closing the hub
	// channel is what lets forwardBroadcasts's select observe !ok and
	// return. Deferred in this order so it fires first (LIFO).
	defer func() { <-done }()
	defer s.hub.unregister(sessionID)

	for {
		var env protocol.Envelope
		readCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
		err := wsjson.Read(readCtx, s.conn, &env)
		cancel()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		if err := s.dispatch(ctx, &env); err != nil {
			logger.Error("dispatch failed", "session_id", s.sessionID, "event", env.Event, "error", err)
			return err
		}
	}
}

func (s *session) sendAfterJoin(ctx context.Context) error {
	history := s.room.DrawingHistorySince(-1)
	historyJSON, err := marshalAny(history)
	if err != nil {
		return err
	}

	payload := protocol.AfterJoinPayload{
		SessionID:      s.sessionID,
		DrawingHistory: historyJSON,
		Roster:         s.room.Roster(),
	}
	env, err := protocol.NewEnvelope(protocol.EventAfterJoin, payload)
	if err != nil {
		return err
	}
	return s.send(ctx, env)
}

// dispatch handles one post-handshake client event (§6):
// submit-name, send-operation, send-drawing. Anything else is a
// malformed message and is rejected per §7 (reject, log, no reply).
func (s *session) dispatch(ctx context.Context, env *protocol.Envelope) error {
	switch env.Event {
	case protocol.EventSubmitName:
		return s.handleSubmitName(ctx, env)
	case protocol.EventSendOperation:
		return s.handleSendOperation(ctx, env)
	case protocol.EventSendDrawing:
		return s.handleSendDrawing(ctx, env)
	default:
		logger.Error("unknown event", "event", env.Event)
		return nil
	}
}

func (s *session) handleSubmitName(ctx context.Context, env *protocol.Envelope) error {
	var payload protocol.SubmitNamePayload
	if err := unmarshalPayload(env.Payload, &payload); err != nil {
		return fmt.Errorf("submit-name payload: %w", err)
	}

	name := payload.Name
	if name == "" {
		suffix, err := room.RandomID(5)
		if err != nil {
			return fmt.Errorf("generate anon suffix: %w", err)
		}
		name = "Anon " + suffix
	}

	color := s.room.SubmitName(s.sessionID, name)

	broadcast, err := protocol.NewEnvelope(protocol.EventNewUserJoined, protocol.NewUserJoinedPayload{
		SessionID: s.sessionID,
		Name:      name,
		Color:     color,
	})
	if err != nil {
		return err
	}
	s.hub.broadcast(broadcast)
	return nil
}

func (s *session) handleSendOperation(ctx context.Context, env *protocol.Envelope) error {
	var payload protocol.SendOperationPayload
	if err := unmarshalPayload(env.Payload, &payload); err != nil {
		logger.Error("malformed operation batch", "session_id", s.sessionID, "error", err)
		return nil // §7: reject the batch, log, return no reply
	}

	reply, err := s.room.SubmitOperations(s.sessionID, payload)
	if err != nil {
		logger.Error("submit operations failed", "session_id", s.sessionID, "error", err)
		return nil
	}

	out, err := protocol.NewEnvelope(protocol.EventCallBack, protocol.CallBackPayload(reply))
	if err != nil {
		return err
	}
	return s.send(ctx, out)
}

func (s *session) handleSendDrawing(ctx context.Context, env *protocol.Envelope) error {
	var segments []protocol.DrawSegment
	if err := unmarshalPayload(env.Payload, &segments); err != nil {
		logger.Error("malformed drawing batch", "session_id", s.sessionID, "error", err)
		return nil
	}

	reply := s.room.SubmitDrawing(s.sessionID, segments)

	out, err := protocol.NewEnvelope(protocol.EventDrawCallBack, reply)
	if err != nil {
		return err
	}
	return s.send(ctx, out)
}

// forwardBroadcasts relays hub broadcasts (currently only
// new-user-joined) to this connection until the hub channel closes.
func (s *session) forwardBroadcasts(ctx context.Context, updates <-chan *protocol.Envelope, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-updates:
			if !ok {
				return
			}
			if err := s.send(ctx, env); err != nil {
				logger.Error("broadcast forward failed", "session_id", s.sessionID, "error", err)
				return
			}
		}
	}
}

func (s *session) send(ctx context.Context, env *protocol.Envelope) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return wsjson.Write(writeCtx, s.conn, env)
}
