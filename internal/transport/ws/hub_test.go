package ws

import (
	"encoding/json"
	"testing"
	"time"

	"quizboard/internal/service"
)

// newLiveHub starts the real run loop, for tests that exercise the
// register/unregister lifecycle rather than calling dispatch directly.
func newLiveHub(poolSize int) *Hub {
	turns := service.NewTurnScheduler()
	sessions := service.NewSessionStore(turns)
	questions := service.NewQuestionService(&stubQuestionRepo{size: poolSize}, stubQuestionCache{})
	return NewHub(sessions, turns, service.NewQuestionSelector(), questions)
}

func newLiveConn(h *Hub, id string) *Connection {
	conn := &Connection{
		ID:          id,
		DisplayName: id,
		Send:        make(chan []byte, 16),
	}
	h.Register(conn)
	return conn
}

func recvWait(t *testing.T, conn *Connection) Message {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		if !ok {
			t.Fatal("send channel closed while waiting for a message")
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal message: %v", err)
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a message")
		return Message{}
	}
}

func recvTypedWait(t *testing.T, conn *Connection, want EventType, v interface{}) {
	t.Helper()
	msg := recvWait(t, conn)
	if msg.Type != want {
		t.Fatalf("expected event %s, got %s", want, msg.Type)
	}
	if v != nil && len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, v); err != nil {
			t.Fatalf("unmarshal %s payload: %v", want, err)
		}
	}
}

func waitClosed(t *testing.T, conn *Connection) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-conn.Send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("send channel never closed")
		}
	}
}

// liveRoom creates a room for host and joins the guest through the
// run loop, consuming the setup messages.
func liveRoom(t *testing.T, h *Hub, host, guest *Connection) string {
	t.Helper()
	h.Deliver(host, Message{Type: EvtCreateRoom, Payload: payload(t, CreateRoomPayload{DisplayName: host.DisplayName})})

	var created RoomCreatedPayload
	recvTypedWait(t, host, EvtRoomCreated, &created)

	h.Deliver(guest, Message{Type: EvtJoinRoom, Payload: payload(t, JoinRoomPayload{RoomID: created.RoomID, DisplayName: guest.DisplayName})})
	recvTypedWait(t, host, EvtReceivePlayerJoined, nil)
	recvTypedWait(t, guest, EvtReceivePlayerJoined, nil)
	return created.RoomID
}

func TestDisconnectedGuestLeavesRoom(t *testing.T) {
	h := newLiveHub(3)
	host := newLiveConn(h, "host")
	guest := newLiveConn(h, "guest")
	roomID := liveRoom(t, h, host, guest)

	// A dropped connection behaves exactly like an explicit leave
	h.Unregister(guest)

	var p PlayersPayload
	recvTypedWait(t, host, EvtReceivePlayerLeft, &p)
	if len(p.Players) != 1 || p.Players[0].ConnectionID != "host" {
		t.Fatalf("expected only the host remaining, got %v", p.Players)
	}

	room, err := h.sessions.GetRoom(roomID)
	if err != nil {
		t.Fatalf("room must survive a guest disconnect: %v", err)
	}
	if room.TurnIndex < 0 || room.TurnIndex >= len(room.Players) {
		t.Fatalf("turn %d out of bounds for %d players", room.TurnIndex, len(room.Players))
	}

	waitClosed(t, guest)
}

func TestDisconnectedHostTearsDownRoom(t *testing.T) {
	h := newLiveHub(3)
	host := newLiveConn(h, "host")
	guest := newLiveConn(h, "guest")
	roomID := liveRoom(t, h, host, guest)

	h.Unregister(host)

	recvTypedWait(t, guest, EvtReceiveHostLeft, nil)

	if _, err := h.sessions.GetRoom(roomID); err == nil {
		t.Fatal("expected room deleted after the host dropped")
	}

	waitClosed(t, host)
}

func TestDisconnectedIdleConnection(t *testing.T) {
	h := newLiveHub(3)
	conn := newLiveConn(h, "drifter")

	// Never joined a room; unregister must just close the connection
	h.Unregister(conn)
	waitClosed(t, conn)
}
