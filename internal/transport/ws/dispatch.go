package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"quizboard/internal/model"
	"quizboard/internal/service"
)

// Client payloads, one per event type, decoded before dispatch
type CreateRoomPayload struct {
	DisplayName string `json:"displayName"`
}

type JoinRoomPayload struct {
	RoomID      string `json:"roomId"`
	DisplayName string `json:"displayName"`
}

type PickQuestionPayload struct {
	Room          string `json:"room"`
	QuestionIndex *int   `json:"questionIndex"`
}

type RoomPayload struct {
	RoomID string `json:"roomId"`
}

// Server payloads
type RoomCreatedPayload struct {
	RoomID    string         `json:"roomId"`
	Players   []model.Player `json:"players"`
	TurnIndex int            `json:"turnIndex"`
}

type PlayersPayload struct {
	Players []model.Player `json:"players"`
}

type QuestionIndexPayload struct {
	QuestionIndex *int `json:"questionIndex"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

const poolLookupTimeout = 3 * time.Second

// dispatch maps one inbound event to one session operation and the
// broadcast that follows it. Runs on the hub goroutine.
func (h *Hub) dispatch(conn *Connection, msg Message) {
	switch msg.Type {
	case EvtCreateRoom:
		var p CreateRoomPayload
		if !h.decode(conn, msg, &p) {
			return
		}
		h.handleCreateRoom(conn, p)

	case EvtJoinRoom:
		var p JoinRoomPayload
		if !h.decode(conn, msg, &p) {
			return
		}
		h.handleJoinRoom(conn, p)

	case EvtPickQuestion:
		var p PickQuestionPayload
		if !h.decode(conn, msg, &p) {
			return
		}
		h.handlePickQuestion(conn, p)

	case EvtAdvanceTurn:
		var p RoomPayload
		if !h.decode(conn, msg, &p) {
			return
		}
		h.handleAdvanceTurn(conn, p.RoomID)

	case EvtResetQuestions:
		h.handleResetQuestions(conn)

	case EvtPickedCorrect:
		var p RoomPayload
		if !h.decode(conn, msg, &p) {
			return
		}
		h.handlePickedCorrect(conn, p.RoomID)

	case EvtLeaveRoom:
		var p RoomPayload
		if !h.decode(conn, msg, &p) {
			return
		}
		h.handleLeaveRoom(conn, p.RoomID)

	case EvtHostLeft:
		var p RoomPayload
		if !h.decode(conn, msg, &p) {
			return
		}
		h.handleHostLeft(conn, p.RoomID)

	default:
		h.sendError(conn, "unknown event type")
	}
}

func (h *Hub) decode(conn *Connection, msg Message, v interface{}) bool {
	if len(msg.Payload) == 0 {
		h.sendError(conn, "missing payload")
		return false
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		h.sendError(conn, "malformed payload")
		return false
	}
	return true
}

func (h *Hub) handleCreateRoom(conn *Connection, p CreateRoomPayload) {
	if conn.RoomID != "" {
		h.sendError(conn, "already in a room")
		return
	}
	name := p.DisplayName
	if name == "" {
		name = conn.DisplayName
	}

	room := h.sessions.CreateRoom(conn.ID, name)
	h.joinRoomConns(conn, room.ID)

	h.sendTo(conn, EvtRoomCreated, RoomCreatedPayload{
		RoomID:    room.ID,
		Players:   room.Players,
		TurnIndex: room.TurnIndex,
	})
}

func (h *Hub) handleJoinRoom(conn *Connection, p JoinRoomPayload) {
	if conn.RoomID != "" {
		h.sendError(conn, "already in a room")
		return
	}
	name := p.DisplayName
	if name == "" {
		name = conn.DisplayName
	}

	room, err := h.sessions.JoinRoom(p.RoomID, conn.ID, name)
	if err != nil {
		h.sendError(conn, "room not found")
		return
	}
	h.joinRoomConns(conn, room.ID)

	h.broadcastRoom(room.ID, EvtReceivePlayerJoined, PlayersPayload{Players: room.Players})
}

func (h *Hub) handlePickQuestion(conn *Connection, p PickQuestionPayload) {
	roomID := p.Room
	if roomID == "" {
		roomID = conn.RoomID
	}
	room, err := h.sessions.GetRoom(roomID)
	if err != nil {
		h.sendError(conn, "room not found")
		return
	}
	room.Status = model.RoomStatusInGame

	ctx, cancel := context.WithTimeout(context.Background(), poolLookupTimeout)
	defer cancel()
	poolSize, err := h.questions.PoolSize(ctx)
	if err != nil {
		h.sendError(conn, "failed to load question pool")
		return
	}

	// The client may have selected the index itself; the choice is
	// trusted but must name a real question, or the used set would
	// grow past the pool and reset early. Otherwise the selector
	// draws server-side.
	if p.QuestionIndex != nil {
		if *p.QuestionIndex < 0 || *p.QuestionIndex >= poolSize {
			h.sendError(conn, "question index out of range")
			return
		}
		h.selector.MarkUsed(room, *p.QuestionIndex)
		h.broadcastRoom(roomID, EvtReceivePickQuestion, QuestionIndexPayload{QuestionIndex: p.QuestionIndex})
		return
	}

	pick, didReset := h.selector.PickNext(room, poolSize)
	if didReset {
		h.broadcastRoom(roomID, EvtReceiveResetQuestions, nil)
	}
	h.broadcastRoom(roomID, EvtReceivePickQuestion, QuestionIndexPayload{QuestionIndex: pick})
}

func (h *Hub) handleAdvanceTurn(conn *Connection, roomID string) {
	room, err := h.sessions.GetRoom(roomID)
	if err != nil {
		h.sendError(conn, "room not found")
		return
	}
	room.Status = model.RoomStatusInGame
	h.turns.Advance(room)

	h.broadcastRoom(roomID, EvtReceiveAdvanceTurn, nil)
}

func (h *Hub) handleResetQuestions(conn *Connection) {
	room, err := h.sessions.GetRoom(conn.RoomID)
	if err != nil {
		h.sendError(conn, "room not found")
		return
	}
	h.selector.Reset(room)

	h.broadcastRoom(room.ID, EvtReceiveResetQuestions, nil)
}

func (h *Hub) handlePickedCorrect(conn *Connection, roomID string) {
	room, err := h.sessions.GetRoom(roomID)
	if err != nil {
		h.sendError(conn, "room not found")
		return
	}
	// Correctness is claimed by the reporting client and trusted;
	// only the sender's own position moves.
	if idx := room.PlayerIndex(conn.ID); idx >= 0 {
		room.Players[idx].Position++
	}

	h.broadcastRoom(roomID, EvtReceivePickedCorrect, PlayersPayload{Players: room.Players})
}

func (h *Hub) handleLeaveRoom(conn *Connection, roomID string) {
	room, err := h.sessions.LeaveRoom(roomID, conn.ID)
	if err != nil {
		if !errors.Is(err, service.ErrRoomNotFound) {
			log.Printf("leave room %s: %v", roomID, err)
		}
		h.leaveRoomConns(conn, roomID)
		return
	}
	h.leaveRoomConns(conn, roomID)

	// room is nil when the last player left and the room was deleted
	if room != nil {
		h.broadcastRoom(room.ID, EvtReceivePlayerLeft, PlayersPayload{Players: room.Players})
	}
}

func (h *Hub) handleHostLeft(conn *Connection, roomID string) {
	room, err := h.sessions.GetRoom(roomID)
	if err != nil {
		// Already torn down, e.g. the host's leave_room emptied it
		return
	}
	if room.HostID != conn.ID {
		h.sendError(conn, "only the host can close the room")
		return
	}
	h.teardownRoom(roomID)
}
