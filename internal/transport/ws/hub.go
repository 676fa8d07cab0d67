package ws

import (
	"encoding/json"
	"log"

	"quizboard/internal/service"
)

// EventType tags a WebSocket message
type EventType string

// Client events
const (
	EvtCreateRoom     EventType = "create_room"
	EvtJoinRoom       EventType = "join_room"
	EvtPickQuestion   EventType = "pick_question"
	EvtAdvanceTurn    EventType = "advance_turn"
	EvtResetQuestions EventType = "reset_questions"
	EvtPickedCorrect  EventType = "picked_correct"
	EvtLeaveRoom      EventType = "leave_room"
	EvtHostLeft       EventType = "host_left"
)

// Server events
const (
	EvtRoomCreated           EventType = "room_created"
	EvtReceivePlayerJoined   EventType = "receive_player_joined"
	EvtReceivePlayerLeft     EventType = "receive_player_left"
	EvtReceivePickQuestion   EventType = "receive_pick_question"
	EvtReceiveAdvanceTurn    EventType = "receive_advance_turn"
	EvtReceiveResetQuestions EventType = "receive_reset_questions"
	EvtReceivePickedCorrect  EventType = "receive_picked_correct"
	EvtReceiveHostLeft       EventType = "receive_host_left"
	EvtError                 EventType = "error"
)

// Message is the WebSocket envelope format in both directions
type Message struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Connection represents one WebSocket client. ID is the transport
// identity: it changes across reconnects and is what turn ownership
// compares against.
type Connection struct {
	ID          string
	DisplayName string
	RoomID      string
	Send        chan []byte
}

type inboundEvent struct {
	conn *Connection
	msg  Message
}

// Hub mediates between transport events and session state. Every
// register, disconnect and inbound event is handled to completion on
// the single run goroutine, so room mutations never interleave.
type Hub struct {
	sessions  *service.SessionStore
	turns     *service.TurnScheduler
	selector  *service.QuestionSelector
	questions *service.QuestionService

	conns map[string]*Connection            // connection id -> connection
	rooms map[string]map[string]*Connection // room id -> connection id -> connection

	register   chan *Connection
	unregister chan *Connection
	inbound    chan inboundEvent
}

// NewHub creates a hub and starts its event loop
func NewHub(sessions *service.SessionStore, turns *service.TurnScheduler, selector *service.QuestionSelector, questions *service.QuestionService) *Hub {
	h := &Hub{
		sessions:   sessions,
		turns:      turns,
		selector:   selector,
		questions:  questions,
		conns:      make(map[string]*Connection),
		rooms:      make(map[string]map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		inbound:    make(chan inboundEvent, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.conns[conn.ID] = conn
			log.Printf("connection %s registered", conn.ID)

		case conn := <-h.unregister:
			if _, ok := h.conns[conn.ID]; !ok {
				continue
			}
			// A dropped connection is an implicit leave; a dropped
			// host tears the room down.
			if conn.RoomID != "" {
				if room, err := h.sessions.GetRoom(conn.RoomID); err == nil && room.HostID == conn.ID {
					h.teardownRoom(conn.RoomID)
				} else {
					h.handleLeaveRoom(conn, conn.RoomID)
				}
			}
			delete(h.conns, conn.ID)
			close(conn.Send)
			log.Printf("connection %s unregistered", conn.ID)

		case evt := <-h.inbound:
			h.dispatch(evt.conn, evt.msg)
		}
	}
}

// Register adds a connection to the hub
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection, leaving its room first
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Deliver queues an inbound client event for dispatch
func (h *Hub) Deliver(conn *Connection, msg Message) {
	h.inbound <- inboundEvent{conn: conn, msg: msg}
}

// joinRoomConns tracks the connection under its room for fan-out.
// Runs on the hub goroutine only.
func (h *Hub) joinRoomConns(conn *Connection, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[string]*Connection)
	}
	h.rooms[roomID][conn.ID] = conn
	conn.RoomID = roomID
}

func (h *Hub) leaveRoomConns(conn *Connection, roomID string) {
	if members, ok := h.rooms[roomID]; ok {
		delete(members, conn.ID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	conn.RoomID = ""
}

// broadcastRoom fans an event out to every connection in the room,
// the originator included. Never a partial send: a member whose
// buffer is full has its message dropped, not the whole broadcast.
func (h *Hub) broadcastRoom(roomID string, msgType EventType, payload interface{}) {
	data := encode(msgType, payload)
	for _, conn := range h.rooms[roomID] {
		select {
		case conn.Send <- data:
		default:
			log.Printf("dropping %s for connection %s: send buffer full", msgType, conn.ID)
		}
	}
}

// sendTo delivers an event to a single connection
func (h *Hub) sendTo(conn *Connection, msgType EventType, payload interface{}) {
	select {
	case conn.Send <- encode(msgType, payload):
	default:
		log.Printf("dropping %s for connection %s: send buffer full", msgType, conn.ID)
	}
}

func (h *Hub) sendError(conn *Connection, message string) {
	h.sendTo(conn, EvtError, ErrorPayload{Message: message})
}

// teardownRoom broadcasts the terminal event, deletes the room and
// detaches every member connection.
func (h *Hub) teardownRoom(roomID string) {
	h.broadcastRoom(roomID, EvtReceiveHostLeft, nil)
	h.sessions.DeleteRoom(roomID)
	for _, member := range h.rooms[roomID] {
		member.RoomID = ""
	}
	delete(h.rooms, roomID)
}

func encode(msgType EventType, payload interface{}) []byte {
	msg := Message{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Printf("failed to encode %s payload: %v", msgType, err)
		} else {
			msg.Payload = data
		}
	}
	data, _ := json.Marshal(msg)
	return data
}
