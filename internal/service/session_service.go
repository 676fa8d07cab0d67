package service

import (
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizboard/internal/model"
)

var ErrRoomNotFound = errors.New("room not found")

// SessionStore is the authoritative registry of live rooms. Rooms
// exist only in memory; a process restart ends every game. All
// mutation goes through the store so turn and question state never
// change behind its back.
type SessionStore struct {
	mu    sync.Mutex
	rooms map[string]*model.Room
	turns *TurnScheduler
}

// NewSessionStore creates an empty session store
func NewSessionStore(turns *TurnScheduler) *SessionStore {
	return &SessionStore{
		rooms: make(map[string]*model.Room),
		turns: turns,
	}
}

// CreateRoom allocates a new room with the creator as host and sole
// player. It always succeeds.
func (s *SessionStore) CreateRoom(hostConnectionID, displayName string) *model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := &model.Room{
		ID:     s.generateRoomID(),
		HostID: hostConnectionID,
		Status: model.RoomStatusLobby,
		Players: []model.Player{
			{ConnectionID: hostConnectionID, DisplayName: displayName},
		},
		TurnIndex:     0,
		UsedQuestions: make(map[int]bool),
		CreatedAt:     time.Now(),
	}
	s.rooms[room.ID] = room
	return room
}

// JoinRoom appends a player to an existing room
func (s *SessionStore) JoinRoom(roomID, connectionID, displayName string) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	room.Players = append(room.Players, model.Player{
		ConnectionID: connectionID,
		DisplayName:  displayName,
	})
	return room, nil
}

// LeaveRoom removes the player with the given connection id. The turn
// pointer is renormalized so it stays in bounds of the shrunken list.
// When the last player leaves the room is deleted and nil is returned.
func (s *SessionStore) LeaveRoom(roomID, connectionID string) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}

	idx := room.PlayerIndex(connectionID)
	if idx >= 0 {
		room.Players = append(room.Players[:idx], room.Players[idx+1:]...)
	}
	if len(room.Players) == 0 {
		delete(s.rooms, roomID)
		return nil, nil
	}
	s.turns.Clamp(room)
	return room, nil
}

// DeleteRoom removes a room outright, used for host-departure teardown
func (s *SessionStore) DeleteRoom(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
}

func (s *SessionStore) GetRoom(roomID string) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// generateRoomID creates a 6-char code from an unambiguous alphabet,
// retrying on the rare collision with a live room. Caller holds s.mu.
func (s *SessionStore) generateRoomID() string {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const codeLen = 6

	for attempts := 0; attempts < 10; attempts++ {
		b := make([]byte, codeLen)
		if _, err := rand.Read(b); err != nil {
			break
		}
		code := make([]byte, codeLen)
		for i := range code {
			code[i] = chars[int(b[i])%len(chars)]
		}
		if _, taken := s.rooms[string(code)]; !taken {
			return string(code)
		}
	}

	// Practically unreachable; uuids never collide
	return uuid.New().String()[:8]
}
