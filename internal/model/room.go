package model

import "time"

type RoomStatus string

const (
	RoomStatusLobby  RoomStatus = "lobby"
	RoomStatusInGame RoomStatus = "in_game"
)

// Player is one seat in a room. ConnectionID is the transport-level
// identity and changes across reconnects.
type Player struct {
	ConnectionID string `json:"id"`
	DisplayName  string `json:"name"`
	Position     int    `json:"position"`
}

// Room is one independent game instance. Players are kept in join
// order, which is also turn order; TurnIndex must point into Players
// after every mutation.
type Room struct {
	ID              string       `json:"id"`
	HostID          string       `json:"hostId"`
	Status          RoomStatus   `json:"status"`
	Players         []Player     `json:"players"`
	TurnIndex       int          `json:"turnIndex"`
	UsedQuestions   map[int]bool `json:"-"`
	CurrentQuestion *int         `json:"currentQuestion,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// PlayerIndex returns the index of the player with the given
// connection id, or -1 if absent.
func (r *Room) PlayerIndex(connectionID string) int {
	for i, p := range r.Players {
		if p.ConnectionID == connectionID {
			return i
		}
	}
	return -1
}
