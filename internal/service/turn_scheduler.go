package service

import "quizboard/internal/model"

// TurnScheduler rotates the turn pointer through a room's players in
// join order, wrapping at the end.
type TurnScheduler struct{}

func NewTurnScheduler() *TurnScheduler {
	return &TurnScheduler{}
}

// Advance moves the turn to the next player. A no-op on an empty
// room; with a single player the index stays 0.
func (t *TurnScheduler) Advance(room *model.Room) {
	if len(room.Players) == 0 {
		return
	}
	room.TurnIndex = (room.TurnIndex + 1) % len(room.Players)
}

// Clamp renormalizes the turn pointer after a player removal. The
// rule is TurnIndex mod the new length: when the player at the turn
// leaves, the next player in the remaining order inherits the turn
// (wrapping to 0 if they were last). No attempt is made to preserve
// whose logical turn it was.
func (t *TurnScheduler) Clamp(room *model.Room) {
	if len(room.Players) == 0 {
		room.TurnIndex = 0
		return
	}
	room.TurnIndex = room.TurnIndex % len(room.Players)
}

// IsMyTurn reports whether the given connection holds the turn
func (t *TurnScheduler) IsMyTurn(room *model.Room, connectionID string) bool {
	if len(room.Players) == 0 {
		return false
	}
	return room.Players[room.TurnIndex].ConnectionID == connectionID
}
