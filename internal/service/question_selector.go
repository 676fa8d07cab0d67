package service

import (
	"math/rand"

	"quizboard/internal/model"
)

// QuestionSelector draws question indices for a room without
// repetition: every index in the pool is served exactly once per
// cycle, uniformly at random within the cycle, before any repeats.
type QuestionSelector struct{}

func NewQuestionSelector() *QuestionSelector {
	return &QuestionSelector{}
}

// PickNext selects the next unused question index for the room. The
// returned pick is nil when poolSize is zero. didReset reports that
// the used set was exhausted and cleared before selecting, so callers
// can broadcast the reset.
func (q *QuestionSelector) PickNext(room *model.Room, poolSize int) (pick *int, didReset bool) {
	if poolSize <= 0 {
		return nil, false
	}
	if room.UsedQuestions == nil {
		room.UsedQuestions = make(map[int]bool)
	}
	if len(room.UsedQuestions) >= poolSize {
		room.UsedQuestions = make(map[int]bool)
		didReset = true
	}

	remaining := make([]int, 0, poolSize-len(room.UsedQuestions))
	for i := 0; i < poolSize; i++ {
		if !room.UsedQuestions[i] {
			remaining = append(remaining, i)
		}
	}

	idx := remaining[rand.Intn(len(remaining))]
	room.UsedQuestions[idx] = true
	room.CurrentQuestion = &idx
	return &idx, didReset
}

// MarkUsed records a caller-selected index, for clients that computed
// the pick themselves.
func (q *QuestionSelector) MarkUsed(room *model.Room, index int) {
	if room.UsedQuestions == nil {
		room.UsedQuestions = make(map[int]bool)
	}
	room.UsedQuestions[index] = true
	room.CurrentQuestion = &index
}

// Reset clears the room's used set
func (q *QuestionSelector) Reset(room *model.Room) {
	room.UsedQuestions = make(map[int]bool)
	room.CurrentQuestion = nil
}
