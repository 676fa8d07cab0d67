package service

import (
	"testing"
)

func TestPickNextCoversPoolWithoutRepeats(t *testing.T) {
	selector := NewQuestionSelector()
	room := roomWithPlayers(2)

	const poolSize = 7
	seen := make(map[int]bool)
	for i := 0; i < poolSize; i++ {
		pick, didReset := selector.PickNext(room, poolSize)
		if pick == nil {
			t.Fatalf("pick %d: expected a selection", i+1)
		}
		if didReset {
			t.Fatalf("pick %d: unexpected reset before pool exhaustion", i+1)
		}
		if *pick < 0 || *pick >= poolSize {
			t.Fatalf("pick %d: index %d out of pool range", i+1, *pick)
		}
		if seen[*pick] {
			t.Fatalf("pick %d: index %d repeated within a cycle", i+1, *pick)
		}
		seen[*pick] = true
	}
	if len(seen) != poolSize {
		t.Fatalf("expected %d distinct indices, got %d", poolSize, len(seen))
	}
}

func TestPickNextResetsAfterExhaustion(t *testing.T) {
	selector := NewQuestionSelector()
	room := roomWithPlayers(2)

	const poolSize = 3
	for i := 0; i < poolSize; i++ {
		selector.PickNext(room, poolSize)
	}

	pick, didReset := selector.PickNext(room, poolSize)
	if !didReset {
		t.Fatal("expected reset on pick after exhaustion")
	}
	if pick == nil || *pick < 0 || *pick >= poolSize {
		t.Fatalf("expected a valid pick after reset, got %v", pick)
	}
	if len(room.UsedQuestions) != 1 {
		t.Fatalf("expected used set to hold only the new pick, got %d entries", len(room.UsedQuestions))
	}
}

func TestPickNextEmptyPool(t *testing.T) {
	selector := NewQuestionSelector()
	room := roomWithPlayers(2)

	pick, didReset := selector.PickNext(room, 0)
	if pick != nil {
		t.Fatalf("expected absent selection on empty pool, got %d", *pick)
	}
	if didReset {
		t.Fatal("empty pool must not report a reset")
	}
	if len(room.UsedQuestions) != 0 {
		t.Fatal("empty pool must not mutate the used set")
	}
}

func TestPickNextSetsCurrentQuestion(t *testing.T) {
	selector := NewQuestionSelector()
	room := roomWithPlayers(2)

	pick, _ := selector.PickNext(room, 5)
	if room.CurrentQuestion == nil || *room.CurrentQuestion != *pick {
		t.Fatalf("expected current question %d, got %v", *pick, room.CurrentQuestion)
	}
}

func TestMarkUsedRecordsClientPick(t *testing.T) {
	selector := NewQuestionSelector()
	room := roomWithPlayers(2)

	selector.MarkUsed(room, 4)
	if !room.UsedQuestions[4] {
		t.Fatal("expected index 4 marked used")
	}
	if room.CurrentQuestion == nil || *room.CurrentQuestion != 4 {
		t.Fatalf("expected current question 4, got %v", room.CurrentQuestion)
	}
}

func TestResetClearsUsedSet(t *testing.T) {
	selector := NewQuestionSelector()
	room := roomWithPlayers(2)

	selector.MarkUsed(room, 1)
	selector.MarkUsed(room, 2)
	selector.Reset(room)

	if len(room.UsedQuestions) != 0 {
		t.Fatalf("expected empty used set, got %d entries", len(room.UsedQuestions))
	}
	if room.CurrentQuestion != nil {
		t.Fatalf("expected no current question, got %d", *room.CurrentQuestion)
	}
}

func TestTwoPlayersPoolOfThreeScenario(t *testing.T) {
	selector := NewQuestionSelector()
	room := roomWithPlayers(2)

	seen := make(map[int]bool)
	for i := 0; i < 3; i++ {
		pick, didReset := selector.PickNext(room, 3)
		if pick == nil || didReset {
			t.Fatalf("pick %d: got pick=%v reset=%v", i+1, pick, didReset)
		}
		seen[*pick] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected picks to cover {0,1,2}, got %v", seen)
	}

	pick, didReset := selector.PickNext(room, 3)
	if !didReset {
		t.Fatal("fourth pick should reset the pool")
	}
	if pick == nil || !seen[*pick] {
		t.Fatalf("fourth pick should repeat an earlier index, got %v", pick)
	}
}
