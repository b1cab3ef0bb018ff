package catalog

import (
	"errors"
	"sync"
	"testing"
	"time"

	"bookit/pkg/model"
)

func testStore(capacity int) *Store {
	exp := &model.Experience{
		ID:           "exp-01",
		Title:        "Sunrise Hot Air Balloon Ride",
		Slug:         "sunrise-balloon-ride",
		PricePerHead: 1999,
		Currency:     "INR",
	}
	slot := &model.Slot{
		ID:           "exp-01-slot-1",
		ExperienceID: "exp-01",
		StartsAt:     time.Now().Add(24 * time.Hour),
		Capacity:     capacity,
		Remaining:    capacity,
	}
	return NewStore([]*model.Experience{exp}, []*model.Slot{slot})
}

func assertInvariants(t *testing.T, slot model.Slot) {
	t.Helper()
	if slot.Remaining < 0 || slot.Remaining > slot.Capacity {
		t.Fatalf("invariant violated: remaining=%d capacity=%d", slot.Remaining, slot.Capacity)
	}
	if slot.IsSoldOut != (slot.Remaining == 0) {
		t.Fatalf("invariant violated: remaining=%d isSoldOut=%v", slot.Remaining, slot.IsSoldOut)
	}
}

func TestReserve_Success(t *testing.T) {
	store := testStore(12)

	slot, err := store.Reserve("exp-01-slot-1", "exp-01", 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.Remaining != 9 {
		t.Errorf("expected remaining 9, got %d", slot.Remaining)
	}
	assertInvariants(t, slot)
}

func TestReserve_ExactFitSellsOut(t *testing.T) {
	store := testStore(4)

	slot, err := store.Reserve("exp-01-slot-1", "exp-01", 4, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.Remaining != 0 {
		t.Errorf("expected remaining 0, got %d", slot.Remaining)
	}
	if !slot.IsSoldOut {
		t.Error("expected slot to be sold out")
	}
	assertInvariants(t, slot)
}

func TestReserve_InsufficientCapacityLeavesStateUnchanged(t *testing.T) {
	store := testStore(2)

	if _, err := store.Reserve("exp-01-slot-1", "exp-01", 3, 0); !errors.Is(err, ErrInsufficientCapacity) {
		t.Fatalf("expected ErrInsufficientCapacity, got %v", err)
	}

	slot, err := store.SlotByID("exp-01-slot-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.Remaining != 2 {
		t.Errorf("expected remaining unchanged at 2, got %d", slot.Remaining)
	}
	assertInvariants(t, slot)
}

func TestReserve_UnknownSlot(t *testing.T) {
	store := testStore(12)

	if _, err := store.Reserve("nope", "exp-01", 1, 0); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestReserve_SlotExperienceMismatch(t *testing.T) {
	store := testStore(12)

	if _, err := store.Reserve("exp-01-slot-1", "exp-99", 1, 0); !errors.Is(err, ErrSlotMismatch) {
		t.Errorf("expected ErrSlotMismatch, got %v", err)
	}
}

func TestReserve_EditCreditsHeldSeats(t *testing.T) {
	store := testStore(12)

	// Original booking holds 5 seats.
	if _, err := store.Reserve("exp-01-slot-1", "exp-01", 5, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Edit down to 2 guests: net change is exactly 5-2=3 seats back.
	slot, err := store.Reserve("exp-01-slot-1", "exp-01", 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.Remaining != 10 {
		t.Errorf("expected remaining 10 after edit, got %d", slot.Remaining)
	}
	assertInvariants(t, slot)
}

func TestReserve_EditCanGrowIntoOwnHold(t *testing.T) {
	store := testStore(6)

	if _, err := store.Reserve("exp-01-slot-1", "exp-01", 4, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Slot has 2 left but the edit's own 4 held seats count as available.
	slot, err := store.Reserve("exp-01-slot-1", "exp-01", 6, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.Remaining != 0 || !slot.IsSoldOut {
		t.Errorf("expected sold out slot, got remaining=%d", slot.Remaining)
	}
}

func TestReserve_EditBeyondEffectiveCapacityFails(t *testing.T) {
	store := testStore(6)

	if _, err := store.Reserve("exp-01-slot-1", "exp-01", 4, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Reserve("exp-01-slot-1", "exp-01", 3, 0); !errors.Is(err, ErrInsufficientCapacity) {
		t.Fatalf("expected ErrInsufficientCapacity, got %v", err)
	}
}

func TestRelease_RestoresSeats(t *testing.T) {
	store := testStore(4)

	if _, err := store.Reserve("exp-01-slot-1", "exp-01", 4, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slot, err := store.Release("exp-01-slot-1", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.Remaining != 4 {
		t.Errorf("expected remaining 4, got %d", slot.Remaining)
	}
	if slot.IsSoldOut {
		t.Error("expected slot not sold out after release")
	}
	assertInvariants(t, slot)
}

func TestRelease_ClampsAtCapacity(t *testing.T) {
	store := testStore(4)

	slot, err := store.Release("exp-01-slot-1", 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.Remaining != 4 {
		t.Errorf("expected remaining clamped at 4, got %d", slot.Remaining)
	}
	assertInvariants(t, slot)
}

// Two concurrent attempts at the last remaining seat: exactly one may win.
func TestReserve_ConcurrentLastSeat(t *testing.T) {
	for i := 0; i < 50; i++ {
		store := testStore(1)

		var wg sync.WaitGroup
		results := make([]error, 2)
		for g := 0; g < 2; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				_, results[g] = store.Reserve("exp-01-slot-1", "exp-01", 1, 0)
			}(g)
		}
		wg.Wait()

		var wins, losses int
		for _, err := range results {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrInsufficientCapacity):
				losses++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if wins != 1 || losses != 1 {
			t.Fatalf("iteration %d: expected exactly one winner, got %d wins %d losses", i, wins, losses)
		}

		slot, _ := store.SlotByID("exp-01-slot-1")
		if slot.Remaining != 0 || !slot.IsSoldOut {
			t.Fatalf("iteration %d: expected sold out slot, remaining=%d", i, slot.Remaining)
		}
	}
}

func TestNextAvailable_SkipsSoldOutAndPast(t *testing.T) {
	now := time.Now()
	exp := &model.Experience{ID: "exp-01", Slug: "x"}
	slots := []*model.Slot{
		{ID: "s-past", ExperienceID: "exp-01", StartsAt: now.Add(-time.Hour), Capacity: 2, Remaining: 2},
		{ID: "s-full", ExperienceID: "exp-01", StartsAt: now.Add(time.Hour), Capacity: 2, Remaining: 0, IsSoldOut: true},
		{ID: "s-open", ExperienceID: "exp-01", StartsAt: now.Add(2 * time.Hour), Capacity: 2, Remaining: 1},
	}
	store := NewStore([]*model.Experience{exp}, slots)

	next := store.NextAvailable("exp-01", now)
	if next == nil {
		t.Fatal("expected a next available slot")
	}
	if !next.Equal(now.Add(2 * time.Hour)) {
		t.Errorf("expected s-open start, got %v", next)
	}
}

func TestNextAvailable_NoneLeft(t *testing.T) {
	now := time.Now()
	exp := &model.Experience{ID: "exp-01", Slug: "x"}
	slots := []*model.Slot{
		{ID: "s-full", ExperienceID: "exp-01", StartsAt: now.Add(time.Hour), Capacity: 2, Remaining: 0, IsSoldOut: true},
	}
	store := NewStore([]*model.Experience{exp}, slots)

	if next := store.NextAvailable("exp-01", now); next != nil {
		t.Errorf("expected nil, got %v", next)
	}
}
