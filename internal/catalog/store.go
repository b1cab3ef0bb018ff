package catalog

import (
	"sort"
	"sync"
	"time"

	"bookit/pkg/model"
)

// Store holds the immutable experience catalog and the mutable slot
// records. The experience and slot maps are frozen at construction; only
// a slot's Remaining/IsSoldOut fields change afterwards, and only under
// that slot's mutex. The capacity check and the seat decrement are a
// single critical section, so two bookings can never both take the last
// seat.
type Store struct {
	experiences map[string]*model.Experience
	bySlug      map[string]*model.Experience
	ordered     []*model.Experience

	slots      map[string]*slotEntry
	slotsByExp map[string][]string
}

type slotEntry struct {
	mu   sync.Mutex
	slot model.Slot
}

func NewStore(experiences []*model.Experience, slots []*model.Slot) *Store {
	s := &Store{
		experiences: make(map[string]*model.Experience, len(experiences)),
		bySlug:      make(map[string]*model.Experience, len(experiences)),
		ordered:     experiences,
		slots:       make(map[string]*slotEntry, len(slots)),
		slotsByExp:  make(map[string][]string),
	}

	for _, exp := range experiences {
		s.experiences[exp.ID] = exp
		s.bySlug[exp.Slug] = exp
	}

	for _, slot := range slots {
		s.slots[slot.ID] = &slotEntry{slot: *slot}
		s.slotsByExp[slot.ExperienceID] = append(s.slotsByExp[slot.ExperienceID], slot.ID)
	}

	return s
}

// Experiences returns the catalog in seed order.
func (s *Store) Experiences() []*model.Experience {
	return s.ordered
}

func (s *Store) ExperienceByID(id string) (*model.Experience, error) {
	exp, ok := s.experiences[id]
	if !ok {
		return nil, ErrExperienceNotFound
	}
	return exp, nil
}

func (s *Store) ExperienceBySlug(slug string) (*model.Experience, error) {
	exp, ok := s.bySlug[slug]
	if !ok {
		return nil, ErrExperienceNotFound
	}
	return exp, nil
}

// SlotByID returns a copy of the slot's current state.
func (s *Store) SlotByID(id string) (model.Slot, error) {
	entry, ok := s.slots[id]
	if !ok {
		return model.Slot{}, ErrSlotNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.slot, nil
}

// SlotsByExperience returns copies of the experience's slots sorted by
// start time.
func (s *Store) SlotsByExperience(experienceID string) []model.Slot {
	ids := s.slotsByExp[experienceID]
	out := make([]model.Slot, 0, len(ids))
	for _, id := range ids {
		entry := s.slots[id]
		entry.mu.Lock()
		out = append(out, entry.slot)
		entry.mu.Unlock()
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out
}

// NextAvailable returns the start of the earliest future slot with seats
// remaining, or nil when the experience is fully booked out.
func (s *Store) NextAvailable(experienceID string, now time.Time) *time.Time {
	var next *time.Time
	for _, slot := range s.SlotsByExperience(experienceID) {
		if slot.IsSoldOut || !slot.StartsAt.After(now) {
			continue
		}
		if next == nil || slot.StartsAt.Before(*next) {
			t := slot.StartsAt
			next = &t
		}
	}
	return next
}

// Reserve validates capacity and commits a seat decrement for the slot.
// heldSeats is the number of seats an existing booking on this slot
// already holds; edits pass it so their own hold is credited back before
// the capacity check. Returns the updated slot state.
func (s *Store) Reserve(slotID, experienceID string, guests, heldSeats int) (model.Slot, error) {
	entry, ok := s.slots[slotID]
	if !ok {
		return model.Slot{}, ErrSlotNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.slot.ExperienceID != experienceID {
		return model.Slot{}, ErrSlotMismatch
	}

	effective := entry.slot.Remaining + heldSeats
	if effective > entry.slot.Capacity {
		effective = entry.slot.Capacity
	}

	if effective < guests {
		return model.Slot{}, ErrInsufficientCapacity
	}

	entry.slot.Remaining = effective - guests
	entry.slot.IsSoldOut = entry.slot.Remaining == 0
	return entry.slot, nil
}

// Release returns seats to the slot, clamped at capacity. Used by
// cancellation and by checkout compensation when a later step fails.
func (s *Store) Release(slotID string, guests int) (model.Slot, error) {
	entry, ok := s.slots[slotID]
	if !ok {
		return model.Slot{}, ErrSlotNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.slot.Remaining += guests
	if entry.slot.Remaining > entry.slot.Capacity {
		entry.slot.Remaining = entry.slot.Capacity
	}
	entry.slot.IsSoldOut = entry.slot.Remaining == 0
	return entry.slot, nil
}
