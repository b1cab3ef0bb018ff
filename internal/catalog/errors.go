package catalog

import "errors"

var (
	ErrExperienceNotFound = errors.New("experience not found")

	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotMismatch means the slot exists but belongs to a different
	// experience than the one requested.
	ErrSlotMismatch = errors.New("slot does not belong to experience")

	ErrInsufficientCapacity = errors.New("insufficient remaining capacity")
)
