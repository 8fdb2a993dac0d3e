package catalog

import "strings"

// DefaultCapacity matches the physical machines this engine ships in.
const DefaultCapacity = 10

// DefaultMaxPerSlot is the per-slot stock ceiling in the default configuration.
const DefaultMaxPerSlot = 10

// Store holds a fixed number of slots indexed by slot id.
// It is not safe for concurrent use; the vending machine serializes access to it.
type Store struct {
	slots      []Slot
	maxPerSlot int
}

// NewStore builds an empty store with the given slot count and per-slot stock ceiling.
// Non-positive arguments fall back to the defaults so zero-value configs still work.
func NewStore(capacity, maxPerSlot int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if maxPerSlot <= 0 {
		maxPerSlot = DefaultMaxPerSlot
	}
	return &Store{
		slots:      make([]Slot, capacity),
		maxPerSlot: maxPerSlot,
	}
}

// Capacity reports how many slots the store was built with.
func (s *Store) Capacity() int {
	return len(s.slots)
}

// MaxPerSlot reports the stock ceiling enforced per slot.
func (s *Store) MaxPerSlot() int {
	return s.maxPerSlot
}

// AddItem places a new item into the lowest free slot and returns its id.
func (s *Store) AddItem(name string, price, calories, initialQuantity int) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, newInvalidArgument("item name is required")
	}
	if price <= 0 {
		return 0, newInvalidArgument("item price must be positive")
	}
	if calories < 0 {
		return 0, newInvalidArgument("calorie count must not be negative")
	}
	if initialQuantity < 0 {
		return 0, newInvalidArgument("initial quantity must not be negative")
	}
	if initialQuantity > s.maxPerSlot {
		return 0, newInvalidArgument("initial quantity exceeds the per-slot capacity")
	}
	if _, err := s.FindByName(name); err == nil {
		return 0, newInvalidArgument("item name is already in use")
	}
	for id := range s.slots {
		if s.slots[id].Occupied() {
			continue
		}
		s.slots[id] = Slot{
			Item: &Item{
				ID:              id,
				Name:            name,
				CalorieCount:    calories,
				InitialQuantity: initialQuantity,
			},
			Stock: initialQuantity,
			Price: price,
		}
		return id, nil
	}
	return 0, ErrFull
}

// FindByName scans active slots in order and returns the first slot id whose item matches.
func (s *Store) FindByName(name string) (int, error) {
	for id := range s.slots {
		if s.slots[id].Occupied() && s.slots[id].Item.Name == name {
			return id, nil
		}
	}
	return 0, ErrNotFound
}

// Slot returns a copy of the slot at id so callers can inspect it without aliasing state.
func (s *Store) Slot(id int) (Slot, error) {
	if id < 0 || id >= len(s.slots) {
		return Slot{}, ErrNotFound
	}
	return s.slots[id], nil
}

// SetPrice replaces the unit price for an occupied slot.
func (s *Store) SetPrice(id, price int) error {
	if id < 0 || id >= len(s.slots) {
		return ErrNotFound
	}
	if !s.slots[id].Occupied() {
		return ErrSlotEmpty
	}
	if price <= 0 {
		return newInvalidArgument("item price must be positive")
	}
	s.slots[id].Price = price
	return nil
}

// DecrementStock removes one unit from the slot; the stock count never goes below zero.
func (s *Store) DecrementStock(id int) error {
	if id < 0 || id >= len(s.slots) {
		return ErrNotFound
	}
	if !s.slots[id].Occupied() {
		return ErrSlotEmpty
	}
	if s.slots[id].Stock == 0 {
		return ErrOutOfStock
	}
	s.slots[id].Stock--
	return nil
}

// Restock adds quantity units to one slot. Raising stock above the per-slot
// capacity is rejected rather than clamped so operators notice the mismatch.
func (s *Store) Restock(id, quantity int) error {
	if id < 0 || id >= len(s.slots) {
		return ErrNotFound
	}
	if !s.slots[id].Occupied() {
		return ErrSlotEmpty
	}
	if quantity < 0 {
		return newInvalidArgument("restock quantity must not be negative")
	}
	if s.slots[id].Stock+quantity > s.maxPerSlot {
		return newInvalidArgument("restock would exceed the per-slot capacity")
	}
	s.slots[id].Stock += quantity
	return nil
}

// RestockAll distributes up to totalUnits across occupied slots, lowest slot
// first, never pushing a slot past perSlotCap. It returns the units actually
// placed; the leftover budget is totalUnits minus that and is never negative.
func (s *Store) RestockAll(totalUnits, perSlotCap int) (int, error) {
	if totalUnits < 0 {
		return 0, newInvalidArgument("restock budget must not be negative")
	}
	if perSlotCap <= 0 || perSlotCap > s.maxPerSlot {
		perSlotCap = s.maxPerSlot
	}
	remaining := totalUnits
	for id := range s.slots {
		if remaining == 0 {
			break
		}
		if !s.slots[id].Occupied() {
			continue
		}
		room := perSlotCap - s.slots[id].Stock
		if room <= 0 {
			continue
		}
		if room > remaining {
			room = remaining
		}
		s.slots[id].Stock += room
		remaining -= room
	}
	return totalUnits - remaining, nil
}

// List projects the occupied slots in slot order for display.
func (s *Store) List() []Listing {
	listings := make([]Listing, 0, len(s.slots))
	for id := range s.slots {
		if !s.slots[id].Occupied() {
			continue
		}
		listings = append(listings, Listing{
			Slot:  id,
			Name:  s.slots[id].Item.Name,
			Stock: s.slots[id].Stock,
			Price: s.slots[id].Price,
		})
	}
	return listings
}
