package schedule

import (
	"sort"

	"github.com/stagehandapp/stagehand/internal/event"
)

// OrderRooms returns rooms in grid column order: not-bookable rooms first,
// then by descending capacity, capacity-less rooms last, ties broken by name
// so the column order is stable across reloads.
//
// Not-bookable rooms are a display policy only: they are sorted to the front
// and rendered de-emphasized, but a drag may still land a session in one.
func OrderRooms(rooms []*event.Room) []*event.Room {
	ordered := make([]*event.Room, len(rooms))
	copy(ordered, rooms)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.NotBookable != b.NotBookable {
			return a.NotBookable
		}
		switch {
		case a.Capacity != nil && b.Capacity != nil:
			if *a.Capacity != *b.Capacity {
				return *a.Capacity > *b.Capacity
			}
		case a.Capacity != nil:
			return true
		case b.Capacity != nil:
			return false
		}
		return a.DisplayName() < b.DisplayName()
	})

	return ordered
}

// RoomIndex returns the column index of the room with the given id, or -1.
func RoomIndex(rooms []*event.Room, id string) int {
	for i, r := range rooms {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// SessionsByRoom buckets sessions into the given room column order.
// Sessions referencing unknown rooms are omitted.
func SessionsByRoom(rooms []*event.Room, sessions []*event.Session) [][]*event.Session {
	byRoom := make([][]*event.Session, len(rooms))
	index := make(map[string]int, len(rooms))
	for i, r := range rooms {
		index[r.ID] = i
	}
	for _, s := range sessions {
		if i, ok := index[s.RoomID]; ok {
			byRoom[i] = append(byRoom[i], s)
		}
	}
	return byRoom
}
