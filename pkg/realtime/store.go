package realtime

import (
	"sort"
	"sync"
	"time"
)

// Room holds state and a broadcaster for one room.
type Room[T any] struct {
	ID        string
	State     T
	CreatedAt time.Time
	hub       *Broadcaster[string]
}

// Hub returns the room's event broadcaster.
func (r *Room[T]) Hub() *Broadcaster[string] {
	return r.hub
}

// RoomStore manages rooms and their broadcasters.
type RoomStore[T any] struct {
	mu    sync.RWMutex
	rooms map[string]*Room[T]
}

// NewRoomStore creates an empty room store.
func NewRoomStore[T any]() *RoomStore[T] {
	return &RoomStore[T]{
		rooms: make(map[string]*Room[T]),
	}
}

// Create adds a room with the given id and state, and a new Broadcaster.
// An existing room with the same id is replaced and its broadcaster closed.
func (s *RoomStore[T]) Create(id string, state T, now time.Time) *Room[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.rooms[id]; ok {
		old.hub.Close()
	}
	r := &Room[T]{ID: id, State: state, CreatedAt: now, hub: NewBroadcaster[string]()}
	s.rooms[id] = r
	return r
}

// Get returns the room by ID if it exists.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Publish notifies subscribers of the room's broadcaster. Unknown rooms are
// ignored.
func (s *RoomStore[T]) Publish(id string, event string) {
	if r, ok := s.Get(id); ok {
		r.hub.Publish(event)
	}
}

// Delete removes the room, closes its broadcaster and returns it.
func (s *RoomStore[T]) Delete(id string) (*Room[T], bool) {
	s.mu.Lock()
	r, ok := s.rooms[id]
	if ok {
		delete(s.rooms, id)
	}
	s.mu.Unlock()
	if ok {
		r.hub.Close()
	}
	return r, ok
}

// Rooms returns the current rooms ordered by creation time.
func (s *RoomStore[T]) Rooms() []*Room[T] {
	s.mu.RLock()
	out := make([]*Room[T], 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Len returns the number of rooms.
func (s *RoomStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
