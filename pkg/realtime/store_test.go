package realtime

import (
	"testing"
	"time"
)

func TestNewRoomStore(t *testing.T) {
	s := NewRoomStore[string]()
	if s == nil {
		t.Fatal("NewRoomStore returned nil")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestRoomStore_Create_Get(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("room1", "state1", time.Unix(0, 0))
	room, ok := s.Get("room1")
	if !ok {
		t.Fatal("Get returned false for existing room")
	}
	if room.ID != "room1" {
		t.Errorf("room ID %q, want room1", room.ID)
	}
	if room.State != "state1" {
		t.Errorf("room State %q, want state1", room.State)
	}
	if room.Hub() == nil {
		t.Error("room has no broadcaster")
	}

	_, ok = s.Get("nonexistent")
	if ok {
		t.Error("Get should return false for missing ID")
	}
}

func TestRoomStore_CreateReplacesRoom(t *testing.T) {
	s := NewRoomStore[string]()
	first := s.Create("r1", "a", time.Unix(0, 0))
	ch := first.Hub().Subscribe()
	s.Create("r1", "b", time.Unix(1, 0))

	if _, open := <-ch; open {
		t.Error("replaced room's broadcaster should be closed")
	}
	room, _ := s.Get("r1")
	if room.State != "b" {
		t.Errorf("State %q, want b", room.State)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestRoomStore_Publish(t *testing.T) {
	s := NewRoomStore[string]()
	room := s.Create("r1", "x", time.Unix(0, 0))
	hub := room.Hub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.Publish("r1", "event1")
	got := <-ch
	if got != "event1" {
		t.Errorf("got %q, want event1", got)
	}

	s.Publish("missing", "event2")
}

func TestRoomStore_Delete(t *testing.T) {
	s := NewRoomStore[string]()
	room := s.Create("r1", "x", time.Unix(0, 0))
	ch := room.Hub().Subscribe()

	got, ok := s.Delete("r1")
	if !ok || got != room {
		t.Fatalf("Delete returned (%v, %v), want the created room", got, ok)
	}
	if _, open := <-ch; open {
		t.Error("Delete should close the room's broadcaster")
	}
	if _, ok := s.Get("r1"); ok {
		t.Error("room still present after Delete")
	}
	if _, ok := s.Delete("r1"); ok {
		t.Error("second Delete should report false")
	}
}

func TestRoomStore_RoomsOrderedByCreation(t *testing.T) {
	s := NewRoomStore[int]()
	base := time.Unix(100, 0)
	s.Create("c", 3, base.Add(2*time.Second))
	s.Create("a", 1, base)
	s.Create("b", 2, base.Add(time.Second))

	rooms := s.Rooms()
	if len(rooms) != 3 {
		t.Fatalf("Rooms() returned %d rooms, want 3", len(rooms))
	}
	for i, want := range []string{"a", "b", "c"} {
		if rooms[i].ID != want {
			t.Errorf("rooms[%d].ID = %q, want %q", i, rooms[i].ID, want)
		}
	}
}
