package realtime

import (
	"reflect"
	"testing"
)

func TestObservable_Get(t *testing.T) {
	o := NewObservable(7)
	if got := o.Get(); got != 7 {
		t.Errorf("Get() = %d, want 7", got)
	}
}

func TestObservable_SetNotifiesOnChange(t *testing.T) {
	o := NewObservable(0)
	var got []int
	o.Subscribe(func(v int) { got = append(got, v) })

	o.Set(1)
	o.Set(1)
	o.Set(2)

	if want := []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("notifications %v, want %v", got, want)
	}
	if o.Get() != 2 {
		t.Errorf("Get() = %d, want 2", o.Get())
	}
}

func TestObservable_EmitAlwaysNotifies(t *testing.T) {
	o := NewObservable("")
	var got []string
	o.Subscribe(func(v string) { got = append(got, v) })

	o.Emit("buzz")
	o.Emit("buzz")

	if want := []string{"buzz", "buzz"}; !reflect.DeepEqual(got, want) {
		t.Errorf("notifications %v, want %v", got, want)
	}
}

func TestObservable_SubscribeDoesNotReplay(t *testing.T) {
	o := NewObservable(5)
	calls := 0
	o.Subscribe(func(int) { calls++ })
	if calls != 0 {
		t.Errorf("Subscribe replayed current value (%d calls)", calls)
	}
}

func TestObservable_Unsubscribe(t *testing.T) {
	o := NewObservable(0)
	calls := 0
	unsubscribe := o.Subscribe(func(int) { calls++ })
	o.Set(1)
	unsubscribe()
	unsubscribe()
	o.Set(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if o.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", o.Subscribers())
	}
}

func TestObservable_ReentrantSetKeepsOrder(t *testing.T) {
	o := NewObservable(0)
	var got []int
	o.Subscribe(func(v int) {
		got = append(got, v)
		if v == 1 {
			// Runs after the current delivery finishes, not inside it.
			o.Set(2)
		}
	})
	o.Subscribe(func(v int) { got = append(got, v*10) })

	o.Set(1)

	if want := []int{1, 10, 2, 20}; !reflect.DeepEqual(got, want) {
		t.Errorf("notifications %v, want %v", got, want)
	}
}

func TestObservableOn_QueuesUntilDrain(t *testing.T) {
	exec := NewSerializer()
	a := NewObservableOn(exec, 0)
	b := NewObservableOn(exec, "")
	var got []string
	a.Subscribe(func(v int) { got = append(got, "a") })
	b.Subscribe(func(v string) { got = append(got, "b:"+v) })

	a.Set(1)
	b.Set("x")
	a.Set(2)
	if len(got) != 0 {
		t.Fatalf("notified before Drain: %v", got)
	}
	if exec.Pending() != 3 {
		t.Errorf("Pending() = %d, want 3", exec.Pending())
	}

	exec.Drain()
	if want := []string{"a", "b:x", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("notifications %v, want %v", got, want)
	}
}
