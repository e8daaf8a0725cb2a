package rounds

import (
	"fmt"
	"testing"
)

func TestEvent_EmitInOrder(t *testing.T) {
	var e Event[int]
	var calls []string

	for i := 0; i < 3; i++ {
		e.Subscribe(func(v int) { calls = append(calls, fmt.Sprintf("%v:%v", i, v)) })
	}

	e.Emit(7)

	expected := "[0:7 1:7 2:7]"
	if fmt.Sprint(calls) != expected {
		t.Errorf("expected %v but got %v", expected, calls)
	}
}

func TestEvent_Unsubscribe(t *testing.T) {
	var e Event[string]
	var calls []string

	e.Subscribe(func(v string) { calls = append(calls, "a"+v) })
	sub := e.Subscribe(func(v string) { calls = append(calls, "b"+v) })
	e.Subscribe(func(v string) { calls = append(calls, "c"+v) })

	if !e.Unsubscribe(sub) {
		t.Fatal("expected unsubscribe to find the listener")
	}

	if e.Unsubscribe(sub) {
		t.Error("unsubscribing twice should report false")
	}

	e.Emit("!")

	if fmt.Sprint(calls) != "[a! c!]" {
		t.Errorf("expected [a! c!] but got %v", calls)
	}

	if e.Len() != 2 {
		t.Errorf("expected 2 listeners but got %v", e.Len())
	}
}

func TestEvent_NilListenerIgnored(t *testing.T) {
	var e Event[int]
	if sub := e.Subscribe(nil); sub != 0 {
		t.Errorf("expected zero subscription for nil listener, got %v", sub)
	}

	if e.Len() != 0 {
		t.Errorf("expected no listeners, got %v", e.Len())
	}

	e.Emit(1)
}

func TestEvent_ChangesDuringEmitApplyNextTime(t *testing.T) {
	var e Event[int]
	var calls []string
	var first Subscription

	first = e.Subscribe(func(int) {
		calls = append(calls, "first")
		e.Unsubscribe(first)
		e.Subscribe(func(int) { calls = append(calls, "late") })
	})
	e.Subscribe(func(int) { calls = append(calls, "second") })

	e.Emit(0)
	if fmt.Sprint(calls) != "[first second]" {
		t.Fatalf("expected [first second] on first emit but got %v", calls)
	}

	calls = nil
	e.Emit(0)
	if fmt.Sprint(calls) != "[second late]" {
		t.Errorf("expected [second late] on second emit but got %v", calls)
	}
}

func TestSignal(t *testing.T) {
	var s Signal
	var count int

	sub := s.Subscribe(func() { count++ })
	s.Subscribe(func() { count += 10 })
	s.Emit()

	if count != 11 {
		t.Fatalf("expected 11 but got %v", count)
	}

	s.Unsubscribe(sub)
	s.Emit()
	if count != 21 {
		t.Errorf("expected 21 but got %v", count)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("expected no listeners after clear, got %v", s.Len())
	}
}
