package hybrid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
)

func TestRecorderCapturesTransitions(t *testing.T) {
	recorder := &Recorder{}
	v := MustNew[int](2, WithObserver(recorder), WithID("numbers"))
	mustAppend(t, v, 20, 35, 40, 45, 50)
	for v.Len() > 2 {
		_ = v.RemoveLast()
	}

	want := []TransitionEvent{
		{ContainerID: "numbers", Kind: Promote, From: Inline, To: Heap, PreviousCapacity: 2,
			Stats: Stats{Size: 3, Capacity: 4, InlineCapacity: 2, Mode: Heap}},
		{ContainerID: "numbers", Kind: Grow, From: Heap, To: Heap, PreviousCapacity: 4,
			Stats: Stats{Size: 5, Capacity: 8, InlineCapacity: 2, Mode: Heap}},
		{ContainerID: "numbers", Kind: Demote, From: Heap, To: Inline, PreviousCapacity: 8,
			Stats: Stats{Size: 2, Capacity: 2, InlineCapacity: 2, Mode: Inline}},
	}
	if diff := cmp.Diff(want, recorder.Events, cmpopts.IgnoreFields(TransitionEvent{}, "OccurredAt")); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
	for _, event := range recorder.Events {
		if event.OccurredAt.IsZero() {
			t.Fatalf("expected OccurredAt to be set")
		}
	}
}

func TestObserversGenerateContainerID(t *testing.T) {
	withObserver := MustNew[int](1, WithObserver(&Recorder{}))
	if _, err := uuid.Parse(withObserver.ID()); err != nil {
		t.Fatalf("expected uuid container id, got %q: %v", withObserver.ID(), err)
	}
	clone, err := withObserver.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if clone.ID() == withObserver.ID() {
		t.Fatalf("expected clone to get its own id")
	}
	if plain := MustNew[int](1); plain.ID() != "" {
		t.Fatalf("expected no id without observers, got %q", plain.ID())
	}
}

func TestObserversFanOut(t *testing.T) {
	var order []string
	first := ObserverFunc(func(TransitionEvent) { order = append(order, "first") })
	second := ObserverFunc(func(TransitionEvent) { order = append(order, "second") })
	v := MustNew[int](1, WithObservers(first, nil, second), WithObserver(nil))
	if len(v.cfg.observers) != 2 {
		t.Fatalf("expected nil observers skipped, got %d", len(v.cfg.observers))
	}
	mustAppend(t, v, 1, 2)
	if diff := cmp.Diff([]string{"first", "second"}, order); diff != "" {
		t.Fatalf("unexpected notification order (-want +got):\n%s", diff)
	}

	var nilFunc ObserverFunc
	nilFunc.ObserveTransition(TransitionEvent{})
	Observers{nil}.ObserveTransition(TransitionEvent{})
}

func TestReleaseFromHeapNotifiesDemote(t *testing.T) {
	recorder := &Recorder{}
	v := MustNew[int](1, WithObserver(recorder))
	mustAppend(t, v, 1, 2)
	recorder.Reset()
	v.Release()
	if diff := cmp.Diff([]TransitionKind{Demote}, recorder.Kinds()); diff != "" {
		t.Fatalf("unexpected transitions (-want +got):\n%s", diff)
	}
	v.Release()
	if len(recorder.Events) != 1 {
		t.Fatalf("expected release of inline vector to be silent")
	}
}

func TestStatsMap(t *testing.T) {
	v := MustNew[int](2)
	mustAppend(t, v, 1, 2, 3)
	got := v.Stats().Map()
	want := map[string]any{
		"size":            int64(3),
		"capacity":        int64(4),
		"inline_capacity": int64(2),
		"inline":          false,
		"mode":            "heap",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected stats binding (-want +got):\n%s", diff)
	}
	if v.Stats().Inline() {
		t.Fatalf("expected heap stats")
	}
}
