package domain

import "testing"

func TestHistoryRingAppendAndTail(t *testing.T) {
	h := NewHistoryRing(3)

	h.Append("a")
	h.Append("b")
	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}

	got := h.Tail(10)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Tail = %v, want [a b]", got)
	}
}

func TestHistoryRingEvictsOldest(t *testing.T) {
	h := NewHistoryRing(3)
	for _, line := range []string{"a", "b", "c", "d", "e"} {
		h.Append(line)
	}

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	got := h.All()
	want := []string{"c", "d", "e"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("All = %v, want %v", got, want)
		}
	}
}

func TestHistoryRingTailIsACopy(t *testing.T) {
	h := NewHistoryRing(5)
	h.Append("a")
	h.Append("b")

	got := h.Tail(2)
	got[0] = "mutated"

	if h.All()[0] != "a" {
		t.Fatal("Tail must return a copy, not a view into the ring")
	}
}

func TestHistoryRingEmpty(t *testing.T) {
	h := NewHistoryRing(3)
	if h.Len() != 0 {
		t.Fatalf("Len = %d, want 0", h.Len())
	}
	if got := h.Tail(5); len(got) != 0 {
		t.Fatalf("Tail = %v, want empty", got)
	}
}
