package history

import (
	"fmt"
	"slices"
	"testing"
)

func TestAddMovesExistingToFront(t *testing.T) {
	var list []string
	for _, v := range []string{"a", "b", "a"} {
		list = Add(list, v, 10)
	}

	want := []string{"a", "b"}
	if !slices.Equal(list, want) {
		t.Errorf("got %v, want %v", list, want)
	}
}

func TestAddIgnoresBlankInput(t *testing.T) {
	list := []string{"a"}

	for _, v := range []string{"", "   ", "\t\n"} {
		got := Add(list, v, 10)
		if !slices.Equal(got, list) {
			t.Errorf("Add(%q) changed list: got %v", v, got)
		}
	}
}

func TestAddEnforcesBound(t *testing.T) {
	var list []string
	for _, v := range []string{"a", "b", "c", "d"} {
		list = Add(list, v, 3)
	}

	want := []string{"d", "c", "b"}
	if !slices.Equal(list, want) {
		t.Errorf("got %v, want %v", list, want)
	}
}

func TestAddNeverExceedsBoundOrDuplicates(t *testing.T) {
	const max = 5
	var list []string
	for i := 0; i < 50; i++ {
		list = Add(list, fmt.Sprintf("entry-%d", i%8), max)

		if len(list) > max {
			t.Fatalf("length %d exceeds bound %d", len(list), max)
		}
		seen := map[string]bool{}
		for _, v := range list {
			if seen[v] {
				t.Fatalf("duplicate entry %q in %v", v, list)
			}
			seen[v] = true
		}
	}
}

func TestAddDedupsCorruptInput(t *testing.T) {
	// Simulates a malformed list loaded from storage.
	list := []string{"a", "b", "a", "c", "b"}
	got := Add(list, "d", 10)

	want := []string{"d", "a", "b", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCursorWalk(t *testing.T) {
	list := []string{"newest", "middle", "oldest"}
	c := NewCursor()

	if v, ok := c.Prev(list); !ok || v != "newest" {
		t.Fatalf("first Prev = %q, %v", v, ok)
	}
	if v, ok := c.Prev(list); !ok || v != "middle" {
		t.Fatalf("second Prev = %q, %v", v, ok)
	}
	if v, ok := c.Next(list); !ok || v != "newest" {
		t.Fatalf("Next = %q, %v", v, ok)
	}

	// Walking past the newest entry ends navigation.
	if _, ok := c.Next(list); ok {
		t.Error("Next past newest should return false")
	}
	if c.Navigating() {
		t.Error("cursor should not be navigating after walking off the list")
	}
}

func TestCursorClampsAtOldest(t *testing.T) {
	list := []string{"a", "b"}
	c := NewCursor()

	c.Prev(list)
	c.Prev(list)
	if v, ok := c.Prev(list); !ok || v != "b" {
		t.Errorf("Prev at oldest = %q, %v; want %q, true", v, ok, "b")
	}
}

func TestCursorEmptyList(t *testing.T) {
	c := NewCursor()
	if _, ok := c.Prev(nil); ok {
		t.Error("Prev on empty list should return false")
	}
	if _, ok := c.Next(nil); ok {
		t.Error("Next on empty list should return false")
	}
}
