package popup

import (
	"slices"
	"strings"
	"testing"
)

func TestShowHideIdempotent(t *testing.T) {
	p := New()

	if p.Visible() {
		t.Error("new popup should be hidden")
	}

	p.Show()
	if !p.Visible() {
		t.Error("Show should make popup visible")
	}

	p.Hide()
	p.Hide()
	if p.Visible() {
		t.Error("Hide should be idempotent")
	}
}

func TestEmptyQueryShowsAllItems(t *testing.T) {
	p := New()
	p.SetItems([]string{"alpha", "beta", "gamma"})
	p.SetQuery("")

	if got := p.Candidates(); !slices.Equal(got, []string{"alpha", "beta", "gamma"}) {
		t.Errorf("candidates = %v", got)
	}
}

func TestQueryFilters(t *testing.T) {
	p := New()
	p.SetItems([]string{"alpha", "beta", "alabaster"})
	p.SetQuery("alp")

	for _, c := range p.Candidates() {
		if !strings.Contains(c, "a") {
			t.Errorf("unexpected candidate %q", c)
		}
	}
	if slices.Contains(p.Candidates(), "beta") {
		t.Errorf("beta should not match %q: %v", "alp", p.Candidates())
	}
	if !slices.Contains(p.Candidates(), "alpha") {
		t.Errorf("alpha should match: %v", p.Candidates())
	}
}

func TestFilterResetsHighlight(t *testing.T) {
	p := New()
	p.SetItems([]string{"one", "two"})
	p.MoveHighlight()

	if p.CurrentText() != "one" {
		t.Fatalf("highlight = %q", p.CurrentText())
	}

	p.SetQuery("t")
	if p.CurrentText() != "" {
		t.Errorf("query change should clear highlight, got %q", p.CurrentText())
	}
}

func TestMoveHighlightWraps(t *testing.T) {
	p := New()
	p.SetItems([]string{"a", "b"})

	if p.CurrentText() != "" {
		t.Fatal("nothing should be highlighted initially")
	}

	p.MoveHighlight()
	if p.CurrentText() != "a" {
		t.Errorf("first advance = %q", p.CurrentText())
	}
	p.MoveHighlight()
	if p.CurrentText() != "b" {
		t.Errorf("second advance = %q", p.CurrentText())
	}
	p.MoveHighlight()
	if p.CurrentText() != "a" {
		t.Errorf("wrap = %q", p.CurrentText())
	}
}

func TestMoveHighlightEmptyList(t *testing.T) {
	p := New()
	p.MoveHighlight()
	if p.CurrentText() != "" {
		t.Errorf("highlight on empty list = %q", p.CurrentText())
	}
}

func TestHandleKeyNavigation(t *testing.T) {
	p := New()
	p.SetItems([]string{"a", "b", "c"})
	p.Show()

	if !p.HandleKey("down") {
		t.Fatal("down should be consumed")
	}
	if p.CurrentText() != "a" {
		t.Errorf("after down: %q", p.CurrentText())
	}

	p.HandleKey("up")
	if p.CurrentText() != "c" {
		t.Errorf("up from first should wrap to last, got %q", p.CurrentText())
	}

	if !p.HandleKey("esc") {
		t.Fatal("esc should be consumed")
	}
	if p.Visible() {
		t.Error("esc should hide the popup")
	}
}

func TestHandleKeyWhileHidden(t *testing.T) {
	p := New()
	p.SetItems([]string{"a"})

	if p.HandleKey("down") {
		t.Error("hidden popup should not consume keys")
	}
}

func TestHandlesKey(t *testing.T) {
	p := New()
	for _, k := range []string{"up", "down", "ctrl+p", "ctrl+n", "esc"} {
		if !p.HandlesKey(k) {
			t.Errorf("popup should claim %q", k)
		}
	}
	for _, k := range []string{"enter", "tab", "a", "backspace"} {
		if p.HandlesKey(k) {
			t.Errorf("popup should not claim %q", k)
		}
	}
}

func TestAssociated(t *testing.T) {
	p := New()
	p.AddAssociated("search-button")

	if !p.Associated("search-button") {
		t.Error("registered id should be associated")
	}
	if p.Associated("other") {
		t.Error("unregistered id should not be associated")
	}
}

func TestViewHiddenIsEmpty(t *testing.T) {
	p := New()
	p.SetItems([]string{"a"})
	if p.View() != "" {
		t.Error("hidden popup should render nothing")
	}
}

func TestViewShowsCandidatesAndOverflow(t *testing.T) {
	p := New()
	p.SetMaxRows(2)
	items := []string{"first", "second", "third", "fourth"}
	p.SetItems(items)
	p.Show()

	view := p.View()
	if !strings.Contains(view, "first") {
		t.Error("view should contain first candidate")
	}
	if !strings.Contains(view, "more") {
		t.Error("view should indicate overflow")
	}
}
