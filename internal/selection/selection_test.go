package selection

import (
	"reflect"
	"testing"
)

func TestToggleRespectsVisibleSubset(t *testing.T) {
	s := New()
	s.SetVisible([]string{"a", "b", "c"})
	s.Toggle("b")
	s.Toggle("ghost")
	if !s.Selected("b") || s.Selected("ghost") {
		t.Fatalf("selection must only admit visible ids: %v", s.IDs())
	}
	s.Toggle("b")
	if !s.Empty() {
		t.Fatalf("second toggle must deselect, got %v", s.IDs())
	}
}

func TestToggleAllIsAPureToggle(t *testing.T) {
	s := New()
	s.SetVisible([]string{"a", "b", "c"})
	s.Toggle("a")
	s.ToggleAll()
	if !s.AllSelected() {
		t.Fatalf("partial selection + ToggleAll must select everything, got %v", s.IDs())
	}
	s.ToggleAll()
	if !s.Empty() {
		t.Fatalf("ToggleAll with everything selected must clear, got %v", s.IDs())
	}
}

func TestToggleAllOnEmptyPage(t *testing.T) {
	s := New()
	s.SetVisible(nil)
	s.ToggleAll()
	if !s.Empty() {
		t.Fatalf("empty page must stay unselected")
	}
	if s.AllSelected() {
		t.Fatalf("empty page must not report all-selected")
	}
}

func TestRefetchClearsSelection(t *testing.T) {
	s := New()
	s.SetVisible([]string{"a", "b"})
	s.Toggle("a")
	s.Toggle("b")
	s.SetVisible([]string{"b", "c"})
	if !s.Empty() {
		t.Fatalf("refetch must clear selection, got %v", s.IDs())
	}
	for _, id := range s.IDs() {
		if id != "b" && id != "c" {
			t.Fatalf("selection leaked id %s not in new page", id)
		}
	}
}

func TestIDsPreserveListOrder(t *testing.T) {
	s := New()
	s.SetVisible([]string{"c", "a", "b"})
	s.Toggle("b")
	s.Toggle("c")
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"c", "b"}) {
		t.Fatalf("ids must follow list order, got %v", got)
	}
	if s.Count() != 2 {
		t.Fatalf("count = %d, want 2", s.Count())
	}
}
