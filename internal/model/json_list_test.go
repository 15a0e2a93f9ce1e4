package model

import (
	"testing"
)

func TestIDListToggle(t *testing.T) {
	var likes IDList

	likes, liked := likes.Toggle(7)
	if !liked || !likes.Has(7) {
		t.Fatalf("first toggle: liked=%v list=%v", liked, likes)
	}

	likes, liked = likes.Toggle(7)
	if liked || likes.Has(7) {
		t.Fatalf("second toggle: liked=%v list=%v", liked, likes)
	}
}

func TestIDListAddIsSetLike(t *testing.T) {
	l := IDList{1, 2}
	l = l.Add(2)
	l = l.Add(3)
	if len(l) != 3 {
		t.Errorf("Add introduced a duplicate: %v", l)
	}
}

func TestIDListRemoveKeepsOthers(t *testing.T) {
	l := IDList{1, 2, 3}
	l = l.Remove(2)
	if l.Has(2) || !l.Has(1) || !l.Has(3) {
		t.Errorf("Remove(2) = %v", l)
	}
}

func TestIDListScanValue(t *testing.T) {
	v, err := IDList{1, 2, 3}.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out IDList
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(out) != 3 || !out.Has(2) {
		t.Errorf("round trip = %v", out)
	}

	// nil lists serialize as an empty array, not SQL NULL.
	v, err = IDList(nil).Value()
	if err != nil || v != "[]" {
		t.Errorf("nil Value() = %v, %v; want \"[]\"", v, err)
	}
}

func TestReactionMapScanValue(t *testing.T) {
	m := ReactionMap{"👍": IDList{1, 2}}
	v, err := m.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out ReactionMap
	if err := out.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !out["👍"].Has(1) || !out["👍"].Has(2) {
		t.Errorf("round trip = %v", out)
	}
}

func TestScanEmptyColumn(t *testing.T) {
	var l IDList
	if err := l.Scan(nil); err != nil {
		t.Errorf("Scan(nil): %v", err)
	}
	if err := l.Scan(""); err != nil {
		t.Errorf("Scan(\"\"): %v", err)
	}
	if len(l) != 0 {
		t.Errorf("empty scan produced %v", l)
	}
}
